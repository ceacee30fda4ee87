package birthdeathmle

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// TransitionLogProb returns log p(j | i, t), the log-probability that a
// linear birth-death process starting at population i has population j after
// elapsed time t. The result is at most 0; -Inf is returned for transitions
// that are impossible (leaving the absorbing state 0).
func TransitionLogProb[F constraints.Float](i, j int, t F, rates Rates[F]) (F, error) {
	return transitionLogProb(i, j, t, rates, DefaultOptions())
}

// transitionLogProb evaluates Bailey's series for the transition probability
// entirely in the log domain: each summand is accumulated as
// log C(i,h) + log C(i+j-h-1, i-1) + (i-h) log a + (j-h) log b + h log(1-a-b)
// and the terms are combined with log-sum-exp. Both the binomial
// coefficients and the probability powers overflow or underflow long before
// realistic population sizes if formed directly.
func transitionLogProb[F constraints.Float](i, j int, t F, rates Rates[F], options Options) (F, error) {
	if err := validateRates(rates); err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, DomainError{Field: "i", Message: fmt.Sprintf("population must be non-negative, got %d", i)}
	}
	if j < 0 {
		return 0, DomainError{Field: "j", Message: fmt.Sprintf("population must be non-negative, got %d", j)}
	}
	if !(t > 0) {
		return 0, DomainError{Field: "t", Message: fmt.Sprintf("elapsed time must be strictly positive, got %v", float64(t))}
	}

	// State 0 is absorbing: the process stays extinct with certainty.
	if i == 0 {
		if j == 0 {
			return 0, nil
		}
		return F(math.Inf(-1)), nil
	}

	lambda := float64(rates.Lambda)
	mu := float64(rates.Mu)
	elapsed := float64(t)

	alpha, beta := jumpFractions(lambda, mu, elapsed, options.EqualRateTol)
	logAlpha := math.Log(alpha)
	logBeta := math.Log(beta)

	terms := min(i, j)

	remainder := 1 - alpha - beta
	if remainder < 0 {
		if terms > 0 && remainder < -options.ClampTol {
			return 0, NumericalDomainError{
				I: i, J: j, T: elapsed, Lambda: lambda, Mu: mu,
				Quantity: "1-alpha-beta", Value: remainder,
			}
		}
		remainder = 0
	}
	logRemainder := math.Log(remainder)

	summands := make([]float64, 0, terms+1)
	for h := 0; h <= terms; h++ {
		term := logChoose(i, h) + logChoose(i+j-h-1, i-1) +
			float64(i-h)*logAlpha + float64(j-h)*logBeta
		if h > 0 {
			// 0 * -Inf is NaN, so the remainder factor only enters for h > 0.
			if math.IsInf(logRemainder, -1) {
				break
			}
			term += float64(h) * logRemainder
		}
		summands = append(summands, term)
	}

	logProb := logSumExp(summands)
	if logProb > 0 {
		// The series sums to at most 1; a positive value is round-off.
		logProb = 0
	}
	return F(logProb), nil
}

// jumpFractions returns Bailey's alpha and beta for one step of length t.
// The generic expressions are written with expm1 so they stay finite as
// lambda approaches mu; exactly at (and within tol of) the critical case
// they are 0/0, so the analytic limit alpha = beta = nu*t/(1 + nu*t) with
// nu = (lambda + mu)/2 takes over.
func jumpFractions(lambda, mu, t, tol float64) (alpha, beta float64) {
	diff := lambda - mu
	if math.Abs(diff) <= tol*math.Max(lambda, mu) {
		nu := 0.5 * (lambda + mu)
		a := nu * t / (1 + nu*t)
		return a, a
	}
	w := diff * t
	if w > 700 {
		// expm1 overflows; use the w -> +Inf limits directly.
		return mu / lambda, 1
	}
	growth := math.Expm1(w)
	denom := lambda*growth + diff
	alpha = mu * growth / denom
	beta = lambda * growth / denom
	return alpha, beta
}
