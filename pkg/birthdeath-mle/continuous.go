package birthdeathmle

import (
	"fmt"
	"math"
)

// logLikelihood evaluates the closed-form continuous-time likelihood
// l(lambda, mu | x) = sum_log_n + B log(lambda) + D log(mu) - (lambda + mu) X
// from the sufficient statistics of one fully observed process.
func (o ContinuousObservation[F]) logLikelihood(rates Rates[F], options Options) (F, error) {
	if err := validateRates(rates); err != nil {
		return 0, err
	}
	if err := validateStats(o); err != nil {
		return 0, err
	}
	lambda := float64(rates.Lambda)
	mu := float64(rates.Mu)
	ll := float64(o.SumLogN) +
		float64(o.Births)*math.Log(lambda) +
		float64(o.Deaths)*math.Log(mu) -
		(lambda+mu)*float64(o.PopulationTime)
	return F(ll), nil
}

// logLikelihood for a series accumulates the sufficient statistics across
// elements first and applies the closed form once to the totals. This is
// equivalent to summing per-element log-likelihoods but touches the
// transcendental functions a single time.
func (s ContinuousSeries[F]) logLikelihood(rates Rates[F], options Options) (F, error) {
	for idx, o := range s {
		if err := validateStats(o); err != nil {
			return 0, fmt.Errorf("process %d: %w", idx, err)
		}
	}
	if len(s) == 0 {
		// No data carries no evidence.
		if err := validateRates(rates); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return s.Total().logLikelihood(rates, options)
}
