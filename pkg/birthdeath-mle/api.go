package birthdeathmle

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// LogLikelihood evaluates the log-likelihood of the rates given one
// observation (or collection of observations) with default options.
// This is the main entry point for the birthdeath-mle package.
func LogLikelihood[F constraints.Float](rates Rates[F], observation Observation[F]) (F, error) {
	return NewEvaluator[F](DefaultOptions()).LogLikelihood(rates, observation)
}

// Evaluator evaluates log-likelihoods under a fixed set of options.
// Callers vary the rates across repeated calls while reusing the same
// observation objects; returned values are natural-log scale and additive
// across independent data, with no normalization constant dropped.
type Evaluator[F constraints.Float] struct {
	options Options
}

// NewEvaluator creates an evaluator, filling unset option fields with
// defaults.
func NewEvaluator[F constraints.Float](options Options) *Evaluator[F] {
	return &Evaluator[F]{options: options.withDefaults()}
}

// LogLikelihood dispatches on the observation shape and returns the scalar
// log-likelihood of the rates given the data.
func (e *Evaluator[F]) LogLikelihood(rates Rates[F], observation Observation[F]) (F, error) {
	ll, err := observation.logLikelihood(rates, e.options)
	if err != nil {
		return 0, fmt.Errorf("log-likelihood evaluation failed: %w", err)
	}
	if e.options.Debug {
		fmt.Printf("🔎 log-likelihood %.6f for %T (lambda=%.6g, mu=%.6g)\n",
			float64(ll), observation, float64(rates.Lambda), float64(rates.Mu))
	}
	return ll, nil
}

// aggregate sums f(0), ..., f(n-1) in index order. With workers > 1 the
// calls fan out across goroutines into an indexed slice, but the reduction
// itself is always sequential left-to-right, so results are bit-identical
// to the sequential path.
func aggregate(n, workers int, f func(int) (float64, error)) (float64, error) {
	if n == 0 {
		return 0, nil
	}
	results := make([]float64, n)
	if workers > 1 && n > 1 {
		g := new(errgroup.Group)
		g.SetLimit(workers)
		for idx := 0; idx < n; idx++ {
			idx := idx
			g.Go(func() error {
				v, err := f(idx)
				if err != nil {
					return err
				}
				results[idx] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return 0, err
		}
	} else {
		for idx := 0; idx < n; idx++ {
			v, err := f(idx)
			if err != nil {
				return 0, err
			}
			results[idx] = v
		}
	}
	return floats.Sum(results), nil
}
