package birthdeathmle

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// logLikelihood for an equal-step panel sums the one-step transition
// log-probabilities over every replicate column and every consecutive pair
// of grid rows. Columns are independent, so they feed the replicate
// aggregator and may be evaluated in parallel.
func (o EqualStepObservation[F]) logLikelihood(rates Rates[F], options Options) (F, error) {
	if err := validatePanel(o); err != nil {
		return 0, err
	}
	ll, err := aggregate(o.Replicates(), options.Workers, func(r int) (float64, error) {
		return panelColumn(o, r, rates, options)
	})
	if err != nil {
		return 0, err
	}
	return F(ll), nil
}

// panelColumn folds the transition probability along one replicate column.
func panelColumn[F constraints.Float](o EqualStepObservation[F], r int, rates Rates[F], options Options) (float64, error) {
	ll := 0.0
	for s := 1; s < len(o.State); s++ {
		lp, err := transitionLogProb(o.State[s-1][r], o.State[s][r], o.StepSize, rates, options)
		if err != nil {
			return 0, fmt.Errorf("replicate %d, step %d: %w", r, s, err)
		}
		ll += float64(lp)
	}
	return ll, nil
}

// logLikelihood for an irregular observation folds the transition
// probability over consecutive states with per-transition waiting times.
func (o UnequalStepObservation[F]) logLikelihood(rates Rates[F], options Options) (F, error) {
	if err := validatePath(o); err != nil {
		return 0, err
	}
	ll := 0.0
	for s := 1; s < len(o.State); s++ {
		lp, err := transitionLogProb(o.State[s-1], o.State[s], o.WaitingTimes[s-1], rates, options)
		if err != nil {
			return 0, fmt.Errorf("step %d: %w", s, err)
		}
		ll += float64(lp)
	}
	return F(ll), nil
}

// logLikelihood for a series of irregular processes sums the per-process
// log-likelihoods; elements are independent replicates.
func (s UnequalStepSeries[F]) logLikelihood(rates Rates[F], options Options) (F, error) {
	if err := validateRates(rates); err != nil {
		return 0, err
	}
	for idx, o := range s {
		if err := validatePath(o); err != nil {
			return 0, fmt.Errorf("process %d: %w", idx, err)
		}
	}
	ll, err := aggregate(len(s), options.Workers, func(idx int) (float64, error) {
		v, err := s[idx].logLikelihood(rates, options)
		if err != nil {
			return 0, fmt.Errorf("process %d: %w", idx, err)
		}
		return float64(v), nil
	})
	if err != nil {
		return 0, err
	}
	return F(ll), nil
}
