package birthdeathmle

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
)

// TransitionDistribution holds the transition probabilities out of one
// starting population over a fixed elapsed time, truncated at a population
// bound: Probs[j] = p(j | From, t).
type TransitionDistribution struct {
	From  int       // Starting population
	Bound int       // Maximum target population (truncation)
	Probs []float64 // [targetPopulation] -> probability
}

// NewTransitionDistribution evaluates the transition probability row for
// every target population up to bound.
func NewTransitionDistribution[F constraints.Float](i int, t F, rates Rates[F], bound int) (*TransitionDistribution, error) {
	probs := make([]float64, bound+1)
	for j := 0; j <= bound; j++ {
		lp, err := TransitionLogProb(i, j, t, rates)
		if err != nil {
			return nil, err
		}
		probs[j] = math.Exp(float64(lp))
	}
	return &TransitionDistribution{From: i, Bound: bound, Probs: probs}, nil
}

// TotalMass returns the probability captured below the truncation bound.
// For an adequate bound this is 1 within numerical tolerance.
func (d *TransitionDistribution) TotalMass() float64 {
	return floats.Sum(d.Probs)
}

// ExtinctionProb returns the probability that the process is extinct.
func (d *TransitionDistribution) ExtinctionProb() float64 {
	return d.Probs[0]
}

// Mean returns the expected target population under the truncated row.
func (d *TransitionDistribution) Mean() float64 {
	mean := 0.0
	for j, p := range d.Probs {
		mean += float64(j) * p
	}
	return mean
}
