package birthdeathmle

import "golang.org/x/exp/constraints"

// Rates holds the per-capita birth and death intensities of the linear
// birth-death process. Both must be strictly positive at evaluation time.
type Rates[F constraints.Float] struct {
	Lambda F `json:"lambda"` // per-capita birth rate
	Mu     F `json:"mu"`     // per-capita death rate
}

// Observation is the closed set of data shapes the likelihood evaluator
// accepts. The four concrete variants plus the two series containers
// implement it; the method is unexported so the set stays closed.
type Observation[F constraints.Float] interface {
	logLikelihood(rates Rates[F], options Options) (F, error)
}

// ContinuousObservation holds the sufficient statistics of one continuously
// monitored process over [0, T]: the sum of log population over jump points,
// the total birth and death counts, and the time-integrated population.
type ContinuousObservation[F constraints.Float] struct {
	SumLogN        F `json:"sum_log_n"`
	Births         F `json:"tot_births"`
	Deaths         F `json:"tot_deaths"`
	PopulationTime F `json:"integrated_jump"`
}

// EqualStepObservation is panel data for independent replicates observed on
// a shared fixed time grid. Rows index time points, columns index replicates;
// every row must have the same width.
type EqualStepObservation[F constraints.Float] struct {
	State    [][]int `json:"state"`
	StepSize F       `json:"step_size"`
}

// Replicates returns the number of replicate columns in the panel.
func (o EqualStepObservation[F]) Replicates() int {
	if len(o.State) == 0 {
		return 0
	}
	return len(o.State[0])
}

// UnequalStepObservation is panel data for a single process observed at
// irregular times. WaitingTimes[s] is the interval between State[s] and
// State[s+1], so it must have exactly len(State)-1 entries.
type UnequalStepObservation[F constraints.Float] struct {
	State        []int `json:"state"`
	WaitingTimes []F   `json:"waiting_time"`
}

// ContinuousSeries is a collection of independent continuously monitored
// processes sharing one rate pair.
type ContinuousSeries[F constraints.Float] []ContinuousObservation[F]

// Total accumulates the sufficient statistics across the series. Applying
// the closed-form likelihood once to the totals equals summing per-element
// log-likelihoods, up to floating round-off.
func (s ContinuousSeries[F]) Total() ContinuousObservation[F] {
	var total ContinuousObservation[F]
	for _, o := range s {
		total.SumLogN += o.SumLogN
		total.Births += o.Births
		total.Deaths += o.Deaths
		total.PopulationTime += o.PopulationTime
	}
	return total
}

// UnequalStepSeries is a collection of independent irregularly observed
// processes sharing one rate pair.
type UnequalStepSeries[F constraints.Float] []UnequalStepObservation[F]

// Options configures likelihood evaluation
type Options struct {
	Workers      int     `json:"workers"`        // Parallel replicate evaluation; 1 = sequential (default: 1)
	Debug        bool    `json:"debug"`          // Enable debug output during evaluation
	EqualRateTol float64 `json:"equal_rate_tol"` // Relative threshold for the lambda == mu limiting branch (default: 1e-9)
	ClampTol     float64 `json:"clamp_tol"`      // Round-off tolerance when clamping 1-alpha-beta (default: 1e-12)
}

// DefaultOptions returns default likelihood evaluation options
func DefaultOptions() Options {
	return Options{
		Workers:      1,     // Sequential evaluation
		Debug:        false, // No debug output
		EqualRateTol: 1e-9,  // Switch to the critical-process limit inside this band
		ClampTol:     1e-12, // Negative 1-alpha-beta beyond this is a numerical fault
	}
}

// withDefaults fills zero-valued tolerance fields so a literal Options{}
// behaves like DefaultOptions.
func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.EqualRateTol == 0 {
		o.EqualRateTol = 1e-9
	}
	if o.ClampTol == 0 {
		o.ClampTol = 1e-12
	}
	return o
}
