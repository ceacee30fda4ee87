package birthdeathmle

import (
	"math"
	"math/rand"
)

// Path is one realized trajectory of the jump chain, with the sufficient
// statistics accumulated as the simulation runs: SumLogN collects log n
// over the pre-jump populations, PopulationTime is the time integral of the
// population over [0, Horizon].
type Path struct {
	Times          []float64 // Jump times, starting at 0
	Sizes          []int     // Population after each jump (Sizes[0] = initial)
	Births         int
	Deaths         int
	SumLogN        float64
	PopulationTime float64
	Horizon        float64
}

// Simulator generates birth-death sample paths from a seeded source, so
// runs are reproducible.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator creates a simulator with the given seed.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// SimulatePath runs the jump chain from initial population n0 until the
// horizon, or extinction if that comes first (state 0 is absorbing, so an
// extinct path carries no further jumps or integral mass).
func (s *Simulator) SimulatePath(rates Rates[float64], n0 int, horizon float64) *Path {
	path := &Path{
		Times:   []float64{0},
		Sizes:   []int{n0},
		Horizon: horizon,
	}

	t := 0.0
	n := n0
	for n > 0 {
		total := (rates.Lambda + rates.Mu) * float64(n)
		wait := s.rng.ExpFloat64() / total
		if t+wait > horizon {
			path.PopulationTime += (horizon - t) * float64(n)
			return path
		}

		path.PopulationTime += wait * float64(n)
		path.SumLogN += math.Log(float64(n))
		t += wait

		if s.rng.Float64() < rates.Lambda/(rates.Lambda+rates.Mu) {
			path.Births++
			n++
		} else {
			path.Deaths++
			n--
		}
		path.Times = append(path.Times, t)
		path.Sizes = append(path.Sizes, n)
	}
	return path
}

// Observation reduces the path to its continuous-time sufficient statistics.
func (p *Path) Observation() ContinuousObservation[float64] {
	return ContinuousObservation[float64]{
		SumLogN:        p.SumLogN,
		Births:         float64(p.Births),
		Deaths:         float64(p.Deaths),
		PopulationTime: p.PopulationTime,
	}
}

// At returns the population at time t, the size after the last jump at or
// before t. Times past the horizon report the final size.
func (p *Path) At(t float64) int {
	n := p.Sizes[0]
	for idx, jump := range p.Times {
		if jump > t {
			break
		}
		n = p.Sizes[idx]
	}
	return n
}

// SampleGrid samples the path at steps+1 equally spaced time points
// 0, step, 2*step, ..., one replicate column of panel data.
func (p *Path) SampleGrid(step float64, steps int) []int {
	column := make([]int, steps+1)
	for s := 0; s <= steps; s++ {
		column[s] = p.At(float64(s) * step)
	}
	return column
}

// SampleAt samples the path at irregular observation times given by the
// waiting times between consecutive observations, producing an
// UnequalStepObservation anchored at time 0.
func (p *Path) SampleAt(waitingTimes []float64) UnequalStepObservation[float64] {
	state := make([]int, len(waitingTimes)+1)
	state[0] = p.Sizes[0]
	t := 0.0
	for s, wait := range waitingTimes {
		t += wait
		state[s+1] = p.At(t)
	}
	return UnequalStepObservation[float64]{State: state, WaitingTimes: waitingTimes}
}

// SimulatePanel simulates independent replicate paths from a shared initial
// population and samples them on a shared equal grid, producing panel data
// with one column per replicate.
func (s *Simulator) SimulatePanel(rates Rates[float64], n0, replicates, steps int, step float64) EqualStepObservation[float64] {
	state := make([][]int, steps+1)
	for row := range state {
		state[row] = make([]int, replicates)
	}
	for r := 0; r < replicates; r++ {
		column := s.SimulatePath(rates, n0, float64(steps)*step).SampleGrid(step, steps)
		for row := range state {
			state[row][r] = column[row]
		}
	}
	return EqualStepObservation[float64]{State: state, StepSize: step}
}
