package main

import (
	"flag"
	"fmt"
	"log"

	birthdeathmle "github.com/jhw/go-birthdeath-mle/pkg/birthdeath-mle"
)

func main() {
	// Command line flags
	var (
		lambda     = flag.Float64("lambda", 0.4, "True per-capita birth rate for simulation")
		mu         = flag.Float64("mu", 0.25, "True per-capita death rate for simulation")
		initial    = flag.Int("initial", 20, "Initial population size")
		horizon    = flag.Float64("horizon", 5.0, "Observation horizon for the continuous path")
		replicates = flag.Int("replicates", 10, "Replicate paths in the panel")
		steps      = flag.Int("steps", 20, "Grid steps in the panel")
		step       = flag.Float64("step", 0.25, "Grid step size in the panel")
		seed       = flag.Int64("seed", 42, "Random seed")
		gridSize   = flag.Int("grid", 9, "Rate grid points per axis for the likelihood surface")
		gridSpan   = flag.Float64("grid-span", 0.5, "Relative half-width of the rate grid around the truth")
		workers    = flag.Int("workers", 4, "Worker goroutines for panel evaluation")
		debug      = flag.Bool("debug", false, "Enable debug output during evaluation")
	)
	flag.Parse()

	fmt.Printf("🧮 Go Birth-Death MLE Demo\n")
	fmt.Printf("==========================\n\n")

	truth := birthdeathmle.Rates[float64]{Lambda: *lambda, Mu: *mu}
	simulator := birthdeathmle.NewSimulator(*seed)

	// Simulate one continuously monitored path and a replicate panel
	path := simulator.SimulatePath(truth, *initial, *horizon)
	continuous := path.Observation()
	panel := simulator.SimulatePanel(truth, *initial, *replicates, *steps, *step)

	fmt.Printf("📊 Simulated data (lambda=%.3f, mu=%.3f, n0=%d):\n", *lambda, *mu, *initial)
	fmt.Printf("   continuous path: %d births, %d deaths, integrated population %.2f over [0, %.2f]\n",
		path.Births, path.Deaths, path.PopulationTime, *horizon)
	fmt.Printf("   panel: %d replicates x %d steps of size %.3f\n\n", *replicates, *steps, *step)

	evaluator := birthdeathmle.NewEvaluator[float64](birthdeathmle.Options{
		Workers: *workers,
		Debug:   *debug,
	})

	llContinuous, err := evaluator.LogLikelihood(truth, continuous)
	if err != nil {
		log.Fatalf("Continuous likelihood failed: %v", err)
	}
	llPanel, err := evaluator.LogLikelihood(truth, panel)
	if err != nil {
		log.Fatalf("Panel likelihood failed: %v", err)
	}
	fmt.Printf("✅ Log-likelihood at the true rates:\n")
	fmt.Printf("   continuous: %.4f\n", llContinuous)
	fmt.Printf("   panel:      %.4f\n\n", llPanel)

	// Scan the panel likelihood surface on a grid around the truth
	fmt.Printf("🗺️  Panel log-likelihood surface (%dx%d grid):\n", *gridSize, *gridSize)
	bestLL := 0.0
	bestRates := truth
	first := true
	for a := 0; a < *gridSize; a++ {
		for b := 0; b < *gridSize; b++ {
			frac := func(k int) float64 {
				if *gridSize == 1 {
					return 0
				}
				return *gridSpan * (2*float64(k)/float64(*gridSize-1) - 1)
			}
			candidate := birthdeathmle.Rates[float64]{
				Lambda: *lambda * (1 + frac(a)),
				Mu:     *mu * (1 + frac(b)),
			}
			ll, err := evaluator.LogLikelihood(candidate, panel)
			if err != nil {
				log.Fatalf("Grid evaluation failed at lambda=%.3f, mu=%.3f: %v",
					candidate.Lambda, candidate.Mu, err)
			}
			if first || ll > bestLL {
				bestLL = ll
				bestRates = candidate
				first = false
			}
		}
	}
	fmt.Printf("   ridge at lambda=%.3f, mu=%.3f (log-likelihood %.4f)\n\n", bestRates.Lambda, bestRates.Mu, bestLL)

	// Show the transition distribution out of the initial state
	dist, err := birthdeathmle.NewTransitionDistribution(*initial, *step, truth, 4*(*initial))
	if err != nil {
		log.Fatalf("Transition distribution failed: %v", err)
	}
	fmt.Printf("🎲 One-step transition out of %d (t=%.3f):\n", *initial, *step)
	fmt.Printf("   mean %.3f, extinction probability %.2e, captured mass %.6f\n",
		dist.Mean(), dist.ExtinctionProb(), dist.TotalMass())
}
