package birthdeathmle

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
)

// logChoose returns log C(n, k) via log-gamma. Out-of-range k yields -Inf,
// the log of an empty coefficient, so impossible terms vanish from
// log-domain sums instead of panicking.
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	if k == 0 || k == n {
		return 0
	}
	return combin.LogGeneralizedBinomial(float64(n), float64(k))
}

// logSumExp returns log(sum(exp(terms))) without leaving the log domain.
func logSumExp(terms []float64) float64 {
	if len(terms) == 0 {
		return math.Inf(-1)
	}
	return floats.LogSumExp(terms)
}
