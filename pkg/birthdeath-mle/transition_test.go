package birthdeathmle

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceFractions computes alpha and beta from the textbook expressions,
// independent of the expm1 forms used by the implementation.
func referenceFractions(lambda, mu, t float64) (alpha, beta float64) {
	ewt := math.Exp((lambda - mu) * t)
	alpha = (mu*ewt - mu) / (lambda*ewt - mu)
	beta = (lambda*ewt - lambda) / (lambda*ewt - mu)
	return alpha, beta
}

func TestTransitionLogProb_ExtinctStateAbsorbing(t *testing.T) {
	for _, elapsed := range []float64{0.1, 1.0, 5.0, 50.0} {
		for _, rates := range []Rates[float64]{{0.5, 0.3}, {0.3, 0.5}, {0.3, 0.3}} {
			lp, err := TransitionLogProb(0, 0, elapsed, rates)
			require.NoError(t, err)
			assert.Equal(t, 0.0, lp, "staying extinct is certain")

			lp, err = TransitionLogProb(0, 4, elapsed, rates)
			require.NoError(t, err)
			assert.True(t, math.IsInf(lp, -1), "leaving state 0 is impossible")
		}
	}
}

func TestTransitionLogProb_ConcreteScenario(t *testing.T) {
	lp, err := TransitionLogProb(5, 3, 1.0, Rates[float64]{Lambda: 0.5, Mu: 0.3})
	require.NoError(t, err)
	assert.False(t, math.IsInf(lp, 0))
	assert.False(t, math.IsNaN(lp))
	assert.Less(t, lp, 0.0)

	// Equal rates must not fault on the division hidden in alpha/beta.
	lp, err = TransitionLogProb(5, 3, 1.0, Rates[float64]{Lambda: 0.3, Mu: 0.3})
	require.NoError(t, err)
	assert.False(t, math.IsInf(lp, 0))
	assert.False(t, math.IsNaN(lp))
	assert.Less(t, lp, 0.0)
}

func TestTransitionLogProb_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		i     int
		t     float64
		rates Rates[float64]
	}{
		{"subcritical", 3, 1.0, Rates[float64]{Lambda: 0.3, Mu: 0.5}},
		{"supercritical", 5, 1.0, Rates[float64]{Lambda: 0.5, Mu: 0.3}},
		{"critical", 5, 1.0, Rates[float64]{Lambda: 0.3, Mu: 0.3}},
		{"single ancestor", 1, 0.7, Rates[float64]{Lambda: 0.6, Mu: 0.4}},
		{"large start", 40, 0.5, Rates[float64]{Lambda: 0.4, Mu: 0.6}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			total := 0.0
			for j := 0; j <= 400; j++ {
				lp, err := TransitionLogProb(tc.i, j, tc.t, tc.rates)
				require.NoError(t, err)
				assert.LessOrEqual(t, lp, 0.0)
				total += math.Exp(lp)
			}
			assert.InDelta(t, 1.0, total, 1e-8)
		})
	}
}

func TestTransitionLogProb_SingleAncestorClosedForm(t *testing.T) {
	const (
		lambda  = 0.5
		mu      = 0.3
		elapsed = 1.2
	)
	rates := Rates[float64]{Lambda: lambda, Mu: mu}
	alpha, beta := referenceFractions(lambda, mu, elapsed)

	lp, err := TransitionLogProb(1, 0, elapsed, rates)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(alpha), lp, 1e-12)

	// p(j | 1, t) = (1-alpha)(1-beta) beta^(j-1) for j >= 1
	for j := 1; j <= 10; j++ {
		lp, err := TransitionLogProb(1, j, elapsed, rates)
		require.NoError(t, err)
		expected := math.Log((1-alpha)*(1-beta)) + float64(j-1)*math.Log(beta)
		assert.InDelta(t, expected, lp, 1e-10, "j=%d", j)
	}
}

func TestTransitionLogProb_ChapmanKolmogorov(t *testing.T) {
	const (
		i     = 4
		j     = 6
		t1    = 0.6
		t2    = 0.9
		bound = 150
	)
	rates := Rates[float64]{Lambda: 0.5, Mu: 0.4}

	direct, err := TransitionLogProb(i, j, t1+t2, rates)
	require.NoError(t, err)

	total := 0.0
	for k := 0; k <= bound; k++ {
		first, err := TransitionLogProb(i, k, t1, rates)
		require.NoError(t, err)
		second, err := TransitionLogProb(k, j, t2, rates)
		require.NoError(t, err)
		total += math.Exp(first + second)
	}

	assert.InEpsilon(t, math.Exp(direct), total, 1e-9)
}

func TestTransitionLogProb_EqualRatesContinuity(t *testing.T) {
	// Approaching the critical case through the generic branch must agree
	// with the analytic limit used at lambda == mu.
	exact, err := TransitionLogProb(5, 3, 1.0, Rates[float64]{Lambda: 0.3, Mu: 0.3})
	require.NoError(t, err)

	near, err := TransitionLogProb(5, 3, 1.0, Rates[float64]{Lambda: 0.3 + 1e-7, Mu: 0.3})
	require.NoError(t, err)

	assert.InDelta(t, exact, near, 1e-5)
}

func TestTransitionLogProb_ExtinctionMonotoneInTime(t *testing.T) {
	// With lambda < mu, longer elapsed time moves mass toward extinction.
	rates := Rates[float64]{Lambda: 0.3, Mu: 0.5}
	prev := math.Inf(-1)
	for _, elapsed := range []float64{0.5, 1, 2, 4, 8, 16} {
		lp, err := TransitionLogProb(3, 0, elapsed, rates)
		require.NoError(t, err)
		assert.Greater(t, lp, prev, "t=%v", elapsed)
		prev = lp
	}
}

func TestTransitionLogProb_LargePopulations(t *testing.T) {
	// Binomial coefficients for these sizes overflow float64 by hundreds of
	// orders of magnitude; the log-domain path must stay finite.
	lp, err := TransitionLogProb(800, 750, 0.5, Rates[float64]{Lambda: 0.4, Mu: 0.5})
	require.NoError(t, err)
	assert.False(t, math.IsInf(lp, 0))
	assert.False(t, math.IsNaN(lp))
	assert.Less(t, lp, 0.0)
}

func TestTransitionLogProb_DomainErrors(t *testing.T) {
	tests := []struct {
		name  string
		i, j  int
		t     float64
		rates Rates[float64]
	}{
		{"zero lambda", 2, 3, 1.0, Rates[float64]{Lambda: 0, Mu: 0.3}},
		{"negative mu", 2, 3, 1.0, Rates[float64]{Lambda: 0.5, Mu: -0.1}},
		{"zero time", 2, 3, 0, Rates[float64]{Lambda: 0.5, Mu: 0.3}},
		{"negative time", 2, 3, -1.0, Rates[float64]{Lambda: 0.5, Mu: 0.3}},
		{"negative origin", -1, 3, 1.0, Rates[float64]{Lambda: 0.5, Mu: 0.3}},
		{"negative target", 2, -3, 1.0, Rates[float64]{Lambda: 0.5, Mu: 0.3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TransitionLogProb(tc.i, tc.j, tc.t, tc.rates)
			require.Error(t, err)
			var domainErr DomainError
			assert.True(t, errors.As(err, &domainErr))
		})
	}
}

func TestTransitionLogProb_NumericalDomainError(t *testing.T) {
	// A step so coarse that alpha + beta genuinely exceeds 1 cannot feed the
	// h > 0 terms; the error must carry the full evaluation context.
	_, err := TransitionLogProb(2, 2, 5.0, Rates[float64]{Lambda: 1.0, Mu: 1.0})
	require.Error(t, err)

	var numErr NumericalDomainError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "1-alpha-beta", numErr.Quantity)
	assert.Equal(t, 2, numErr.I)
	assert.Equal(t, 2, numErr.J)
	assert.Equal(t, 5.0, numErr.T)
	assert.Negative(t, numErr.Value)

	// The extinction column never touches the h > 0 terms, so the same
	// coarse step remains evaluable there.
	lp, err := TransitionLogProb(2, 0, 5.0, Rates[float64]{Lambda: 1.0, Mu: 1.0})
	require.NoError(t, err)
	assert.Less(t, lp, 0.0)
}

func TestTransitionLogProb_Float32(t *testing.T) {
	lp32, err := TransitionLogProb(5, 3, float32(1.0), Rates[float32]{Lambda: 0.5, Mu: 0.3})
	require.NoError(t, err)

	lp64, err := TransitionLogProb(5, 3, 1.0, Rates[float64]{Lambda: 0.5, Mu: 0.3})
	require.NoError(t, err)

	assert.Less(t, lp32, float32(0))
	assert.InDelta(t, lp64, float64(lp32), 1e-4)
}
