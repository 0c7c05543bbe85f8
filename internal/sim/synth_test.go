package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how many values were drawn.
type countingSource struct {
	n int
}

func (c *countingSource) Uint64() uint64 {
	c.n++
	return uint64(c.n) * 0x9e3779b97f4a7c15
}

func seed(v int64) *int64 { return &v }

func TestSynthesize_SameSeedIsBitIdentical(t *testing.T) {
	bench := []float64{0.01, -0.02, 0.005, 0.013, -0.007, 0.002}
	alpha := []float64{1e-4, 1e-4, 1e-4, 1e-4, 1e-4, 1e-4}

	a := SynthesizeStrategyReturns(bench, 0.8, alpha, 0.5, NewSource(seed(42)))
	b := SynthesizeStrategyReturns(bench, 0.8, alpha, 0.5, NewSource(seed(42)))

	require.Len(t, a, len(bench))
	for i := range a {
		assert.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]), "index %d", i)
	}
}

func TestSynthesize_DifferentSeedsDiffer(t *testing.T) {
	bench := []float64{0.01, -0.02, 0.005, 0.013}
	alpha := []float64{0, 0, 0, 0}

	a := SynthesizeStrategyReturns(bench, 1, alpha, 1, NewSource(seed(1)))
	b := SynthesizeStrategyReturns(bench, 1, alpha, 1, NewSource(seed(2)))
	assert.NotEqual(t, a, b)
}

func TestSynthesize_ZeroNoiseIsExact(t *testing.T) {
	bench := []float64{0.01, -0.02, 0.005, 0.0}
	alpha := []float64{0.0002, 0.00019, 0.00018, 0.00017}
	beta := 1.3
	src := &countingSource{}

	out := SynthesizeStrategyReturns(bench, beta, alpha, 0, src)

	require.Len(t, out, len(bench))
	for i := range out {
		assert.Equal(t, alpha[i]+beta*bench[i], out[i])
	}
	assert.Zero(t, src.n, "no draws expected when noise is zero")
}

func TestSynthesize_ConstantBenchmarkSkipsSampling(t *testing.T) {
	bench := []float64{0.25, 0.25, 0.25}
	alpha := []float64{0.125, 0.125, 0.125}
	src := &countingSource{}

	out := SynthesizeStrategyReturns(bench, 2, alpha, 0.75, src)

	assert.Equal(t, []float64{0.625, 0.625, 0.625}, out)
	assert.Zero(t, src.n)
}

func TestSynthesize_TruncatesToShorter(t *testing.T) {
	bench := []float64{0.01, 0.02, 0.03}
	alpha := []float64{0.1, 0.1, 0.1, 0.1, 0.1}

	out := SynthesizeStrategyReturns(bench, 1, alpha, 0, nil)
	assert.Len(t, out, 3)

	out = SynthesizeStrategyReturns(bench[:1], 1, alpha, 0, nil)
	assert.Len(t, out, 1)
	assert.InDelta(t, 0.11, out[0], 1e-15)
}

func TestSynthesize_EmptyInputs(t *testing.T) {
	assert.Empty(t, SynthesizeStrategyReturns(nil, 1, []float64{0.1}, 0.5, nil))
	assert.Empty(t, SynthesizeStrategyReturns([]float64{0.1}, 1, nil, 0.5, nil))
}

func TestSynthesize_DoesNotMutateInputs(t *testing.T) {
	bench := []float64{0.01, -0.03, 0.02}
	alpha := []float64{0.001, 0.002, 0.003}
	benchCopy := append([]float64(nil), bench...)
	alphaCopy := append([]float64(nil), alpha...)

	_ = SynthesizeStrategyReturns(bench, 1.1, alpha, 0.4, NewSource(seed(7)))

	assert.Equal(t, benchCopy, bench)
	assert.Equal(t, alphaCopy, alpha)
}

func TestSynthesize_NegativeNoiseFractionUsesMagnitude(t *testing.T) {
	bench := []float64{0.01, -0.02, 0.005, 0.013}
	alpha := []float64{0, 0, 0, 0}

	pos := SynthesizeStrategyReturns(bench, 1, alpha, 0.3, NewSource(seed(9)))
	neg := SynthesizeStrategyReturns(bench, 1, alpha, -0.3, NewSource(seed(9)))
	assert.Equal(t, pos, neg)
}

func TestSynthesize_NoiseScale(t *testing.T) {
	n := 20000
	bench := make([]float64, n)
	for i := range bench {
		if i%2 == 0 {
			bench[i] = 0.01
		} else {
			bench[i] = -0.01
		}
	}
	alpha := make([]float64, n)

	out := SynthesizeStrategyReturns(bench, 0, alpha, 0.5, NewSource(seed(123)))

	// Population std of the benchmark is 0.01, so the noise std is 0.005.
	var sum, sq float64
	for _, v := range out {
		sum += v
		sq += v * v
	}
	mean := sum / float64(n)
	sd := math.Sqrt(sq/float64(n) - mean*mean)
	assert.InDelta(t, 0.005, sd, 0.0002)
	assert.InDelta(t, 0, mean, 0.0002)
}

func TestNanPopStdDev(t *testing.T) {
	assert.Equal(t, 0.0, nanPopStdDev(nil))
	assert.Equal(t, 0.0, nanPopStdDev([]float64{math.NaN(), math.NaN()}))
	assert.InDelta(t, 1.0, nanPopStdDev([]float64{1, math.NaN(), 3}), 1e-15)
	assert.Equal(t, 0.0, nanPopStdDev([]float64{math.Inf(1), 1}))
}
