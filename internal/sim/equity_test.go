package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquityCurve_Example(t *testing.T) {
	eq := EquityCurve([]float64{0.1, -0.1, 0.0}, 100)
	require.Len(t, eq, 3)
	assert.InDelta(t, 110.0, eq[0], 1e-9)
	assert.InDelta(t, 99.0, eq[1], 1e-9)
	assert.InDelta(t, 99.0, eq[2], 1e-9)
}

func TestEquityCurve_ZeroReturnsStayFlat(t *testing.T) {
	eq := EquityCurve(make([]float64, 50), 2500)
	for _, v := range eq {
		assert.Equal(t, 2500.0, v)
	}
}

func TestEquityCurve_Empty(t *testing.T) {
	assert.Empty(t, EquityCurve(nil, 100))
	assert.Empty(t, EquityCurve([]float64{}, 100))
}

func TestEquityCurve_MatchesProduct(t *testing.T) {
	r := []float64{0.012, -0.004, 0.031, -0.022, 0.0, 0.007, -0.015, 0.009}
	c := 1000.0
	eq := EquityCurve(r, c)

	prod := 1.0
	for i, ri := range r {
		prod *= 1 + ri
		assert.InDelta(t, c*prod, eq[i], 1e-9)
	}

	// Ratio of last to first equals the product of the remaining growth factors.
	tail := 1.0
	for _, ri := range r[1:] {
		tail *= 1 + ri
	}
	assert.InDelta(t, tail, eq[len(eq)-1]/eq[0], 1e-12)
}

func TestEquityCurve_LongSeriesNoDrift(t *testing.T) {
	r := make([]float64, 2520)
	for i := range r {
		r[i] = 0.0004
	}
	eq := EquityCurve(r, 1)
	want := math.Pow(1.0004, 2520)
	assert.InEpsilon(t, want, eq[len(eq)-1], 1e-10)
}

func TestEquityCurves_IndependentSeries(t *testing.T) {
	b, s, err := EquityCurves([]float64{0.1, 0.1}, []float64{-0.5}, 100)
	require.NoError(t, err)
	assert.Len(t, b, 2)
	assert.Len(t, s, 1)
	assert.InDelta(t, 121.0, b[1], 1e-9)
	assert.InDelta(t, 50.0, s[0], 1e-9)
}

func TestEquityCurves_RejectsBadCapital(t *testing.T) {
	for _, c := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, _, err := EquityCurves([]float64{0.1}, []float64{0.1}, c)
		assert.ErrorIs(t, err, ErrInvalidParameter, "capital %v", c)
	}
}
