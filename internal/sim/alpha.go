package sim

import "math"

// DefaultPeriodsPerYear is the trading-day convention used for daily data.
const DefaultPeriodsPerYear = 252

// AlphaSeries is the per-period alpha curve. Periods and Values always have
// the same length.
type AlphaSeries struct {
	Periods []int
	Values  []float64
}

// Len returns the number of periods in the series.
func (a AlphaSeries) Len() int {
	return len(a.Values)
}

// Times returns the period indices as floats for plotting.
func (a AlphaSeries) Times() []float64 {
	out := make([]float64, len(a.Periods))
	for i, p := range a.Periods {
		out[i] = float64(p)
	}
	return out
}

// AlphaDecayCurve builds an exponentially decaying per-period alpha series.
//
// initialAlpha and decayRate are annual figures. Each period's alpha is the
// annual alpha spread evenly over periodsPerYear and decayed continuously in
// calendar years, so the curve does not depend on the periodicity chosen:
//
//	alpha[i] = initialAlpha / periodsPerYear * exp(-decayRate * i / periodsPerYear)
//
// A negative decayRate is accepted and produces growth.
func AlphaDecayCurve(initialAlpha, decayRate float64, timePeriods, periodsPerYear int) (AlphaSeries, error) {
	if timePeriods < 0 {
		return AlphaSeries{}, invalid("timePeriods", "must be >= 0, got %d", timePeriods)
	}
	if periodsPerYear <= 0 {
		return AlphaSeries{}, invalid("periodsPerYear", "must be > 0, got %d", periodsPerYear)
	}
	if !isFinite(initialAlpha) {
		return AlphaSeries{}, invalid("initialAlpha", "must be finite, got %v", initialAlpha)
	}
	if !isFinite(decayRate) {
		return AlphaSeries{}, invalid("decayRate", "must be finite, got %v", decayRate)
	}

	ppy := float64(periodsPerYear)
	perPeriod := initialAlpha / ppy

	series := AlphaSeries{
		Periods: make([]int, timePeriods),
		Values:  make([]float64, timePeriods),
	}
	for i := range timePeriods {
		tYears := float64(i) / ppy
		series.Periods[i] = i
		series.Values[i] = perPeriod * math.Exp(-decayRate*tYears)
	}
	return series, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
