package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CurveStats summarizes one equity curve.
type CurveStats struct {
	FinalEquity float64 `json:"finalEquity"`
	TotalReturn float64 `json:"totalReturn"`
	CAGR        float64 `json:"cagr"`
	AnnualVol   float64 `json:"annualVol"`
	Sharpe      float64 `json:"sharpe"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// Summary compares the benchmark and strategy curves of one run.
type Summary struct {
	Periods         int        `json:"periods"`
	Benchmark       CurveStats `json:"benchmark"`
	Strategy        CurveStats `json:"strategy"`
	ExcessReturn    float64    `json:"excessReturn"`
	AlphaHalfLife   *float64   `json:"alphaHalfLifeYears,omitempty"`
	CumulativeAlpha float64    `json:"cumulativeAlpha"`
}

// Summarize computes performance statistics for a return series and the
// equity curve compounded from it. Sharpe assumes a zero risk-free rate.
func Summarize(returns, equity []float64, capital float64, periodsPerYear int) CurveStats {
	if len(returns) == 0 || len(equity) == 0 || capital <= 0 {
		return CurveStats{}
	}
	ppy := float64(periodsPerYear)
	if ppy <= 0 {
		ppy = DefaultPeriodsPerYear
	}

	final := equity[len(equity)-1]
	cs := CurveStats{
		FinalEquity: final,
		TotalReturn: final/capital - 1,
		MaxDrawdown: MaxDrawdown(equity, capital),
	}

	years := float64(len(returns)) / ppy
	if final > 0 && years > 0 {
		cs.CAGR = math.Pow(final/capital, 1/years) - 1
	}

	if len(returns) > 1 {
		mean, sd := stat.MeanStdDev(returns, nil)
		cs.AnnualVol = sd * math.Sqrt(ppy)
		if sd > 0 {
			cs.Sharpe = mean / sd * math.Sqrt(ppy)
		}
	}
	return cs
}

// MaxDrawdown returns the largest peak-to-trough decline as a positive
// fraction, with capital as the opening peak.
func MaxDrawdown(equity []float64, capital float64) float64 {
	peak := capital
	worst := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// AlphaHalfLife is the time in years for alpha to halve. It is +Inf when the
// alpha does not decay.
func AlphaHalfLife(decayRate float64) float64 {
	if decayRate <= 0 {
		return math.Inf(1)
	}
	return math.Ln2 / decayRate
}
