package sim

// EquityCurve compounds returns onto capital:
//
//	equity[i] = capital * (1+r[0]) * ... * (1+r[i])
//
// An empty return series yields an empty curve.
func EquityCurve(returns []float64, capital float64) []float64 {
	out := make([]float64, len(returns))
	value := capital
	for i, r := range returns {
		value *= 1 + r
		out[i] = value
	}
	return out
}

// EquityCurves compounds the benchmark and strategy series independently from
// the same starting capital.
func EquityCurves(benchmark, strategy []float64, capital float64) (bench, strat []float64, err error) {
	if !isFinite(capital) || capital <= 0 {
		return nil, nil, invalid("initialCapital", "must be a finite value > 0, got %v", capital)
	}
	return EquityCurve(benchmark, capital), EquityCurve(strategy, capital), nil
}
