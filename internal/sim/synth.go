package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream is the fixed PCG increment paired with a user seed.
const pcgStream = 0x9e3779b97f4a7c15

// NewSource returns the random source used for idiosyncratic noise. A non-nil
// seed yields a deterministic source; nil draws fresh runtime entropy.
func NewSource(seed *int64) rand.Source {
	if seed != nil {
		return rand.NewPCG(uint64(*seed), pcgStream)
	}
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// SynthesizeStrategyReturns models strategy returns as
//
//	r[i] = alpha[i] + beta*benchmark[i] + eps[i],  eps ~ N(0, |noiseStdFrac| * std(benchmark))
//
// Both inputs are truncated to the shorter length. The noise draws come from
// src only when the noise standard deviation is positive; otherwise src is
// left untouched. Inputs are never modified.
func SynthesizeStrategyReturns(benchmark []float64, beta float64, alpha []float64, noiseStdFrac float64, src rand.Source) []float64 {
	n := min(len(benchmark), len(alpha))
	if n == 0 {
		return []float64{}
	}
	br := benchmark[:n]
	av := alpha[:n]

	epsStd := math.Abs(noiseStdFrac) * nanPopStdDev(br)
	if !isFinite(epsStd) {
		epsStd = 0
	}

	noise := make([]float64, n)
	if epsStd > 0 {
		if src == nil {
			src = NewSource(nil)
		}
		dist := distuv.Normal{Mu: 0, Sigma: epsStd, Src: src}
		for i := range noise {
			noise[i] = dist.Rand()
		}
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = av[i] + beta*br[i] + noise[i]
	}
	return out
}

// nanPopStdDev is the population standard deviation over the non-NaN values
// of x. It returns 0 when nothing usable remains or the result is not finite.
func nanPopStdDev(x []float64) float64 {
	vals := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	sd := math.Sqrt(stat.PopVariance(vals, nil))
	if !isFinite(sd) {
		return 0
	}
	return sd
}
