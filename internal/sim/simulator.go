package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Result carries every series produced by one simulation run.
type Result struct {
	ID               string
	Params           Params
	BenchmarkReturns []float64
	StrategyReturns  []float64
	Alpha            AlphaSeries
	BenchmarkEquity  []float64
	StrategyEquity   []float64
	Summary          Summary
}

// Simulator runs the alpha-decay pipeline end to end.
type Simulator struct {
	log zerolog.Logger
}

// NewSimulator creates a Simulator that logs through l.
func NewSimulator(l zerolog.Logger) *Simulator {
	return &Simulator{log: l.With().Str("component", "simulator").Logger()}
}

// Run validates p and turns the benchmark return series into a synthetic
// strategy with its equity curves. The alpha horizon matches the benchmark
// length. When src is nil one is derived from p.Seed.
func (s *Simulator) Run(p Params, benchmark []float64, src rand.Source) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	id := uuid.NewString()
	log := s.log.With().Str("run_id", id).Logger()

	br := make([]float64, len(benchmark))
	sanitized := 0
	for i, v := range benchmark {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			sanitized++
			continue
		}
		br[i] = v
	}
	if sanitized > 0 {
		log.Warn().Int("count", sanitized).Msg("non-finite benchmark returns replaced with 0")
	}

	alpha, err := AlphaDecayCurve(p.InitialAlpha, p.DecayRate, len(br), p.PeriodsPerYear)
	if err != nil {
		return nil, fmt.Errorf("building alpha curve: %w", err)
	}
	log.Debug().Int("periods", alpha.Len()).Msg("alpha curve built")

	if src == nil {
		src = NewSource(p.Seed)
	}
	strat := SynthesizeStrategyReturns(br, p.Beta, alpha.Values, p.NoiseStdFrac, src)
	log.Debug().Int("periods", len(strat)).Msg("strategy returns synthesized")

	benchEq, stratEq, err := EquityCurves(br, strat, p.InitialCapital)
	if err != nil {
		return nil, fmt.Errorf("compounding equity: %w", err)
	}

	res := &Result{
		ID:               id,
		Params:           p,
		BenchmarkReturns: br,
		StrategyReturns:  strat,
		Alpha:            alpha,
		BenchmarkEquity:  benchEq,
		StrategyEquity:   stratEq,
	}
	res.Summary = summarizeRun(res)

	log.Info().
		Int("periods", len(br)).
		Float64("benchmark_final", res.Summary.Benchmark.FinalEquity).
		Float64("strategy_final", res.Summary.Strategy.FinalEquity).
		Dur("elapsed", time.Since(start)).
		Msg("simulation complete")

	return res, nil
}

func summarizeRun(r *Result) Summary {
	p := r.Params
	sum := Summary{
		Periods:   len(r.BenchmarkReturns),
		Benchmark: Summarize(r.BenchmarkReturns, r.BenchmarkEquity, p.InitialCapital, p.PeriodsPerYear),
		Strategy:  Summarize(r.StrategyReturns, r.StrategyEquity, p.InitialCapital, p.PeriodsPerYear),
	}
	sum.ExcessReturn = sum.Strategy.TotalReturn - sum.Benchmark.TotalReturn
	if hl := AlphaHalfLife(p.DecayRate); !math.IsInf(hl, 0) {
		sum.AlphaHalfLife = &hl
	}
	for _, a := range r.Alpha.Values[:len(r.StrategyReturns)] {
		sum.CumulativeAlpha += a
	}
	return sum
}
