package config

import (
	"fmt"
	"sort"
)

// Preset is a named set of alpha-process parameters that can be applied on
// top of a loaded config.
type Preset struct {
	Name         string
	Description  string
	InitialAlpha float64
	DecayRate    float64
	Beta         float64
	NoiseStdFrac float64
}

var presets = map[string]Preset{
	"baseline": {
		Name:         "baseline",
		Description:  "5% annual alpha decaying at 0.1/yr, market beta",
		InitialAlpha: 0.05, DecayRate: 0.1, Beta: 1.0, NoiseStdFrac: 0.25,
	},
	"crowded": {
		Name:         "crowded",
		Description:  "strong edge arbitraged away within a couple of years",
		InitialAlpha: 0.12, DecayRate: 0.8, Beta: 1.0, NoiseStdFrac: 0.3,
	},
	"persistent": {
		Name:         "persistent",
		Description:  "modest edge that never decays",
		InitialAlpha: 0.03, DecayRate: 0, Beta: 0.9, NoiseStdFrac: 0.2,
	},
	"market-neutral": {
		Name:         "market-neutral",
		Description:  "zero beta, pure alpha plus idiosyncratic noise",
		InitialAlpha: 0.06, DecayRate: 0.25, Beta: 0, NoiseStdFrac: 0.5,
	},
	"noiseless": {
		Name:         "noiseless",
		Description:  "deterministic run with the noise term switched off",
		InitialAlpha: 0.05, DecayRate: 0.1, Beta: 1.0, NoiseStdFrac: 0,
	},
}

// ListPresets returns the built-in presets sorted by name.
func ListPresets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ApplyPreset overwrites the alpha-process parameters of cfg with the named
// preset. Capital, ticker, horizon, and seed are left alone.
func ApplyPreset(cfg *Config, name string) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	cfg.Simulation.InitialAlpha = p.InitialAlpha
	cfg.Simulation.DecayRate = p.DecayRate
	cfg.Simulation.Beta = p.Beta
	cfg.Simulation.NoiseStdFrac = p.NoiseStdFrac
	return nil
}
