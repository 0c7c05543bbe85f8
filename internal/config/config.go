package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Dallionking/alpha-decay/internal/animation"
	"github.com/Dallionking/alpha-decay/internal/logger"
	"github.com/Dallionking/alpha-decay/internal/sim"
)

// FileName is the default config file looked up in the project root.
const FileName = "config.json"

// EnvPrefix namespaces environment overrides, e.g. ALPHADECAY_SIMULATION_DECAYRATE.
const EnvPrefix = "ALPHADECAY"

// Benchmark source names.
const (
	SourceAuto   = "auto"
	SourceCSV    = "csv"
	SourcePython = "python"
)

// Config represents the full config.json schema.
type Config struct {
	Simulation sim.Params      `json:"simulation" mapstructure:"simulation"`
	Benchmark  BenchmarkConfig `json:"benchmark" mapstructure:"benchmark"`
	Display    DisplayConfig   `json:"display" mapstructure:"display"`
	Log        logger.Config   `json:"log" mapstructure:"log"`
}

// BenchmarkConfig selects where benchmark closes come from. With "auto", a
// configured CSV path wins and the yfinance helper is the fallback.
type BenchmarkConfig struct {
	Source  string `json:"source" mapstructure:"source"`
	CSVPath string `json:"csvPath" mapstructure:"csvPath"`
}

// DisplayConfig controls the animation.
type DisplayConfig struct {
	Window    int           `json:"window" mapstructure:"window"`
	MaxPoints int           `json:"maxPoints" mapstructure:"maxPoints"`
	Interval  time.Duration `json:"interval" mapstructure:"interval"`
	DarkMode  bool          `json:"darkMode" mapstructure:"darkMode"`
}

// AnimationOptions converts the display settings for the controller.
func (d DisplayConfig) AnimationOptions() animation.Options {
	return animation.Options{Window: d.Window, MaxPoints: d.MaxPoints}
}

// MarshalJSON writes the interval as a duration string ("50ms").
func (d DisplayConfig) MarshalJSON() ([]byte, error) {
	type alias DisplayConfig
	return json.Marshal(struct {
		alias
		Interval string `json:"interval"`
	}{alias(d), d.Interval.String()})
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := animation.DefaultOptions()
	return &Config{
		Simulation: sim.DefaultParams(),
		Benchmark:  BenchmarkConfig{Source: SourceAuto},
		Display: DisplayConfig{
			Window:    opts.Window,
			MaxPoints: opts.MaxPoints,
			Interval:  50 * time.Millisecond,
			DarkMode:  false,
		},
		Log: logger.Config{Level: "info"},
	}
}

// SetDefaults registers every key of Default on v so env vars and flags can
// override keys that are absent from the file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	p := d.Simulation

	v.SetDefault("simulation.initialCapital", p.InitialCapital)
	v.SetDefault("simulation.ticker", p.Ticker)
	v.SetDefault("simulation.years", p.Years)
	v.SetDefault("simulation.initialAlpha", p.InitialAlpha)
	v.SetDefault("simulation.decayRate", p.DecayRate)
	v.SetDefault("simulation.beta", p.Beta)
	v.SetDefault("simulation.noiseStdFrac", p.NoiseStdFrac)
	v.SetDefault("simulation.periodsPerYear", p.PeriodsPerYear)

	v.SetDefault("benchmark.source", d.Benchmark.Source)
	v.SetDefault("benchmark.csvPath", d.Benchmark.CSVPath)

	v.SetDefault("display.window", d.Display.Window)
	v.SetDefault("display.maxPoints", d.Display.MaxPoints)
	v.SetDefault("display.interval", d.Display.Interval)
	v.SetDefault("display.darkMode", d.Display.DarkMode)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.pretty", d.Log.Pretty)
}

// Load decodes the merged viper state (defaults, file, env, flags) into a
// Config. It does not validate; call Validate on the result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	// An unset seed means a random run, even if a bound flag left its
	// zero default in the decoded map.
	cfg.Simulation.Seed = nil
	if v.IsSet("simulation.seed") && v.Get("simulation.seed") != nil {
		seed := v.GetInt64("simulation.seed")
		cfg.Simulation.Seed = &seed
	}
	return &cfg, nil
}

// ReadFile loads a single config file on top of the defaults.
func ReadFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Load(v)
}

// Save writes cfg as indented JSON, replacing path atomically.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config.tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
