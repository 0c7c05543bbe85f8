package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/marketdata"
	"github.com/Dallionking/alpha-decay/internal/python"
	"github.com/Dallionking/alpha-decay/internal/sim"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
	"github.com/Dallionking/alpha-decay/internal/tui/views"
)

var (
	runPreset      string
	runOnce        bool
	runJSON        bool
	runWatch       bool
	runInteractive bool
	runWidth       int
	runHeight      int
)

// runFlags maps each simulation/display flag onto its config key.
var runFlags = []struct {
	name, key string
}{
	{"capital", "simulation.initialCapital"},
	{"ticker", "simulation.ticker"},
	{"years", "simulation.years"},
	{"alpha", "simulation.initialAlpha"},
	{"decay", "simulation.decayRate"},
	{"beta", "simulation.beta"},
	{"noise", "simulation.noiseStdFrac"},
	{"periods-per-year", "simulation.periodsPerYear"},
	{"seed", "simulation.seed"},
	{"source", "benchmark.source"},
	{"csv", "benchmark.csvPath"},
	{"window", "display.window"},
	{"max-points", "display.maxPoints"},
	{"interval", "display.interval"},
	{"dark", "display.darkMode"},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a decaying strategy and animate it",
	Long: `Load benchmark closes, synthesize a strategy whose alpha decays as
α(t) = α₀ × e^(-λt), and animate both equity curves.

Benchmark data comes from a CSV file (--csv) or is downloaded through the
yfinance helper script. Flags override config.json and ALPHADECAY_* env vars.

Keys during the animation:
  space/p  pause or resume
  n        step one frame while paused
  r        restart
  q        quit

Use --once for a single static frame, --json for the summary only, and
--watch to re-run whenever the config file changes.`,
	Example: `  alpha-decay run
  alpha-decay run --ticker QQQ --years 10 --alpha 0.08 --decay 0.3
  alpha-decay run --csv data/spy.csv --seed 42 --once
  alpha-decay run --preset crowded --json`,
	RunE: runSimulation,
}

func init() {
	f := runCmd.Flags()
	f.Float64("capital", 0, "initial capital")
	f.String("ticker", "", "benchmark ticker")
	f.Int("years", 0, "years of history")
	f.Float64("alpha", 0, "initial annualized alpha (0.05 = 5%)")
	f.Float64("decay", 0, "annual decay rate λ")
	f.Float64("beta", 0, "strategy beta to the benchmark")
	f.Float64("noise", 0, "idiosyncratic noise as a fraction of benchmark volatility")
	f.Int("periods-per-year", 0, "return periods per year")
	f.Int64("seed", 0, "random seed (omit for a random run)")
	f.String("source", "", "benchmark source: auto, csv or python")
	f.String("csv", "", "benchmark CSV file with Date and Close columns")
	f.Int("window", 0, "visible points in the equity chart")
	f.Int("max-points", 0, "max points drawn per line (0 = no downsampling)")
	f.Duration("interval", 0, "delay between frames")
	f.Bool("dark", false, "dark colour theme")

	for _, rf := range runFlags {
		_ = viper.BindPFlag(rf.key, f.Lookup(rf.name))
	}

	f.StringVar(&runPreset, "preset", "", "start from a named preset (see 'config presets')")
	f.BoolVar(&runOnce, "once", false, "print the final frame and exit")
	f.BoolVar(&runJSON, "json", false, "print the run summary as JSON and exit")
	f.BoolVar(&runWatch, "watch", false, "re-run when the config file changes")
	f.BoolVarP(&runInteractive, "interactive", "i", false, "edit parameters in a wizard first")
	f.IntVar(&runWidth, "width", 120, "frame width for --once")
	f.IntVar(&runHeight, "height", 40, "frame height for --once")

	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return err
	}
	th := newTheme(cfg.Display.DarkMode)
	if errs := config.Validate(cfg); len(errs) > 0 {
		return printValidation(th, errs)
	}

	if runInteractive {
		wr, err := views.RunWizard(cfg.Simulation, cfg.Display.DarkMode, th)
		if err != nil {
			return err
		}
		if !wr.Confirmed {
			fmt.Println(th.Dim("cancelled"))
			return nil
		}
		cfg.Simulation = wr.Params
		cfg.Display.DarkMode = wr.DarkMode
		th = newTheme(cfg.Display.DarkMode)
	}

	tty := isatty.IsTerminal(os.Stdout.Fd())
	fullScreen := tty && !runOnce && !runJSON
	log, closer, err := newLogger(cfg, fullScreen)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	returns, err := loadBenchmark(ctx, cfg, log, th, tty && !runJSON)
	if err != nil {
		log.Error().Err(err).Str("ticker", cfg.Simulation.Ticker).Msg("benchmark load failed")
		return err
	}

	simulator := sim.NewSimulator(log)
	res, err := simulator.Run(cfg.Simulation, returns, nil)
	if err != nil {
		return reportRunError(th, err)
	}

	switch {
	case runJSON:
		return writeJSON(res)
	case runOnce || !tty:
		fmt.Println(views.RenderFrame(res, cfg.Display.AnimationOptions(), th, runWidth, runHeight))
		return nil
	}

	opts := views.AnimationOptions{
		Result:   res,
		Options:  cfg.Display.AnimationOptions(),
		Interval: cfg.Display.Interval,
		Theme:    th,
	}
	if runWatch {
		path := configPath()
		if path == "" {
			return errors.New("--watch needs a config file; run 'alpha-decay init' first")
		}
		w, err := config.NewWatcher(path, log)
		if err != nil {
			return err
		}
		defer w.Close()

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		opts.Changes = w.Watch(watchCtx)
		opts.Reload = reloader(ctx, cmd, cfg, returns, log)
	}
	return views.RunAnimation(opts)
}

// resolveRunConfig merges file, env and flags, then applies --preset.
func resolveRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if runPreset == "" {
		return cfg, nil
	}
	if err := config.ApplyPreset(cfg, runPreset); err != nil {
		return nil, err
	}
	// Explicit flags still win over the preset.
	f := cmd.Flags()
	for flag, field := range map[string]*float64{
		"alpha": &cfg.Simulation.InitialAlpha,
		"decay": &cfg.Simulation.DecayRate,
		"beta":  &cfg.Simulation.Beta,
		"noise": &cfg.Simulation.NoiseStdFrac,
	} {
		if f.Changed(flag) {
			*field, _ = f.GetFloat64(flag)
		}
	}
	return cfg, nil
}

// reloader re-reads the config file and re-runs the simulation. Benchmark
// data is fetched again only when the ticker, horizon or source changed.
func reloader(ctx context.Context, cmd *cobra.Command, current *config.Config, returns []float64, log zerolog.Logger) func() (*sim.Result, error) {
	simulator := sim.NewSimulator(log)
	bench := current.Benchmark
	ticker, years := current.Simulation.Ticker, current.Simulation.Years

	return func() (*sim.Result, error) {
		if err := readConfig(); err != nil {
			return nil, err
		}
		configErr = nil
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			return nil, err
		}
		if errs := config.Validate(cfg); len(errs) > 0 {
			return nil, fmt.Errorf("invalid configuration: %w", errs[0])
		}

		if cfg.Benchmark != bench || cfg.Simulation.Ticker != ticker || cfg.Simulation.Years != years {
			fresh, err := loadBenchmark(ctx, cfg, log, styles.Theme{}, false)
			if err != nil {
				return nil, err
			}
			returns = fresh
			bench, ticker, years = cfg.Benchmark, cfg.Simulation.Ticker, cfg.Simulation.Years
		}
		log.Info().Str("path", configPath()).Msg("config changed, re-running")
		return simulator.Run(cfg.Simulation, returns, nil)
	}
}

// loadBenchmark resolves the benchmark source and returns per-period returns.
// With spinner set, downloads show progress on the terminal.
func loadBenchmark(ctx context.Context, cfg *config.Config, log zerolog.Logger, th styles.Theme, spinner bool) ([]float64, error) {
	p := cfg.Simulation
	var (
		bars []marketdata.Bar
		err  error
	)

	if useCSV(cfg.Benchmark) {
		log.Debug().Str("path", cfg.Benchmark.CSVPath).Msg("loading benchmark csv")
		bars, err = marketdata.CSVSource{Path: cfg.Benchmark.CSVPath}.Closes(ctx, p.Ticker, p.Years)
	} else {
		runner, rerr := python.NewRunner(config.ProjectRoot())
		if rerr != nil {
			return nil, fmt.Errorf("%w; set benchmark.csvPath or pass --csv", rerr)
		}
		src := func(onMessage func(string)) marketdata.Source {
			return marketdata.PythonSource{Fetcher: runner, Log: log, OnMessage: onMessage}
		}
		if spinner {
			bars, err = views.RunFetch(ctx, src, p.Ticker, p.Years, th)
		} else {
			bars, err = src(nil).Closes(ctx, p.Ticker, p.Years)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s benchmark: %w", p.Ticker, err)
	}

	closes := marketdata.CloseValues(bars)
	log.Info().
		Str("ticker", p.Ticker).
		Int("bars", len(bars)).
		Msg("benchmark loaded")
	return marketdata.Returns(closes), nil
}

func useCSV(b config.BenchmarkConfig) bool {
	switch b.Source {
	case config.SourceCSV:
		return true
	case config.SourcePython:
		return false
	default:
		return b.CSVPath != ""
	}
}

// reportRunError prints parameter errors field by field.
func reportRunError(th styles.Theme, err error) error {
	var pe sim.ParamErrors
	if !errors.As(err, &pe) {
		return err
	}
	lines := make([]string, len(pe))
	for i, e := range pe {
		lines[i] = e.Error()
	}
	printErrors(th, "invalid parameters", lines)
	return err
}

type runReport struct {
	RunID   string      `json:"runId"`
	Params  sim.Params  `json:"params"`
	Summary sim.Summary `json:"summary"`
}

func writeJSON(res *sim.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(runReport{RunID: res.ID, Params: res.Params, Summary: res.Summary}); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return nil
}
