package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/marketdata"
	"github.com/Dallionking/alpha-decay/internal/python"
	"github.com/Dallionking/alpha-decay/internal/tui/components"
	"github.com/Dallionking/alpha-decay/internal/tui/views"
)

// --- data (parent) ---

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Benchmark data commands",
	Long: `Manage benchmark price data.

Subcommands:
  fetch     Download closes through yfinance into a CSV file
  inspect   Show coverage of a benchmark CSV file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// --- data fetch ---

var (
	fetchTicker string
	fetchYears  int
	fetchOut    string
	fetchUse    bool
)

var dataFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download benchmark closes into a CSV file",
	Long: `Download daily closes with the yfinance helper script and save them as a
Date,Close CSV that 'run --csv' reads without network access.

Use --use to point benchmark.csvPath in config.json at the new file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if fetchTicker == "" {
			fetchTicker = cfg.Simulation.Ticker
		}
		if fetchYears <= 0 {
			fetchYears = cfg.Simulation.Years
		}
		root := config.ProjectRoot()
		if fetchOut == "" {
			fetchOut = filepath.Join(root, "data", strings.ToLower(fetchTicker)+".csv")
		}

		th := newTheme(cfg.Display.DarkMode)
		tty := isatty.IsTerminal(os.Stdout.Fd())
		log, closer, err := newLogger(cfg, tty)
		if err != nil {
			return err
		}
		defer closer.Close()

		runner, err := python.NewRunner(root)
		if err != nil {
			return err
		}
		if missing := runner.MissingPackages(); len(missing) > 0 {
			return fmt.Errorf("missing python packages: %s (pip install %s)",
				strings.Join(missing, ", "), strings.Join(missing, " "))
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		src := func(onMessage func(string)) marketdata.Source {
			return marketdata.PythonSource{Fetcher: runner, Log: log, OnMessage: onMessage}
		}
		var bars []marketdata.Bar
		if tty {
			bars, err = views.RunFetch(ctx, src, fetchTicker, fetchYears, th)
		} else {
			bars, err = src(func(m string) { fmt.Println(th.Dim(m)) }).Closes(ctx, fetchTicker, fetchYears)
		}
		if err != nil {
			return fmt.Errorf("fetching %s: %w", fetchTicker, err)
		}

		if err := writeBars(fetchOut, bars); err != nil {
			return err
		}
		log.Info().Str("ticker", fetchTicker).Int("bars", len(bars)).Str("path", fetchOut).Msg("benchmark saved")
		fmt.Println(th.StatusBadge("ok") + " " + th.Bold(humanize.Comma(int64(len(bars)))+" bars") + " -> " + th.Accent(fetchOut))

		if fetchUse {
			path := configPath()
			if path == "" {
				path = config.DefaultPath()
			}
			cfg.Benchmark.CSVPath = fetchOut
			cfg.Simulation.Ticker = fetchTicker
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Println(th.Dim("benchmark.csvPath updated in " + path))
		}
		return nil
	},
}

func writeBars(path string, bars []marketdata.Bar) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := marketdata.WriteCSV(f, bars); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// --- data inspect ---

var dataInspectCmd = &cobra.Command{
	Use:   "inspect [csv]",
	Short: "Show coverage of a benchmark CSV file",
	Long:  `Display the bar count, date range, size and close range of a benchmark CSV. Defaults to benchmark.csvPath.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := cfg.Benchmark.CSVPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no CSV given and benchmark.csvPath is not set")
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		bars, err := marketdata.CSVSource{Path: path}.Closes(ctx, "", 0)
		if err != nil {
			return err
		}

		th := newTheme(cfg.Display.DarkMode)
		closes := marketdata.CloseValues(bars)
		lo, hi := closes[0], closes[0]
		for _, c := range closes {
			lo, hi = min(lo, c), max(hi, c)
		}
		first, last := bars[0].Date, bars[len(bars)-1].Date
		years := last.Sub(first).Hours() / 24 / 365.25

		row := func(label, value string) {
			fmt.Println(th.Label.Width(10).Render(label) + th.Value.Render(value))
		}
		fmt.Println(th.Title.Render("Benchmark Data"))
		fmt.Println()
		row("FILE", path)
		row("SIZE", humanize.Bytes(uint64(info.Size())))
		row("MODIFIED", humanize.Time(info.ModTime()))
		row("BARS", humanize.Comma(int64(len(bars))))
		row("RANGE", first.Format("2006-01-02")+" .. "+last.Format("2006-01-02")+"  ("+components.YearsLabel(years)+")")
		row("CLOSE", components.CurrencyLabel(lo)+" .. "+components.CurrencyLabel(hi))
		row("LAST", components.Currency(closes[len(closes)-1]))
		fmt.Println()
		fmt.Println(th.Sparkline(closes, 60))
		return nil
	},
}

func init() {
	dataFetchCmd.Flags().StringVar(&fetchTicker, "ticker", "", "ticker to download (default simulation.ticker)")
	dataFetchCmd.Flags().IntVar(&fetchYears, "years", 0, "years of history (default simulation.years)")
	dataFetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "output CSV (default data/<ticker>.csv)")
	dataFetchCmd.Flags().BoolVar(&fetchUse, "use", false, "save the file as benchmark.csvPath in config.json")

	dataCmd.AddCommand(dataFetchCmd)
	dataCmd.AddCommand(dataInspectCmd)
	rootCmd.AddCommand(dataCmd)
}
