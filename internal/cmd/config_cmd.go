package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/tui/components"
)

// --- config (parent) ---

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `View and manage alpha-decay configuration.

When run without subcommands, displays the merged configuration (defaults,
config.json, ALPHADECAY_* env vars and .env).

Subcommands:
  presets    List the built-in parameter presets
  use        Apply a preset to config.json
  validate   Check the configuration and exit non-zero on errors`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if configJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}

		th := newTheme(cfg.Display.DarkMode)
		row := func(label, value string) {
			fmt.Println("  " + th.Label.Width(14).Render(label) + th.Value.Render(value))
		}
		source := configPath()
		if source == "" {
			source = "defaults (no config file)"
		}

		fmt.Println(th.Title.Render("Configuration"))
		fmt.Println(th.Dim("  " + source))
		fmt.Println()

		p := cfg.Simulation
		fmt.Println(th.Subtitle.Render("Simulation"))
		row("CAPITAL", components.Currency(p.InitialCapital))
		row("TICKER", p.Ticker)
		row("YEARS", strconv.Itoa(p.Years))
		row("ALPHA", components.Percent(p.InitialAlpha))
		row("DECAY", strconv.FormatFloat(p.DecayRate, 'g', -1, 64))
		row("BETA", strconv.FormatFloat(p.Beta, 'g', -1, 64))
		row("NOISE", strconv.FormatFloat(p.NoiseStdFrac, 'g', -1, 64))
		row("PERIODS/YR", strconv.Itoa(p.PeriodsPerYear))
		seed := "random"
		if p.Seed != nil {
			seed = strconv.FormatInt(*p.Seed, 10)
		}
		row("SEED", seed)
		fmt.Println()

		fmt.Println(th.Subtitle.Render("Benchmark"))
		row("SOURCE", cfg.Benchmark.Source)
		csvPath := cfg.Benchmark.CSVPath
		if csvPath == "" {
			csvPath = "-"
		}
		row("CSV", csvPath)
		fmt.Println()

		d := cfg.Display
		fmt.Println(th.Subtitle.Render("Display"))
		row("WINDOW", strconv.Itoa(d.Window))
		row("MAX POINTS", strconv.Itoa(d.MaxPoints))
		row("INTERVAL", d.Interval.String())
		row("DARK MODE", strconv.FormatBool(d.DarkMode))
		fmt.Println()

		fmt.Println(th.Subtitle.Render("Logging"))
		row("LEVEL", cfg.Log.Level)
		logTo := cfg.Log.File
		if logTo == "" {
			logTo = "stderr"
		}
		row("FILE", logTo)
		row("PRETTY", strconv.FormatBool(cfg.Log.Pretty))

		if errs := config.Validate(cfg); len(errs) > 0 {
			fmt.Println()
			return printValidation(th, errs)
		}
		return nil
	},
}

// --- config presets ---

var configPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in parameter presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		th := newTheme(cfg.Display.DarkMode)

		fmt.Println(th.Title.Render("Presets"))
		fmt.Println()
		fmt.Printf("  %s  %s  %s  %s  %s  %s\n",
			th.TableHeader.Width(16).Render("NAME"),
			th.TableHeader.Width(8).Render("ALPHA"),
			th.TableHeader.Width(8).Render("DECAY"),
			th.TableHeader.Width(6).Render("BETA"),
			th.TableHeader.Width(6).Render("NOISE"),
			th.TableHeader.Render("DESCRIPTION"),
		)
		fmt.Println("  " + th.Divider(90))

		for _, p := range config.ListPresets() {
			fmt.Printf("  %s  %s  %s  %s  %s  %s\n",
				th.Value.Width(16).Render(p.Name),
				th.Value.Width(8).Render(components.Percent(p.InitialAlpha)),
				th.Value.Width(8).Render(strconv.FormatFloat(p.DecayRate, 'g', -1, 64)),
				th.Value.Width(6).Render(strconv.FormatFloat(p.Beta, 'g', -1, 64)),
				th.Value.Width(6).Render(strconv.FormatFloat(p.NoiseStdFrac, 'g', -1, 64)),
				th.Dim(p.Description),
			)
		}
		fmt.Println()
		fmt.Println(th.Dim("  use one with 'alpha-decay run --preset <name>' or 'alpha-decay config use <name>'"))
		return nil
	},
}

// --- config use ---

var configUseCmd = &cobra.Command{
	Use:   "use <preset>",
	Short: "Apply a preset to config.json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := config.ApplyPreset(cfg, args[0]); err != nil {
			return err
		}
		path := configPath()
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}

		th := newTheme(cfg.Display.DarkMode)
		fmt.Println(th.StatusBadge("ok") + " " + th.Bold("applied preset") + " " + th.Accent(args[0]) + th.Dim(" -> "+path))
		return nil
	},
}

// --- config validate ---

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the merged configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		th := newTheme(cfg.Display.DarkMode)
		if errs := config.Validate(cfg); len(errs) > 0 {
			return printValidation(th, errs)
		}
		fmt.Println(th.StatusBadge("ok") + " " + th.Bold("configuration is valid"))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "print the merged config as JSON")
	configCmd.AddCommand(configPresetsCmd)
	configCmd.AddCommand(configUseCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
