package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/health"
)

var (
	healthCheck    string
	healthCategory string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run environment and config health checks",
	Long: `Run diagnostic checks against the environment alpha-decay runs in.

Checks are grouped into categories:
  system   - Python version, yfinance/pandas, fetch script
  project  - config.json present and valid, log destination writable
  data     - benchmark CSV readable, or download configured
  runtime  - interactive terminal

Use --category to run only a specific group, or --check to run a single
named check. Exits non-zero when any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loadErr := loadConfig()
		checker := health.NewChecker(health.Options{
			ProjectRoot: config.ProjectRoot(),
			ConfigPath:  configPath(),
			Config:      cfg,
			LoadErr:     loadErr,
		})

		dark := cfg != nil && cfg.Display.DarkMode
		th := newTheme(dark)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var report *health.Report
		switch {
		case healthCheck != "":
			r, ok := checker.RunCheck(ctx, healthCheck)
			if !ok {
				names := ""
				for _, c := range checker.Checks() {
					names += " " + c.Name
				}
				return fmt.Errorf("unknown check %q; available:%s", healthCheck, names)
			}
			report = r
		case healthCategory != "":
			report = checker.RunCategory(ctx, healthCategory)
			if report.Total == 0 {
				return fmt.Errorf("unknown category %q", healthCategory)
			}
		default:
			report = checker.RunAll(ctx)
		}

		fmt.Print(health.FormatReport(th, report))
		if !report.Healthy {
			return fmt.Errorf("%d check(s) failed", report.Failed)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().StringVar(&healthCheck, "check", "", "run a specific named check")
	healthCmd.Flags().StringVar(&healthCategory, "category", "", "run checks in a category: system, project, data, or runtime")
	rootCmd.AddCommand(healthCmd)
}
