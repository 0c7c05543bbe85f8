package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/tui/views"
)

var (
	initPreset   string
	initDefaults bool
	initForce    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config.json through the parameter wizard",
	Long: `Create or update the project's config.json.

The wizard walks through four steps:
  1. Portfolio  -- capital, benchmark ticker, years of history
  2. Alpha      -- initial alpha, decay rate, beta, noise, seed
  3. Display    -- colour theme
  4. Confirm    -- review and save

Use --defaults to skip the wizard and write the built-in settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if initPreset != "" {
			if err := config.ApplyPreset(cfg, initPreset); err != nil {
				return err
			}
		}

		path := cfgFile
		if path == "" {
			path = configPath()
		}
		if path == "" {
			path = config.DefaultPath()
		}
		th := newTheme(cfg.Display.DarkMode)

		if initDefaults {
			if _, err := os.Stat(path); err == nil && !initForce {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
		} else {
			wr, err := views.RunWizard(cfg.Simulation, cfg.Display.DarkMode, th)
			if err != nil {
				return err
			}
			if !wr.Confirmed {
				fmt.Println(th.Dim("cancelled, nothing written"))
				return nil
			}
			cfg.Simulation = wr.Params
			cfg.Display.DarkMode = wr.DarkMode
			th = newTheme(cfg.Display.DarkMode)
		}

		if errs := config.Validate(cfg); len(errs) > 0 {
			return printValidation(th, errs)
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Println(th.StatusBadge("ok") + " " + th.Bold("wrote") + " " + th.Accent(path))
		fmt.Println(th.Dim("next: alpha-decay run"))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initPreset, "preset", "", "seed the wizard from a named preset")
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "skip the wizard and write the current settings")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file with --defaults")
	rootCmd.AddCommand(initCmd)
}
