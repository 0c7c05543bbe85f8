package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/logger"
	"github.com/Dallionking/alpha-decay/internal/tui/components"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// tuiLogFile receives logs that would otherwise go to stderr while a
// full-screen view owns the terminal.
const tuiLogFile = "alpha-decay.log"

var (
	cfgFile  string
	verbose  bool
	noColor  bool
	logLevel string
	logFile  string

	// configErr is a config file that exists but could not be read.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "alpha-decay",
	Short: "Animate how a strategy's edge decays against its benchmark",
	Long: `alpha-decay simulates a trading strategy whose excess return fades
exponentially over time, compounds it next to a real benchmark, and animates
both equity curves alongside the decaying alpha.

Start with 'alpha-decay run', or 'alpha-decay init' to write a config.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		th := newTheme(false)
		fmt.Println(th.Accent(components.Logo) + "  " + th.Value.Render("v"+Version))
		fmt.Println(th.Dim("Run 'alpha-decay --help' for available commands"))
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	pf.BoolVar(&noColor, "no-color", false, "disable color output")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "log destination: stderr, stdout or a file path")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.file", pf.Lookup("log-file"))
}

func initConfig() {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load(filepath.Join(config.ProjectRoot(), ".env"))

	config.SetDefaults(viper.GetViper())
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("json")
		viper.AddConfigPath(config.ProjectRoot())
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// seed has no default, so AutomaticEnv alone would never surface it.
	_ = viper.BindEnv("simulation.seed")

	configErr = readConfig()
}

// readConfig loads the config file into viper. A missing file is fine when
// no --config was given.
func readConfig() error {
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || (errors.As(err, &notFound) && cfgFile == "") {
		return nil
	}
	return fmt.Errorf("reading config: %w", err)
}

// loadConfig decodes the merged config.
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if verbose && logLevel == "" {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// configPath is the config file in use, or "" when running on defaults.
func configPath() string {
	path := viper.ConfigFileUsed()
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// newLogger builds the command's logger. With fullScreen set, stderr output
// is redirected to a log file so it does not tear the display.
func newLogger(cfg *config.Config, fullScreen bool) (zerolog.Logger, io.Closer, error) {
	lc := cfg.Log
	if fullScreen && (lc.File == "" || lc.File == "stderr" || lc.File == "stdout") {
		lc.File = filepath.Join(config.ProjectRoot(), tuiLogFile)
		lc.Pretty = false
	}
	return logger.New(lc)
}

// newTheme honours --no-color and the NO_COLOR convention.
func newTheme(dark bool) styles.Theme {
	if noColor || termenv.EnvNoColor() {
		return styles.NewTheme(dark, styles.WithNoColor())
	}
	return styles.NewTheme(dark)
}

// printValidation lists config errors and returns a summary error.
func printValidation(th styles.Theme, errs []config.ValidationError) error {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	printErrors(th, "invalid configuration", lines)
	return fmt.Errorf("invalid configuration: %d error(s)", len(errs))
}

func printErrors(th styles.Theme, title string, lines []string) {
	fmt.Fprintln(os.Stderr, th.StatusBadge("error")+" "+th.Bold(title))
	for _, l := range lines {
		fmt.Fprintln(os.Stderr, "  "+th.Fg(th.Palette.StatusError, "x")+" "+l)
	}
}
