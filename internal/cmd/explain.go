package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Dallionking/alpha-decay/internal/tui/views"
)

var (
	explainPlain bool
	explainRaw   bool
	explainWidth int
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Describe the alpha-decay model",
	Long: `Show how the simulation works: the decay curve, how strategy returns are
synthesized from the benchmark, and what the summary statistics mean.

Opens a scrolling pager on a terminal; use --plain to print instead, or --raw
for the markdown source.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if explainRaw {
			fmt.Print(views.ExplainMarkdown())
			return nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		th := newTheme(cfg.Display.DarkMode)

		if explainPlain || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(views.RenderExplain(th, explainWidth))
			return nil
		}
		return views.RunExplain(th)
	},
}

func init() {
	explainCmd.Flags().BoolVar(&explainPlain, "plain", false, "print instead of opening the pager")
	explainCmd.Flags().BoolVar(&explainRaw, "raw", false, "print the markdown source")
	explainCmd.Flags().IntVar(&explainWidth, "width", 80, "wrap width for --plain")
	rootCmd.AddCommand(explainCmd)
}
