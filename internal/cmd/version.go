package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Dallionking/alpha-decay/internal/tui/components"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the build version, git commit, build date, and Go runtime details.`,
	Run: func(cmd *cobra.Command, args []string) {
		th := newTheme(false)
		row := func(label, value string) {
			fmt.Println(th.Label.Width(10).Render(label) + th.Value.Render(value))
		}
		fmt.Println(th.Accent(components.Logo) + "  " + th.Value.Render("v"+Version))
		fmt.Println()
		row("VERSION", Version)
		row("COMMIT", GitCommit)
		row("BUILT", BuildDate)
		row("GO", runtime.Version())
		row("OS/ARCH", runtime.GOOS+"/"+runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
