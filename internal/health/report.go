package health

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// category display order
var categoryOrder = []string{"system", "project", "data", "runtime"}

func categoryLabel(cat string) string {
	switch cat {
	case "system":
		return "System Dependencies"
	case "project":
		return "Configuration"
	case "data":
		return "Benchmark Data"
	case "runtime":
		return "Runtime"
	default:
		return cat
	}
}

// FormatReport renders the report for terminal output.
func FormatReport(th styles.Theme, r *Report) string {
	var b strings.Builder

	b.WriteString("\n  " + th.Title.Render("Health Check") + "\n")
	b.WriteString("  " + th.Divider(60) + "\n")

	grouped := make(map[string][]CheckResult)
	for _, res := range r.Results {
		grouped[res.Category] = append(grouped[res.Category], res)
	}

	nameStyle := th.NewStyle().Width(18).Foreground(th.Palette.TextPrimary)
	msgStyle := th.NewStyle().Width(50).Foreground(th.Palette.TextSecondary)
	durStyle := th.NewStyle().Width(8).Foreground(th.Palette.TextMuted).AlignHorizontal(1)
	catStyle := th.NewStyle().Foreground(th.Palette.AccentSecondary).Bold(true)

	for _, cat := range categoryOrder {
		results := grouped[cat]
		if len(results) == 0 {
			continue
		}
		b.WriteString("\n  " + catStyle.Render(categoryLabel(cat)) + "\n")
		for _, res := range results {
			fmt.Fprintf(&b, "  %s %s %s %s\n",
				statusSymbol(th, res.Status),
				nameStyle.Render(res.Name),
				msgStyle.Render(styles.TruncateWithEllipsis(res.Message, 48)),
				durStyle.Render(formatDuration(res.Duration)),
			)
		}
	}

	b.WriteString("\n  " + th.Divider(60) + "\n")
	summary := fmt.Sprintf("%d/%d passed", r.Passed, r.Total)
	if r.Warned > 0 {
		summary += fmt.Sprintf(", %d warning(s)", r.Warned)
	}
	if r.Failed > 0 {
		summary += fmt.Sprintf(", %d failed", r.Failed)
	}
	b.WriteString("  " + th.Subtitle.Render(summary) + "  " + overallBadge(th, r) + "\n")
	b.WriteString(th.Dim(fmt.Sprintf("  completed in %s", formatDuration(r.Duration))) + "\n")

	return b.String()
}

func statusSymbol(th styles.Theme, s Status) string {
	bold := th.NewStyle().Bold(true)
	switch s {
	case StatusPass:
		return bold.Foreground(th.Palette.StatusOK).Render(s.Symbol())
	case StatusWarn:
		return bold.Foreground(th.Palette.StatusWarn).Render(s.Symbol())
	case StatusFail:
		return bold.Foreground(th.Palette.StatusError).Render(s.Symbol())
	default:
		return th.Dim("?")
	}
}

func overallBadge(th styles.Theme, r *Report) string {
	bold := th.NewStyle().Bold(true)
	if r.Failed > 0 {
		return bold.Foreground(th.Palette.StatusError).Render("UNHEALTHY")
	}
	if r.Warned > 0 {
		return bold.Foreground(th.Palette.StatusWarn).Render("DEGRADED")
	}
	return bold.Foreground(th.Palette.StatusOK).Render("HEALTHY")
}

// formatDuration formats a duration to a short human-readable string.
func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1 {
		return "<1ms"
	}
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000.0)
}
