package components

import (
	"strings"

	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// ProgressStep shows a multi-step progress indicator.
type ProgressStep struct {
	Steps   []string
	Current int // 0-indexed
}

// Render returns the styled progress indicator: done steps filled green,
// the current one bold in the accent colour, future ones hollow.
func (p ProgressStep) Render(th styles.Theme) string {
	if len(p.Steps) == 0 {
		return ""
	}

	parts := make([]string, 0, len(p.Steps))
	for i, label := range p.Steps {
		switch {
		case i < p.Current:
			parts = append(parts, th.Fg(th.Palette.StatusOK, "● "+label))
		case i == p.Current:
			parts = append(parts, th.NewStyle().Foreground(th.Palette.AccentPrimary).Bold(true).Render("● "+label))
		default:
			parts = append(parts, th.Dim("○ "+label))
		}
	}
	return strings.Join(parts, "  ")
}
