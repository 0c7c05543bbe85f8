package components

import (
	"fmt"
	"strings"

	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// Logo is the short wordmark shown in the header.
const Logo = "α-decay"

// Header renders the app header bar.
type Header struct {
	Ticker string
	RunID  string
	State  string // "running", "paused", "finished"
	Frame  int
	Total  int
	Width  int
}

// Render returns the styled header string.
func (h Header) Render(th styles.Theme) string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	sep := th.Dim("  │  ")

	ticker := th.Label.Render("Benchmark: ") +
		th.NewStyle().Foreground(th.Palette.AccentGold).Bold(true).Render(h.Ticker)

	stateColor := th.Palette.StatusOK
	switch h.State {
	case "paused":
		stateColor = th.Palette.StatusWarn
	case "finished":
		stateColor = th.Palette.AccentPrimary
	}
	state := th.Badge(strings.ToUpper(h.State), stateColor)

	frame := th.Label.Render("Frame: ") +
		th.Value.Render(fmt.Sprintf("%d/%d", h.Frame, h.Total))

	content := th.Title.Render(Logo) + sep + ticker + sep + state + sep + frame
	if h.RunID != "" {
		content += sep + th.Dim(short(h.RunID))
	}

	return th.Header.Width(width).Render(content)
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
