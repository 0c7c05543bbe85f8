package components

import (
	"strings"

	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// KeyHint describes a single keybinding hint for display in the footer.
type KeyHint struct {
	Key  string
	Desc string
}

// Footer renders context-aware keybinding hints.
type Footer struct {
	Hints []KeyHint
	Width int
}

// Render returns the styled footer string.
func (f Footer) Render(th styles.Theme) string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	keyStyle := th.NewStyle().Foreground(th.Palette.AccentPrimary).Bold(true)

	parts := make([]string, 0, len(f.Hints))
	for _, h := range f.Hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+th.Dim(h.Desc))
	}

	return th.Footer.Width(width).Render(strings.Join(parts, th.Dim(" • ")))
}

// AnimationFooter returns the hints for the animation screen.
func AnimationFooter(width int, paused bool) Footer {
	pause := "pause"
	if paused {
		pause = "resume"
	}
	hints := []KeyHint{
		{Key: "q", Desc: "quit"},
		{Key: "space", Desc: pause},
	}
	if paused {
		hints = append(hints, KeyHint{Key: "n", Desc: "step"})
	}
	hints = append(hints, KeyHint{Key: "r", Desc: "restart"})
	return Footer{Hints: hints, Width: width}
}

// WizardFooter returns a footer preset for wizard screens.
func WizardFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "tab", Desc: "next field"},
			{Key: "shift+tab", Desc: "prev field"},
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "back"},
		},
		Width: width,
	}
}

// PagerFooter returns a footer preset for scrolling text.
func PagerFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "↑↓", Desc: "scroll"},
			{Key: "pgup/pgdn", Desc: "page"},
			{Key: "q", Desc: "close"},
		},
		Width: width,
	}
}
