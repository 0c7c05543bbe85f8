package styles

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles a palette with the styles built from it. A Theme is a plain
// value passed to every renderer; nothing reads a global theme.
type Theme struct {
	Dark    bool
	Plain   bool // colour stripped
	Palette Palette

	r *lipgloss.Renderer

	Panel       lipgloss.Style
	Card        lipgloss.Style
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Profit      lipgloss.Style
	Loss        lipgloss.Style
	TableHeader lipgloss.Style
}

// Option customises NewTheme.
type Option func(*themeOptions)

type themeOptions struct {
	renderer *lipgloss.Renderer
	noColor  bool
}

// WithRenderer renders through r instead of a stdout renderer.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(o *themeOptions) { o.renderer = r }
}

// WithNoColor strips all colour, leaving only layout.
func WithNoColor() Option {
	return func(o *themeOptions) { o.noColor = true }
}

// NewTheme builds the dark or light theme.
func NewTheme(dark bool, opts ...Option) Theme {
	o := themeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	r := o.renderer
	if r == nil {
		r = lipgloss.NewRenderer(os.Stdout)
	}
	if o.noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	r.SetHasDarkBackground(dark)

	p := LightPalette()
	if dark {
		p = DarkPalette()
	}

	return Theme{
		Dark:    dark,
		Plain:   o.noColor,
		Palette: p,
		r:       r,

		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderNormal).
			Padding(0, 1),
		Card: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.BorderNormal).
			PaddingLeft(1).
			PaddingRight(1),
		Header: r.NewStyle().
			Foreground(p.AccentPrimary).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1),
		Footer: r.NewStyle().
			Foreground(p.TextMuted).
			PaddingLeft(1).
			PaddingRight(1),
		Title:       r.NewStyle().Foreground(p.AccentPrimary).Bold(true),
		Subtitle:    r.NewStyle().Foreground(p.TextSecondary),
		Label:       r.NewStyle().Foreground(p.TextMuted),
		Value:       r.NewStyle().Foreground(p.TextPrimary).Bold(true),
		Profit:      r.NewStyle().Foreground(p.StatusOK).Bold(true),
		Loss:        r.NewStyle().Foreground(p.StatusError).Bold(true),
		TableHeader: r.NewStyle().Foreground(p.TextSecondary).Bold(true).Underline(true),
	}
}

// NewStyle returns an empty style bound to the theme's renderer.
func (t Theme) NewStyle() lipgloss.Style {
	return t.r.NewStyle()
}

// Fg renders s in colour c.
func (t Theme) Fg(c lipgloss.Color, s string) string {
	return t.r.NewStyle().Foreground(c).Render(s)
}

// Accent renders s in the primary accent.
func (t Theme) Accent(s string) string { return t.Fg(t.Palette.AccentPrimary, s) }

// Dim renders s in muted text.
func (t Theme) Dim(s string) string { return t.Fg(t.Palette.TextMuted, s) }

// Bold renders s in bold primary text.
func (t Theme) Bold(s string) string {
	return t.r.NewStyle().Bold(true).Foreground(t.Palette.TextPrimary).Render(s)
}

// Signed renders s as profit or loss depending on the sign of v.
func (t Theme) Signed(v float64, s string) string {
	if v < 0 {
		return t.Loss.Render(s)
	}
	return t.Profit.Render(s)
}

// Badge returns an inline coloured badge such as "● PASS".
func (t Theme) Badge(text string, c lipgloss.Color) string {
	dot := t.Fg(c, "●")
	label := t.r.NewStyle().Foreground(c).Bold(true).Render(text)
	return dot + " " + label
}

// StatusBadge returns a badge for "ok", "warn" or "error"; anything else is
// shown in the accent colour.
func (t Theme) StatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "ok", "pass":
		return t.Badge(strings.ToUpper(status), t.Palette.StatusOK)
	case "warn":
		return t.Badge("WARN", t.Palette.StatusWarn)
	case "error", "fail":
		return t.Badge(strings.ToUpper(status), t.Palette.StatusError)
	default:
		return t.Badge(strings.ToUpper(status), t.Palette.AccentPrimary)
	}
}

// Divider returns a horizontal rule of the given width.
func (t Theme) Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return t.Fg(t.Palette.BorderNormal, strings.Repeat("─", width))
}

// GlamourStyle names the glamour standard style matching the theme.
func (t Theme) GlamourStyle() string {
	if t.Plain {
		return "notty"
	}
	if t.Dark {
		return "dark"
	}
	return "light"
}
