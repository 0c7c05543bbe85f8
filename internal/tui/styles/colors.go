package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the full set of colours a Theme draws with.
type Palette struct {
	BgDeep    lipgloss.Color
	BgPanel   lipgloss.Color
	BgSurface lipgloss.Color

	AccentPrimary   lipgloss.Color
	AccentSecondary lipgloss.Color
	AccentGold      lipgloss.Color

	StatusOK    lipgloss.Color
	StatusWarn  lipgloss.Color
	StatusError lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	BorderNormal  lipgloss.Color
	BorderFocused lipgloss.Color

	// Chart series
	Benchmark lipgloss.Color
	Strategy  lipgloss.Color
	Alpha     lipgloss.Color
	Marker    lipgloss.Color
	Axis      lipgloss.Color
}

// DarkPalette: deep midnight backgrounds with electric cyan accents.
func DarkPalette() Palette {
	return Palette{
		BgDeep:    "#0a0e14",
		BgPanel:   "#11151c",
		BgSurface: "#1a1f2e",

		AccentPrimary:   "#4fc1ff",
		AccentSecondary: "#39c5bb",
		AccentGold:      "#f5a623",

		StatusOK:    "#22c55e",
		StatusWarn:  "#f59e0b",
		StatusError: "#ef4444",

		TextPrimary:   "#e2e8f0",
		TextSecondary: "#94a3b8",
		TextMuted:     "#64748b",

		BorderNormal:  "#2d3748",
		BorderFocused: "#4fc1ff",

		Benchmark: "#94a3b8",
		Strategy:  "#4fc1ff",
		Alpha:     "#f5a623",
		Marker:    "#ef4444",
		Axis:      "#64748b",
	}
}

// LightPalette: paper background, ink text, saturated series colours.
func LightPalette() Palette {
	return Palette{
		BgDeep:    "#ffffff",
		BgPanel:   "#f6f8fa",
		BgSurface: "#eaeef2",

		AccentPrimary:   "#0969da",
		AccentSecondary: "#1a7f64",
		AccentGold:      "#bf8700",

		StatusOK:    "#1a7f37",
		StatusWarn:  "#9a6700",
		StatusError: "#cf222e",

		TextPrimary:   "#1f2328",
		TextSecondary: "#57606a",
		TextMuted:     "#8c959f",

		BorderNormal:  "#d0d7de",
		BorderFocused: "#0969da",

		Benchmark: "#57606a",
		Strategy:  "#0969da",
		Alpha:     "#bf8700",
		Marker:    "#cf222e",
		Axis:      "#8c959f",
	}
}
