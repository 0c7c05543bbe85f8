package components

import (
	"fmt"
	"math"

	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// Equation describes the decay model shown beside the charts.
type Equation struct {
	InitialAlpha float64
	DecayRate    float64
	Current      float64 // annualized alpha at the marker
	Years        float64 // marker time in years
	HalfLife     *float64
	Width        int
}

// Render returns the boxed equation with its current parameter values.
func (e Equation) Render(th styles.Theme) string {
	formula := th.NewStyle().Foreground(th.Palette.Alpha).Bold(true).Render("α(t) = α₀ × e^(-λt)")

	half := "∞"
	if e.HalfLife != nil && !math.IsInf(*e.HalfLife, 0) {
		half = fmt.Sprintf("%.2fy", *e.HalfLife)
	}

	params := th.Label.Render("α₀ ") + th.Value.Render(Percent(e.InitialAlpha)) +
		th.Label.Render("   λ ") + th.Value.Render(fmt.Sprintf("%.3f", e.DecayRate)) +
		th.Label.Render("   half-life ") + th.Value.Render(half)
	now := th.Label.Render(fmt.Sprintf("α(%.2fy) ", e.Years)) + th.Value.Render(Percent(e.Current)) + th.Label.Render(" /yr")

	style := th.Card
	if e.Width > 0 {
		style = style.Width(e.Width - 2)
	}
	return style.Render(formula + "\n" + params + "\n" + now)
}
