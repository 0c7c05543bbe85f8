package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// MetricGauge displays a single metric with color coding based on thresholds.
type MetricGauge struct {
	Label      string
	Value      float64
	Format     string     // "%.2f", "%.1f%%"
	Text       string     // preformatted value; overrides Format
	Thresholds [2]float64 // [warn, critical]
	HighIsGood bool       // true for Sharpe, false for drawdown
	Neutral    bool       // no threshold colouring
}

// gaugeColor returns the appropriate color based on value and thresholds.
func (m MetricGauge) gaugeColor(p styles.Palette) lipgloss.Color {
	if m.Neutral {
		return p.TextPrimary
	}
	warn, critical := m.Thresholds[0], m.Thresholds[1]

	if m.HighIsGood {
		if m.Value <= critical {
			return p.StatusError
		}
		if m.Value <= warn {
			return p.StatusWarn
		}
		return p.StatusOK
	}

	if m.Value >= critical {
		return p.StatusError
	}
	if m.Value >= warn {
		return p.StatusWarn
	}
	return p.StatusOK
}

// Render returns the styled metric gauge.
func (m MetricGauge) Render(th styles.Theme) string {
	text := m.Text
	if text == "" {
		format := m.Format
		if format == "" {
			format = "%.2f"
		}
		text = fmt.Sprintf(format, m.Value)
	}

	value := th.NewStyle().Foreground(m.gaugeColor(th.Palette)).Bold(true).Render(text)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		value,
		th.Label.Render(m.Label),
	)
}
