package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/alpha-decay/internal/animation"
	"github.com/Dallionking/alpha-decay/internal/tui/chart"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// Series is one named line in a chart panel.
type Series struct {
	Name  string
	Line  animation.Line
	Color lipgloss.Color
}

// Panel is a bordered line chart with a title, y-axis labels on the left,
// x-axis labels underneath, and a legend.
type Panel struct {
	Title  string
	Width  int // outer width including border
	Height int // outer height including border

	Series []Series
	Limits animation.Limits

	Marker      *animation.Point
	MarkerColor lipgloss.Color
	MarkerName  string
	ZeroLine    bool

	YLabel func(float64) string
	XLabel func(float64) string
}

// Render draws the panel.
func (p Panel) Render(th styles.Theme) string {
	width := max(p.Width, 24)
	height := max(p.Height, 8)
	yLabel := p.YLabel
	if yLabel == nil {
		yLabel = CurrencyLabel
	}
	xLabel := p.XLabel
	if xLabel == nil {
		xLabel = PeriodLabel
	}

	series := make([]chart.Series, len(p.Series))
	for i, s := range p.Series {
		series[i] = chart.Series{Name: s.Name, Line: s.Line, Color: s.Color}
	}
	plot := chart.Chart{
		Width:       width - 4,        // border and padding
		Height:      max(height-4, 4), // border, title, legend
		Limits:      p.Limits,
		Series:      series,
		Marker:      p.Marker,
		MarkerColor: p.MarkerColor,
		ZeroLine:    p.ZeroLine,
		XLabel:      xLabel,
		YLabel:      yLabel,
	}.Render(th)

	body := strings.Join([]string{th.Title.Render(p.Title), plot, p.legend(th)}, "\n")
	return th.Panel.Width(width - 2).Render(body)
}

func (p Panel) legend(th styles.Theme) string {
	parts := make([]string, 0, len(p.Series)+1)
	for _, s := range p.Series {
		parts = append(parts, th.Fg(s.Color, "━")+" "+th.Dim(s.Name))
	}
	if p.Marker != nil && p.MarkerName != "" {
		parts = append(parts, th.Fg(p.MarkerColor, "━")+" "+th.Dim(p.MarkerName))
	}
	return strings.Join(parts, "   ")
}
