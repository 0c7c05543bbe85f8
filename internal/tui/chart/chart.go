// Package chart draws braille line charts with ntcharts.
package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/alpha-decay/internal/animation"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// Series is one named line.
type Series struct {
	Name  string
	Line  animation.Line
	Color lipgloss.Color
}

// Chart is a line chart with axes, sized in terminal cells. X values are
// plotted on the time axis of a time-series chart as whole seconds, so they
// should be period indices.
type Chart struct {
	Width  int
	Height int
	Limits animation.Limits
	Series []Series

	Marker      *animation.Point
	MarkerColor lipgloss.Color
	ZeroLine    bool

	XLabel func(float64) string
	YLabel func(float64) string
}

// Dataset names sort in draw order: the zero rule first, the marker last.
const (
	zeroSet   = "0-zero"
	markerSet = "9-marker"
)

// Render draws the chart. Points outside Limits are clamped onto its edge;
// non-finite points are skipped.
func (c Chart) Render(th styles.Theme) string {
	lim := usableLimits(c.Limits)
	xLabel, yLabel := c.XLabel, c.YLabel
	if xLabel == nil {
		xLabel = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}
	if yLabel == nil {
		yLabel = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	}

	opts := []timeserieslinechart.Option{
		timeserieslinechart.WithTimeRange(at(lim.XMin), at(lim.XMax)),
		timeserieslinechart.WithYRange(lim.YMin, lim.YMax),
		timeserieslinechart.WithAxesStyles(
			th.NewStyle().Foreground(th.Palette.Axis),
			th.NewStyle().Foreground(th.Palette.TextMuted),
		),
		timeserieslinechart.WithXLabelFormatter(func(_ int, v float64) string { return xLabel(v) }),
		timeserieslinechart.WithYLabelFormatter(func(_ int, v float64) string { return yLabel(v) }),
	}

	if c.ZeroLine && lim.YMin <= 0 && lim.YMax >= 0 {
		opts = append(opts,
			timeserieslinechart.WithDataSetTimeSeries(zeroSet, []timeserieslinechart.TimePoint{
				{Time: at(lim.XMin), Value: 0},
				{Time: at(lim.XMax), Value: 0},
			}),
			timeserieslinechart.WithDataSetStyle(zeroSet, th.NewStyle().Foreground(th.Palette.Axis)),
		)
	}
	for i, s := range c.Series {
		name := fmt.Sprintf("%d-%s", i+1, s.Name)
		opts = append(opts,
			timeserieslinechart.WithDataSetTimeSeries(name, Points(s.Line, lim)),
			timeserieslinechart.WithDataSetStyle(name, th.NewStyle().Foreground(s.Color)),
		)
	}
	if c.Marker != nil {
		if pts := markerPoints(*c.Marker, lim, c.Width); len(pts) > 0 {
			opts = append(opts,
				timeserieslinechart.WithDataSetTimeSeries(markerSet, pts),
				timeserieslinechart.WithDataSetStyle(markerSet, th.NewStyle().Foreground(c.MarkerColor).Bold(true)),
			)
		}
	}

	m := timeserieslinechart.New(max(c.Width, 12), max(c.Height, 4), opts...)
	m.DrawBrailleAll()
	return m.View()
}

// Points converts a line into chart points, skipping non-finite values and
// clamping the rest into lim.
func Points(l animation.Line, lim animation.Limits) []timeserieslinechart.TimePoint {
	n := min(len(l.X), len(l.Y))
	pts := make([]timeserieslinechart.TimePoint, 0, n)
	for i := 0; i < n; i++ {
		x, y := l.X[i], l.Y[i]
		if !finite(x) || !finite(y) {
			continue
		}
		pts = append(pts, timeserieslinechart.TimePoint{
			Time:  at(clamp(x, lim.XMin, lim.XMax)),
			Value: clamp(y, lim.YMin, lim.YMax),
		})
	}
	return pts
}

// markerPoints is a short horizontal dash centred on p, about two cells wide.
func markerPoints(p animation.Point, lim animation.Limits, width int) []timeserieslinechart.TimePoint {
	if !finite(p.X) || !finite(p.Y) {
		return nil
	}
	half := math.Max((lim.XMax-lim.XMin)/float64(max(width, 1)), 1)
	y := clamp(p.Y, lim.YMin, lim.YMax)
	return []timeserieslinechart.TimePoint{
		{Time: at(clamp(p.X-half, lim.XMin, lim.XMax)), Value: y},
		{Time: at(clamp(p.X+half, lim.XMin, lim.XMax)), Value: y},
	}
}

// usableLimits replaces empty or non-finite ranges with a unit span.
func usableLimits(lim animation.Limits) animation.Limits {
	if !finite(lim.XMin) || !finite(lim.XMax) || lim.XMax <= lim.XMin {
		lim.XMin, lim.XMax = 0, 1
	}
	if !finite(lim.YMin) || !finite(lim.YMax) || lim.YMax <= lim.YMin {
		lim.YMin, lim.YMax = 0, 1
	}
	return lim
}

// at maps an x value onto the chart's time axis.
func at(x float64) time.Time {
	return time.Unix(int64(math.Round(x)), 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
