package models

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/alpha-decay/internal/animation"
	"github.com/Dallionking/alpha-decay/internal/sim"
	"github.com/Dallionking/alpha-decay/internal/tui/components"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// Screen is everything needed to draw one animation screen. It is shared by
// the interactive model and the one-shot renderer.
type Screen struct {
	Result      *sim.Result
	Frame       animation.Frame
	HasFrame    bool
	Total       int
	State       string
	ProgressBar string
	Notice      string
	Footer      components.Footer
	Width       int
	Height      int
}

// RenderScreen lays out header, charts, equation, gauges and footer.
func RenderScreen(th styles.Theme, s Screen) string {
	width := s.Width
	if width <= 0 {
		width = 100
	}
	height := s.Height
	if height <= 0 {
		height = 40
	}
	res := s.Result

	frameNo := 0
	if s.HasFrame {
		frameNo = s.Frame.Index + 1
	}
	header := components.Header{
		Ticker: res.Params.Ticker,
		RunID:  res.ID,
		State:  s.State,
		Frame:  frameNo,
		Total:  s.Total,
		Width:  width,
	}.Render(th)

	sections := []string{header, ""}

	const chrome = 16 // header, equation, gauges, progress, footer, spacing
	sideBySide := width >= 110
	chartH := max(height-chrome, 10)
	chartW := width
	if sideBySide {
		chartW = width / 2
	} else {
		chartH = max(chartH/2, 8)
	}

	equity, alpha := chartPanels(th, res, s.Frame, chartW, chartH)
	if sideBySide {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, equity, alpha))
	} else {
		sections = append(sections, equity, alpha)
	}

	ppy := periodsPerYear(res.Params)
	eq := components.Equation{
		InitialAlpha: res.Params.InitialAlpha,
		DecayRate:    res.Params.DecayRate,
		Current:      s.Frame.Marker.Y * ppy,
		Years:        s.Frame.Marker.X / ppy,
		HalfLife:     res.Summary.AlphaHalfLife,
	}.Render(th)
	gauges := summaryGauges(th, res.Summary)
	if sideBySide {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, eq, "  ", gauges))
	} else {
		sections = append(sections, eq, gauges)
	}

	if s.ProgressBar != "" {
		sections = append(sections, "", " "+s.ProgressBar)
	}
	if s.Notice != "" {
		sections = append(sections, " "+th.Fg(th.Palette.StatusWarn, s.Notice))
	}
	if len(s.Footer.Hints) > 0 {
		sections = append(sections, "", s.Footer.Render(th))
	}

	return strings.Join(sections, "\n")
}

func chartPanels(th styles.Theme, res *sim.Result, fr animation.Frame, w, h int) (string, string) {
	offset := float64(fr.WindowStart)
	equity := components.Panel{
		Title:  "Equity  " + res.Params.Ticker + " vs strategy",
		Width:  w,
		Height: h,
		Series: []components.Series{
			{Name: "Benchmark", Line: fr.Benchmark, Color: th.Palette.Benchmark},
			{Name: "Strategy", Line: fr.Strategy, Color: th.Palette.Strategy},
		},
		Limits: fr.Equity,
		YLabel: components.CurrencyLabel,
		XLabel: func(v float64) string { return components.PeriodLabel(v + offset) },
	}

	// The alpha curve is per period over period indices; label it as an
	// annual rate over years.
	ppy := periodsPerYear(res.Params)
	alpha := components.Panel{
		Title:    "Alpha decay (annualized)",
		Width:    w,
		Height:   h,
		Series:   []components.Series{{Name: "α(t)", Line: fr.AlphaCurve, Color: th.Palette.Alpha}},
		Limits:   fr.Alpha,
		ZeroLine: true,
		YLabel:   func(v float64) string { return components.PercentLabel(v * ppy) },
		XLabel:   func(v float64) string { return components.YearsLabel(v / ppy) },
	}
	if fr.HasMarker {
		m := fr.Marker
		alpha.Marker = &m
		alpha.MarkerColor = th.Palette.Marker
		alpha.MarkerName = "now"
	}

	return equity.Render(th), alpha.Render(th)
}

func periodsPerYear(p sim.Params) float64 {
	if p.PeriodsPerYear <= 0 {
		return sim.DefaultPeriodsPerYear
	}
	return float64(p.PeriodsPerYear)
}

func summaryGauges(th styles.Theme, sum sim.Summary) string {
	gauges := []components.MetricGauge{
		{Label: "Benchmark", Text: components.Currency(sum.Benchmark.FinalEquity), Neutral: true},
		{Label: "Strategy", Text: components.Currency(sum.Strategy.FinalEquity), Neutral: true},
		{Label: "Excess", Value: sum.ExcessReturn, Text: components.SignedPercent(sum.ExcessReturn), HighIsGood: true},
		{Label: "CAGR", Value: sum.Strategy.CAGR, Text: components.SignedPercent(sum.Strategy.CAGR), HighIsGood: true},
		{Label: "Sharpe", Value: sum.Strategy.Sharpe, Thresholds: [2]float64{1, 0.5}, HighIsGood: true},
		{Label: "Max DD", Value: sum.Strategy.MaxDrawdown, Text: components.Percent(sum.Strategy.MaxDrawdown), Thresholds: [2]float64{0.2, 0.35}},
	}
	parts := make([]string, 0, 2*len(gauges))
	for i, g := range gauges {
		if i > 0 {
			parts = append(parts, "   ")
		}
		parts = append(parts, g.Render(th))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
