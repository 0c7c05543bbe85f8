package styles

import (
	"math"
	"strings"
)

// brailleRamp maps normalized 0..7 buckets to braille bar characters.
var brailleRamp = []rune{'⡀', '⡄', '⡆', '⡇', '⣇', '⣧', '⣷', '⣿'}

// sparkline resamples values to width columns (nearest neighbour) and maps
// each onto the braille ramp. NaNs draw as the lowest bar.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := make([]float64, width)
	for i := range width {
		sampled[i] = values[min(i*len(values)/width, len(values)-1)]
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range sampled {
		if math.IsNaN(v) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		span = 1
	}

	var b strings.Builder
	b.Grow(width * 3)
	for _, v := range sampled {
		bucket := 0
		if !math.IsNaN(v) && !math.IsInf(lo, 0) {
			bucket = int(math.Round((v - lo) / span * float64(len(brailleRamp)-1)))
			bucket = max(0, min(bucket, len(brailleRamp)-1))
		}
		b.WriteRune(brailleRamp[bucket])
	}
	return b.String()
}

// Sparkline produces a compact braille bar chart in the strategy colour.
func (t Theme) Sparkline(values []float64, width int) string {
	s := sparkline(values, width)
	if s == "" {
		return ""
	}
	return t.Fg(t.Palette.Strategy, s)
}

// TruncateWithEllipsis shortens s to max runes, appending "..." when
// truncation occurs. If max is less than 4 the string is simply cut.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 4 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
