package animation

import "math"

// Point is a single plotted coordinate.
type Point struct {
	X float64
	Y float64
}

// Limits are the axis bounds of one panel.
type Limits struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Line is a plottable series of x/y pairs of equal length.
type Line struct {
	X []float64
	Y []float64
}

// Len returns the number of points in the line.
func (l Line) Len() int {
	return len(l.X)
}

// Frame is everything a renderer needs to draw one animation step.
type Frame struct {
	Index int

	// WindowStart and WindowEnd bound the visible slice, end exclusive.
	WindowStart int
	WindowEnd   int
	// VisiblePoints is the window length before downsampling.
	VisiblePoints int

	Benchmark Line
	Strategy  Line
	Equity    Limits

	// AlphaCurve is the full decay curve; it does not change between frames.
	AlphaCurve Line
	Marker     Point
	HasMarker  bool
	Alpha      Limits
}

// visibleWindow returns [start, end) for frame f.
func visibleWindow(f, window int) (start, end int) {
	if window > 1 {
		start = max(0, f-window+1)
	}
	return start, f + 1
}

// clip returns s[start:end] bounded to the slice's length.
func clip(s []float64, start, end int) []float64 {
	end = min(end, len(s))
	if start >= end {
		return nil
	}
	return s[start:end]
}

// downsample keeps every step-th value when n exceeds maxPoints, with
// step = max(1, n/maxPoints). A non-positive maxPoints disables it.
func downsample(vals []float64, maxPoints int) []float64 {
	step := downsampleStep(len(vals), maxPoints)
	if step == 1 {
		return vals
	}
	out := make([]float64, 0, (len(vals)+step-1)/step)
	for i := 0; i < len(vals); i += step {
		out = append(out, vals[i])
	}
	return out
}

func downsampleStep(n, maxPoints int) int {
	if maxPoints <= 0 || n <= maxPoints {
		return 1
	}
	return max(1, n/maxPoints)
}

// windowLine builds the x/y pairs of one windowed series, with x restarting
// at 0 at the left edge of the window.
func windowLine(y []float64, maxPoints int) Line {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	return Line{X: downsample(x, maxPoints), Y: downsample(y, maxPoints)}
}

// nanMinMax scans any number of slices, skipping NaNs. ok is false when no
// value was seen.
func nanMinMax(slices ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range slices {
		for _, v := range s {
			if math.IsNaN(v) {
				continue
			}
			ok = true
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi, ok
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// equityRange is the data range of the visible equity slices, falling back
// to [0, 1] when it is empty, not finite, or has zero span.
func equityRange(bench, strat []float64) (lo, hi float64) {
	lo, hi, ok := nanMinMax(bench, strat)
	if !ok || !finite(lo) || !finite(hi) || lo == hi {
		return 0, 1
	}
	return lo, hi
}

// equityLimits pads the equity range so lines never touch the frame.
func equityLimits(bench, strat []float64) (yMin, yMax float64) {
	lo, hi := equityRange(bench, strat)
	span := math.Max(hi-lo, 1e-6)
	pad := math.Max(span*0.08, math.Max(1.0, hi*0.01))
	return lo - pad, hi + pad
}

// alphaLimits computes the alpha panel's y-range from every value seen so
// far. The lower bound never rises above zero so the zero line stays visible.
func alphaLimits(seen []float64, first float64) (yMin, yMax float64) {
	if len(seen) == 0 {
		return 0, 1
	}
	lo, hi, ok := nanMinMax(seen)
	if !ok || !finite(lo) || !finite(hi) || lo == hi {
		top := 1e-6
		if finite(first) && first > top {
			top = first
		}
		lo, hi = 0, top
	}
	pad := math.Max(math.Max((hi-lo)*0.1, hi*0.05), 1e-6)
	return math.Min(0, lo-0.5*pad), hi + pad
}

// alphaXMax is the right edge of the static alpha panel.
func alphaXMax(times []float64) float64 {
	_, hi, ok := nanMinMax(times)
	if !ok || !finite(hi) || hi <= 0 {
		return 1
	}
	return hi
}
