package animation

import (
	"github.com/Dallionking/alpha-decay/internal/sim"
)

// State is the lifecycle of a Controller.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

// String returns the lowercase text representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Options control windowing and downsampling.
type Options struct {
	// Window is the number of most recent points kept visible. Values <= 1
	// show everything from the first point.
	Window int `json:"window" mapstructure:"window"`
	// MaxPoints caps points per drawn line. Values <= 0 disable downsampling.
	MaxPoints int `json:"maxPoints" mapstructure:"maxPoints"`
}

// DefaultOptions returns the standard 500-point window with a 1000-point cap.
func DefaultOptions() Options {
	return Options{Window: 500, MaxPoints: 1000}
}

// Controller steps through the equity and alpha series one frame at a time.
// It owns the frame counter; the series are read-only after construction.
// A Controller is not safe for concurrent use; drive it from one goroutine.
type Controller struct {
	benchmark []float64
	strategy  []float64
	alphaT    []float64
	alphaV    []float64
	opts      Options

	total     int
	alphaXMax float64

	state   State
	next    int
	current Frame
}

// NewController creates an idle controller over the given series.
func NewController(benchmarkEquity, strategyEquity []float64, alpha sim.AlphaSeries, opts Options) *Controller {
	times := alpha.Times()
	return &Controller{
		benchmark: benchmarkEquity,
		strategy:  strategyEquity,
		alphaT:    times,
		alphaV:    alpha.Values,
		opts:      opts,
		total:     max(len(benchmarkEquity), len(strategyEquity)),
		alphaXMax: alphaXMax(times),
	}
}

// TotalFrames is the number of frames in one pass.
func (c *Controller) TotalFrames() int {
	return c.total
}

// State reports the controller's lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Current returns the most recently rendered frame and whether one exists.
func (c *Controller) Current() (Frame, bool) {
	return c.current, c.state != StateIdle && c.next > 0
}

// Progress is the fraction of frames rendered so far, in [0, 1].
func (c *Controller) Progress() float64 {
	if c.total == 0 {
		if c.state == StateFinished {
			return 1
		}
		return 0
	}
	return float64(c.next) / float64(c.total)
}

// Advance renders the next frame. It returns false once the last frame has
// been rendered; the animation does not loop.
func (c *Controller) Advance() (Frame, bool) {
	if c.state == StateFinished {
		return c.current, false
	}
	if c.total == 0 {
		c.state = StateFinished
		return Frame{}, false
	}

	c.state = StateRunning
	c.current = c.RenderFrame(c.next)
	c.next++
	if c.next >= c.total {
		c.state = StateFinished
	}
	return c.current, true
}

// Reset rewinds to the first frame.
func (c *Controller) Reset() {
	c.state = StateIdle
	c.next = 0
	c.current = Frame{}
}

// RenderFrame computes frame f from the full series. It has no side effects,
// so any frame can be recomputed at any time. f is clamped to the valid range.
func (c *Controller) RenderFrame(f int) Frame {
	f = max(0, min(f, c.total-1))

	start, end := visibleWindow(f, c.opts.Window)
	be := clip(c.benchmark, start, end)
	se := clip(c.strategy, start, end)
	visible := max(len(be), len(se))

	fr := Frame{
		Index:         f,
		WindowStart:   start,
		WindowEnd:     end,
		VisiblePoints: visible,
		Benchmark:     windowLine(be, c.opts.MaxPoints),
		Strategy:      windowLine(se, c.opts.MaxPoints),
		AlphaCurve:    Line{X: c.alphaT, Y: c.alphaV},
	}

	yMin, yMax := equityLimits(fr.Benchmark.Y, fr.Strategy.Y)
	fr.Equity = Limits{XMin: 0, XMax: float64(max(10, visible)), YMin: yMin, YMax: yMax}

	fr.Alpha = Limits{XMin: 0, XMax: c.alphaXMax, YMin: 0, YMax: 1}
	if n := len(c.alphaV); n > 0 {
		m := min(f, n-1)
		fr.Marker = Point{X: c.alphaT[m], Y: c.alphaV[m]}
		fr.HasMarker = true
		fr.Alpha.YMin, fr.Alpha.YMax = alphaLimits(c.alphaV[:m+1], c.alphaV[0])
	}
	return fr
}
