package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/alpha-decay/internal/animation"
	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/sim"
	"github.com/Dallionking/alpha-decay/internal/tui/models"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// AnimationOptions configures RunAnimation.
type AnimationOptions struct {
	Result   *sim.Result
	Options  animation.Options
	Interval time.Duration
	Theme    styles.Theme

	// Changes, when set together with Reload, re-runs the simulation each
	// time the watched config settles and swaps the result on screen.
	Changes <-chan config.ChangeEvent
	Reload  func() (*sim.Result, error)
}

// RunAnimation launches the full-screen animation and blocks until the user
// quits.
func RunAnimation(opts AnimationOptions) error {
	model := models.NewAnimationModel(opts.Result, opts.Options, opts.Interval, opts.Theme)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if opts.Changes != nil && opts.Reload != nil {
		go forwardReloads(p, opts.Changes, opts.Reload)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("animation failed: %w", err)
	}
	return nil
}

// forwardReloads bridges watcher events into the program. It returns when
// changes is closed.
func forwardReloads(p *tea.Program, changes <-chan config.ChangeEvent, reload func() (*sim.Result, error)) {
	for range changes {
		res, err := reload()
		p.Send(models.ReloadMsg{Result: res, Err: err})
	}
}

// RenderFrame draws the last frame of res without starting a program.
func RenderFrame(res *sim.Result, opts animation.Options, th styles.Theme, width, height int) string {
	ctrl := animation.NewController(res.BenchmarkEquity, res.StrategyEquity, res.Alpha, opts)
	total := ctrl.TotalFrames()
	screen := models.Screen{
		Result: res,
		Total:  total,
		State:  "finished",
		Width:  width,
		Height: height,
	}
	if total > 0 {
		screen.Frame = ctrl.RenderFrame(total - 1)
		screen.HasFrame = true
	}
	return models.RenderScreen(th, screen)
}
