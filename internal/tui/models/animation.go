package models

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/alpha-decay/internal/animation"
	"github.com/Dallionking/alpha-decay/internal/sim"
	"github.com/Dallionking/alpha-decay/internal/tui/components"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// ---------------------------------------------------------------------------
// Tea messages
// ---------------------------------------------------------------------------

type tickMsg time.Time

// ReloadMsg carries a re-run simulation after the config file changed. A
// non-nil Err keeps the current run on screen and shows the error.
type ReloadMsg struct {
	Result *sim.Result
	Err    error
}

// ---------------------------------------------------------------------------
// AnimationModel
// ---------------------------------------------------------------------------

// AnimationModel drives an animation.Controller from bubbletea ticks: one
// tick advances one frame. The animation stops on the last frame.
type AnimationModel struct {
	th       styles.Theme
	res      *sim.Result
	ctrl     *animation.Controller
	opts     animation.Options
	interval time.Duration

	frame    animation.Frame
	hasFrame bool
	paused   bool
	ticking  bool
	notice   string

	bar progress.Model

	width  int
	height int
}

// NewAnimationModel creates a model for res. The interval is the delay
// between frames.
func NewAnimationModel(res *sim.Result, opts animation.Options, interval time.Duration, th styles.Theme) AnimationModel {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	bar := progress.New(
		progress.WithSolidFill(string(th.Palette.Strategy)),
		progress.WithoutPercentage(),
		progress.WithWidth(60),
	)
	bar.EmptyColor = string(th.Palette.BorderNormal)

	return AnimationModel{
		th:       th,
		res:      res,
		ctrl:     newController(res, opts),
		opts:     opts,
		interval: interval,
		bar:      bar,
		ticking:  true, // Init starts the first tick
		width:    100,
		height:   40,
	}
}

func newController(res *sim.Result, opts animation.Options) *animation.Controller {
	return animation.NewController(res.BenchmarkEquity, res.StrategyEquity, res.Alpha, opts)
}

func (m AnimationModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the frame clock.
func (m AnimationModel) Init() tea.Cmd {
	return m.tick()
}

// Update processes ticks, keys and reloads.
func (m AnimationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 60)
		m.height = msg.Height
		m.bar.Width = max(m.width-20, 10)
		return m, nil

	case tickMsg:
		if m.paused || m.ctrl.State() == animation.StateFinished {
			m.ticking = false
			return m, nil
		}
		m.step()
		if m.ctrl.State() == animation.StateFinished {
			m.ticking = false
			return m, nil
		}
		m.ticking = true
		return m, m.tick()

	case ReloadMsg:
		if msg.Err != nil {
			m.notice = "reload failed: " + msg.Err.Error()
			return m, nil
		}
		m.notice = "config reloaded"
		m.res = msg.Result
		m.ctrl = newController(m.res, m.opts)
		return m.restart()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m AnimationModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case " ", "p":
		m.paused = !m.paused
		if !m.paused {
			return m.resume()
		}

	case "n":
		if m.paused {
			m.step()
		}

	case "r":
		m.notice = ""
		return m.restart()
	}
	return m, nil
}

func (m *AnimationModel) step() {
	if fr, ok := m.ctrl.Advance(); ok {
		m.frame = fr
		m.hasFrame = true
	}
}

func (m AnimationModel) restart() (tea.Model, tea.Cmd) {
	m.ctrl.Reset()
	m.frame = animation.Frame{}
	m.hasFrame = false
	m.paused = false
	return m.resume()
}

// resume starts a tick chain unless one is already in flight.
func (m AnimationModel) resume() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, m.tick()
}

// View renders the current frame.
func (m AnimationModel) View() string {
	return RenderScreen(m.th, Screen{
		Result:      m.res,
		Frame:       m.frame,
		HasFrame:    m.hasFrame,
		Total:       m.ctrl.TotalFrames(),
		State:       m.stateLabel(),
		ProgressBar: m.bar.ViewAs(m.ctrl.Progress()),
		Notice:      m.notice,
		Footer:      components.AnimationFooter(m.width, m.paused),
		Width:       m.width,
		Height:      m.height,
	})
}

func (m AnimationModel) stateLabel() string {
	switch {
	case m.ctrl.State() == animation.StateFinished:
		return "finished"
	case m.paused:
		return "paused"
	default:
		return "running"
	}
}

// Frame returns the last rendered frame.
func (m AnimationModel) Frame() (animation.Frame, bool) {
	return m.frame, m.hasFrame
}

// Paused reports whether playback is paused.
func (m AnimationModel) Paused() bool {
	return m.paused
}

// State reports the controller state.
func (m AnimationModel) State() animation.State {
	return m.ctrl.State()
}

// Result is the run currently on screen.
func (m AnimationModel) Result() *sim.Result {
	return m.res
}
