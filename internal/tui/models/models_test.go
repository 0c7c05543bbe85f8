package models

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/alpha-decay/internal/animation"
	"github.com/Dallionking/alpha-decay/internal/marketdata"
	"github.com/Dallionking/alpha-decay/internal/sim"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

func plain() styles.Theme {
	return styles.NewTheme(true, styles.WithRenderer(lipgloss.NewRenderer(&bytes.Buffer{})), styles.WithNoColor())
}

func testResult(t *testing.T, n int) *sim.Result {
	t.Helper()
	p := sim.DefaultParams()
	p.NoiseStdFrac = 0
	bench := make([]float64, n)
	for i := range bench {
		bench[i] = 0.001 * float64(i%3-1)
	}
	res, err := sim.NewSimulator(zerolog.Nop()).Run(p, bench, nil)
	require.NoError(t, err)
	return res
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// ---------------------------------------------------------------------------
// AnimationModel
// ---------------------------------------------------------------------------

func TestAnimationModel_TickAdvancesOneFrame(t *testing.T) {
	m := NewAnimationModel(testResult(t, 3), animation.DefaultOptions(), time.Millisecond, plain())
	require.NotNil(t, m.Init())

	var tm tea.Model = m
	tm, cmd := update(t, tm, tickMsg(time.Now()))
	fr, ok := tm.(AnimationModel).Frame()
	require.True(t, ok)
	assert.Equal(t, 0, fr.Index)
	assert.NotNil(t, cmd, "ticking continues")

	tm, _ = update(t, tm, tickMsg(time.Now()))
	tm, cmd = update(t, tm, tickMsg(time.Now()))
	fr, _ = tm.(AnimationModel).Frame()
	assert.Equal(t, 2, fr.Index)
	assert.Equal(t, animation.StateFinished, tm.(AnimationModel).State())
	assert.Nil(t, cmd, "no loop after the last frame")

	tm, cmd = update(t, tm, tickMsg(time.Now()))
	fr, _ = tm.(AnimationModel).Frame()
	assert.Equal(t, 2, fr.Index)
	assert.Nil(t, cmd)
}

func TestAnimationModel_PauseAndStep(t *testing.T) {
	var tm tea.Model = NewAnimationModel(testResult(t, 10), animation.DefaultOptions(), time.Millisecond, plain())

	tm, _ = update(t, tm, tickMsg(time.Now()))
	tm, _ = update(t, tm, key(" "))
	require.True(t, tm.(AnimationModel).Paused())

	tm, cmd := update(t, tm, tickMsg(time.Now()))
	fr, _ := tm.(AnimationModel).Frame()
	assert.Equal(t, 0, fr.Index, "paused ticks do not advance")
	assert.Nil(t, cmd)

	tm, _ = update(t, tm, key("n"))
	fr, _ = tm.(AnimationModel).Frame()
	assert.Equal(t, 1, fr.Index, "n steps while paused")

	tm, cmd = update(t, tm, key(" "))
	assert.False(t, tm.(AnimationModel).Paused())
	assert.NotNil(t, cmd, "resume restarts the tick chain")
}

func TestAnimationModel_StepIgnoredWhileRunning(t *testing.T) {
	var tm tea.Model = NewAnimationModel(testResult(t, 10), animation.DefaultOptions(), time.Millisecond, plain())
	tm, _ = update(t, tm, tickMsg(time.Now()))
	tm, _ = update(t, tm, key("n"))
	fr, _ := tm.(AnimationModel).Frame()
	assert.Equal(t, 0, fr.Index)
}

func TestAnimationModel_Restart(t *testing.T) {
	var tm tea.Model = NewAnimationModel(testResult(t, 2), animation.DefaultOptions(), time.Millisecond, plain())
	tm, _ = update(t, tm, tickMsg(time.Now()))
	tm, _ = update(t, tm, tickMsg(time.Now()))
	require.Equal(t, animation.StateFinished, tm.(AnimationModel).State())

	tm, cmd := update(t, tm, key("r"))
	assert.Equal(t, animation.StateIdle, tm.(AnimationModel).State())
	_, ok := tm.(AnimationModel).Frame()
	assert.False(t, ok)
	assert.NotNil(t, cmd)
}

func TestAnimationModel_Quit(t *testing.T) {
	m := NewAnimationModel(testResult(t, 2), animation.DefaultOptions(), time.Millisecond, plain())
	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))
}

func TestAnimationModel_Reload(t *testing.T) {
	var tm tea.Model = NewAnimationModel(testResult(t, 2), animation.DefaultOptions(), time.Millisecond, plain())
	tm, _ = update(t, tm, tickMsg(time.Now()))

	next := testResult(t, 7)
	tm, _ = update(t, tm, ReloadMsg{Result: next})
	am := tm.(AnimationModel)
	assert.Same(t, next, am.Result())
	assert.Equal(t, animation.StateIdle, am.State())
	assert.Contains(t, am.View(), "config reloaded")

	tm, _ = update(t, tm, ReloadMsg{Err: errors.New("bad decayRate")})
	am = tm.(AnimationModel)
	assert.Same(t, next, am.Result(), "failed reload keeps the current run")
	assert.Contains(t, am.View(), "reload failed: bad decayRate")
}

func TestAnimationModel_View(t *testing.T) {
	var tm tea.Model = NewAnimationModel(testResult(t, 20), animation.DefaultOptions(), time.Millisecond, plain())
	tm, _ = update(t, tm, tea.WindowSizeMsg{Width: 140, Height: 44})
	tm, _ = update(t, tm, tickMsg(time.Now()))

	out := tm.View()
	assert.Contains(t, out, "SPY")
	assert.Contains(t, out, "α(t) = α₀ × e^(-λt)")
	assert.Contains(t, out, "Alpha decay")
	assert.Contains(t, out, "Max DD")
	assert.Contains(t, out, "RUNNING")
	assert.Contains(t, out, "1/20")
}

func TestRenderScreen_Narrow(t *testing.T) {
	res := testResult(t, 5)
	ctrl := animation.NewController(res.BenchmarkEquity, res.StrategyEquity, res.Alpha, animation.DefaultOptions())
	out := RenderScreen(plain(), Screen{
		Result:   res,
		Frame:    ctrl.RenderFrame(4),
		HasFrame: true,
		Total:    5,
		State:    "finished",
		Width:    80,
		Height:   40,
	})
	assert.Contains(t, out, "FINISHED")
	assert.Contains(t, out, "Equity")
	assert.Contains(t, out, "5/5")
	for _, l := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(l), 80)
	}
}

// ---------------------------------------------------------------------------
// WizardModel
// ---------------------------------------------------------------------------

func typeInto(t *testing.T, tm tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		tm, _ = update(t, tm, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return tm
}

func clearField(t *testing.T, tm tea.Model) tea.Model {
	t.Helper()
	for i := 0; i < 30; i++ {
		tm, _ = update(t, tm, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	return tm
}

func TestWizard_DefaultsAccepted(t *testing.T) {
	var tm tea.Model = NewWizardModel(sim.DefaultParams(), false, plain())

	tm, _ = update(t, tm, key("enter"))
	assert.Equal(t, StepAlpha, tm.(WizardModel).Step())
	tm, _ = update(t, tm, key("enter"))
	assert.Equal(t, StepDisplay, tm.(WizardModel).Step())
	tm, _ = update(t, tm, key(" "))
	tm, _ = update(t, tm, key("enter"))
	assert.Equal(t, StepConfirm, tm.(WizardModel).Step())

	tm, cmd := update(t, tm, key("enter"))
	assert.True(t, isQuit(cmd))

	res := tm.(WizardModel).Result()
	assert.True(t, res.Confirmed)
	assert.True(t, res.DarkMode)
	want := sim.DefaultParams()
	assert.Equal(t, want, res.Params)
}

func TestWizard_EditsAndValidates(t *testing.T) {
	var tm tea.Model = NewWizardModel(sim.DefaultParams(), false, plain())

	tm = clearField(t, tm)
	tm = typeInto(t, tm, "-5")
	tm, _ = update(t, tm, key("enter"))
	wm := tm.(WizardModel)
	assert.Equal(t, StepPortfolio, wm.Step(), "invalid capital keeps the step")
	assert.Contains(t, wm.View(), "Initial capital")
	assert.Contains(t, wm.View(), "must be > 0")

	tm = clearField(t, tm)
	tm = typeInto(t, tm, "25000")
	tm, _ = update(t, tm, key("tab"))
	tm = clearField(t, tm)
	tm = typeInto(t, tm, "qqq")
	tm, _ = update(t, tm, key("enter"))
	require.Equal(t, StepAlpha, tm.(WizardModel).Step())

	// seed is the last alpha field
	for i := 0; i < 4; i++ {
		tm, _ = update(t, tm, key("tab"))
	}
	tm = typeInto(t, tm, "42")
	tm, _ = update(t, tm, key("enter"))
	tm, _ = update(t, tm, key("enter"))
	tm, _ = update(t, tm, key("enter"))

	res := tm.(WizardModel).Result()
	require.True(t, res.Confirmed)
	assert.Equal(t, 25000.0, res.Params.InitialCapital)
	assert.Equal(t, "QQQ", res.Params.Ticker)
	require.NotNil(t, res.Params.Seed)
	assert.Equal(t, int64(42), *res.Params.Seed)
}

func TestWizard_BadSeed(t *testing.T) {
	var tm tea.Model = NewWizardModel(sim.DefaultParams(), false, plain())
	tm, _ = update(t, tm, key("enter"))
	for i := 0; i < 4; i++ {
		tm, _ = update(t, tm, key("tab"))
	}
	tm = typeInto(t, tm, "abc")
	tm, _ = update(t, tm, key("enter"))
	assert.Equal(t, StepAlpha, tm.(WizardModel).Step())
	assert.Contains(t, tm.View(), "whole number or blank")
}

func TestWizard_BackAndCancel(t *testing.T) {
	var tm tea.Model = NewWizardModel(sim.DefaultParams(), false, plain())
	tm, _ = update(t, tm, key("enter"))
	tm, _ = update(t, tm, key("esc"))
	assert.Equal(t, StepPortfolio, tm.(WizardModel).Step())

	tm, cmd := update(t, tm, key("ctrl+c"))
	assert.True(t, isQuit(cmd))
	assert.False(t, tm.(WizardModel).Result().Confirmed)
}

// ---------------------------------------------------------------------------
// ExplainModel
// ---------------------------------------------------------------------------

func TestExplainModel(t *testing.T) {
	var tm tea.Model = NewExplainModel("# Alpha decay\n\nEdges fade.", plain())
	assert.Contains(t, tm.View(), "loading")

	tm, _ = update(t, tm, tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Contains(t, tm.View(), "Edges fade.")

	_, cmd := update(t, tm, key("q"))
	assert.True(t, isQuit(cmd))
}

func TestFetchModel(t *testing.T) {
	bars := []marketdata.Bar{{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 100}}
	m := NewFetchModel("SPY", nil, plain())
	assert.Contains(t, m.View(), "SPY")

	next, _ := m.Update(FetchProgressMsg("downloading 5y"))
	m = next.(FetchModel)
	assert.Contains(t, m.View(), "downloading 5y")

	next, cmd := m.Update(FetchDoneMsg{Bars: bars})
	m = next.(FetchModel)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	got, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, bars, got)
	assert.False(t, m.Cancelled())
	assert.Empty(t, m.View())
}

func TestFetchModel_Cancel(t *testing.T) {
	m := NewFetchModel("SPY", nil, plain())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(FetchModel)
	require.NotNil(t, cmd)
	assert.True(t, m.Cancelled())
}
