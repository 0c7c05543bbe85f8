package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/alpha-decay/internal/sim"
	"github.com/Dallionking/alpha-decay/internal/tui/components"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// ---------------------------------------------------------------------------
// Step enumeration
// ---------------------------------------------------------------------------

// WizardStep enumerates each screen of the parameter wizard.
type WizardStep int

const (
	StepPortfolio WizardStep = iota
	StepAlpha
	StepDisplay
	StepConfirm
)

func wizardStepLabels() []string {
	return []string{"Portfolio", "Alpha", "Display", "Confirm"}
}

// WizardResult is what the wizard collected. Confirmed is false when the
// user cancelled.
type WizardResult struct {
	Params    sim.Params
	DarkMode  bool
	Confirmed bool
}

type wizardField struct {
	step  WizardStep
	key   string // matches the Params mapstructure name
	label string
	input textinput.Model
}

// ---------------------------------------------------------------------------
// WizardModel
// ---------------------------------------------------------------------------

// WizardModel implements tea.Model for `alpha-decay init`. It collects the
// simulation parameters over three input screens and a confirmation.
type WizardModel struct {
	th styles.Theme

	step    WizardStep
	fields  []wizardField
	focused int // index into fields
	dark    bool

	params sim.Params
	errs   []string
	result WizardResult

	width  int
	height int
}

// NewWizardModel creates a wizard prefilled from base.
func NewWizardModel(base sim.Params, dark bool, th styles.Theme) WizardModel {
	seed := ""
	if base.Seed != nil {
		seed = strconv.FormatInt(*base.Seed, 10)
	}

	specs := []struct {
		step  WizardStep
		key   string
		label string
		value string
		hint  string
	}{
		{StepPortfolio, "initialCapital", "Initial capital", fmtFloat(base.InitialCapital), "10000"},
		{StepPortfolio, "ticker", "Benchmark ticker", base.Ticker, "SPY"},
		{StepPortfolio, "years", "Years of history", strconv.Itoa(base.Years), "5"},
		{StepAlpha, "initialAlpha", "Initial alpha (annual, 0.05 = 5%)", fmtFloat(base.InitialAlpha), "0.05"},
		{StepAlpha, "decayRate", "Decay rate λ (per year)", fmtFloat(base.DecayRate), "0.1"},
		{StepAlpha, "beta", "Beta to benchmark", fmtFloat(base.Beta), "1.0"},
		{StepAlpha, "noiseStdFrac", "Noise (fraction of benchmark σ)", fmtFloat(base.NoiseStdFrac), "0.25"},
		{StepAlpha, "seed", "Random seed (blank = random)", seed, ""},
	}

	fields := make([]wizardField, 0, len(specs))
	for _, s := range specs {
		ti := textinput.New()
		ti.Placeholder = s.hint
		ti.SetValue(s.value)
		ti.CharLimit = 24
		ti.Width = 24
		ti.PromptStyle = th.NewStyle().Foreground(th.Palette.AccentPrimary)
		ti.TextStyle = th.NewStyle().Foreground(th.Palette.TextPrimary)
		ti.Cursor.Style = th.NewStyle().Foreground(th.Palette.AccentPrimary)
		fields = append(fields, wizardField{step: s.step, key: s.key, label: s.label, input: ti})
	}

	m := WizardModel{
		th:     th,
		step:   StepPortfolio,
		fields: fields,
		dark:   dark,
		params: base,
		width:  80,
		height: 30,
	}
	m.focus(0)
	return m
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ---------------------------------------------------------------------------
// tea.Model interface
// ---------------------------------------------------------------------------

// Init starts the cursor blinking.
func (m WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes key events and forwards the rest to the focused input.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 60)
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateFocused(msg)
}

func (m WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.result = WizardResult{}
		return m, tea.Quit
	}

	switch m.step {
	case StepPortfolio, StepAlpha:
		switch key {
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "enter":
			return m.submitStep()
		case "esc":
			return m.back()
		}
		return m.updateFocused(msg)

	case StepDisplay:
		switch key {
		case "left", "right", " ", "h", "l", "tab":
			m.dark = !m.dark
		case "d":
			m.dark = true
		case "enter":
			m.step = StepConfirm
		case "esc":
			return m.back()
		}

	case StepConfirm:
		switch key {
		case "enter", "y":
			m.result = WizardResult{Params: m.params, DarkMode: m.dark, Confirmed: true}
			return m, tea.Quit
		case "esc", "n":
			return m.back()
		}
	}
	return m, nil
}

func (m WizardModel) submitStep() (tea.Model, tea.Cmd) {
	p, errs := m.collect()
	m.errs = errs
	if len(errs) > 0 {
		return m, nil
	}
	m.params = p
	m.step++
	if m.step == StepAlpha {
		m.focus(m.firstField(StepAlpha))
	} else {
		m.blurAll()
	}
	return m, nil
}

func (m WizardModel) back() (tea.Model, tea.Cmd) {
	m.errs = nil
	if m.step == StepPortfolio {
		return m, nil
	}
	m.step--
	if m.step <= StepAlpha {
		m.focus(m.firstField(m.step))
	}
	return m, nil
}

// collect parses every field into a Params and reports problems belonging
// to the current step.
func (m WizardModel) collect() (sim.Params, []string) {
	p := m.params
	var errs []string
	fail := func(f wizardField, err error) {
		if f.step == m.step {
			errs = append(errs, fmt.Sprintf("%s: %v", f.label, err))
		}
	}

	for _, f := range m.fields {
		raw := strings.TrimSpace(f.input.Value())
		switch f.key {
		case "ticker":
			p.Ticker = strings.ToUpper(raw)
		case "years":
			n, err := strconv.Atoi(raw)
			if err != nil {
				fail(f, errors.New("must be a whole number"))
				continue
			}
			p.Years = n
		case "seed":
			if raw == "" {
				p.Seed = nil
				continue
			}
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fail(f, errors.New("must be a whole number or blank"))
				continue
			}
			p.Seed = &n
		default:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fail(f, errors.New("must be a number"))
				continue
			}
			switch f.key {
			case "initialCapital":
				p.InitialCapital = v
			case "initialAlpha":
				p.InitialAlpha = v
			case "decayRate":
				p.DecayRate = v
			case "beta":
				p.Beta = v
			case "noiseStdFrac":
				p.NoiseStdFrac = v
			}
		}
	}

	var perrs sim.ParamErrors
	if err := p.Validate(); errors.As(err, &perrs) {
		for _, pe := range perrs {
			for _, f := range m.fields {
				if f.key == pe.Field && f.step == m.step {
					errs = append(errs, fmt.Sprintf("%s: %s", f.label, pe.Message))
				}
			}
		}
	}
	return p, errs
}

// ---------------------------------------------------------------------------
// Focus management
// ---------------------------------------------------------------------------

func (m *WizardModel) firstField(step WizardStep) int {
	for i, f := range m.fields {
		if f.step == step {
			return i
		}
	}
	return 0
}

func (m *WizardModel) moveFocus(delta int) {
	idx := []int{}
	for i, f := range m.fields {
		if f.step == m.step {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return
	}
	pos := 0
	for j, i := range idx {
		if i == m.focused {
			pos = j
		}
	}
	pos = (pos + delta + len(idx)) % len(idx)
	m.focus(idx[pos])
}

func (m *WizardModel) focus(i int) {
	m.blurAll()
	m.focused = i
	m.fields[i].input.Focus()
}

func (m *WizardModel) blurAll() {
	for i := range m.fields {
		m.fields[i].input.Blur()
	}
}

func (m WizardModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.step > StepAlpha {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
	return m, cmd
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the current step.
func (m WizardModel) View() string {
	th := m.th
	w := min(m.width-4, 76)

	sections := []string{
		"",
		"  " + th.Title.Render(components.Logo) + th.Dim("  new simulation"),
		"",
		"  " + components.ProgressStep{Steps: wizardStepLabels(), Current: int(m.step)}.Render(th),
		"",
		"  " + th.Divider(w),
		"",
	}

	switch m.step {
	case StepPortfolio, StepAlpha:
		for i, f := range m.fields {
			if f.step != m.step {
				continue
			}
			label := th.Label.Render(fmt.Sprintf("%-36s", f.label))
			if i == m.focused {
				label = th.NewStyle().Foreground(th.Palette.AccentPrimary).Render(fmt.Sprintf("%-36s", f.label))
			}
			sections = append(sections, "  "+label+f.input.View())
		}
	case StepDisplay:
		sections = append(sections, "  "+th.Label.Render("Colour theme    ")+m.themeToggle())
	case StepConfirm:
		sections = append(sections, m.viewConfirm()...)
	}

	for _, e := range m.errs {
		sections = append(sections, "  "+th.Loss.Render("✗ "+e))
	}

	sections = append(sections, "", "  "+th.Divider(w), components.WizardFooter(m.width).Render(th))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m WizardModel) themeToggle() string {
	on := m.th.NewStyle().Foreground(m.th.Palette.AccentPrimary).Bold(true)
	if m.dark {
		return m.th.Dim("light") + "  " + on.Render("[dark]")
	}
	return on.Render("[light]") + "  " + m.th.Dim("dark")
}

func (m WizardModel) viewConfirm() []string {
	th := m.th
	p := m.params
	seed := "random"
	if p.Seed != nil {
		seed = strconv.FormatInt(*p.Seed, 10)
	}
	theme := "light"
	if m.dark {
		theme = "dark"
	}
	rows := [][2]string{
		{"CAPITAL", components.Currency(p.InitialCapital)},
		{"BENCHMARK", fmt.Sprintf("%s, %dy", p.Ticker, p.Years)},
		{"ALPHA", components.Percent(p.InitialAlpha) + " decaying at λ=" + fmtFloat(p.DecayRate)},
		{"BETA", fmtFloat(p.Beta)},
		{"NOISE", fmtFloat(p.NoiseStdFrac)},
		{"SEED", seed},
		{"THEME", theme},
	}
	out := make([]string, 0, len(rows)+2)
	for _, r := range rows {
		out = append(out, "  "+th.Label.Render(fmt.Sprintf("%-11s", r[0]))+th.Value.Render(r[1]))
	}
	out = append(out, "", "  "+th.Dim("enter to save, esc to go back"))
	return out
}

// Result returns what the wizard collected.
func (m WizardModel) Result() WizardResult {
	return m.result
}

// Step returns the current step.
func (m WizardModel) Step() WizardStep {
	return m.step
}
