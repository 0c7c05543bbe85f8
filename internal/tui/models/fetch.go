package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/alpha-decay/internal/marketdata"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// FetchProgressMsg is a status line from the running download.
type FetchProgressMsg string

// FetchDoneMsg ends the download.
type FetchDoneMsg struct {
	Bars []marketdata.Bar
	Err  error
}

// FetchModel shows a spinner while a benchmark download runs. The download
// itself is the command passed to NewFetchModel; it must deliver a FetchDoneMsg.
type FetchModel struct {
	th      styles.Theme
	ticker  string
	fetch   tea.Cmd
	spinner spinner.Model

	status    string
	bars      []marketdata.Bar
	err       error
	done      bool
	cancelled bool
}

// NewFetchModel creates a spinner for a download of ticker.
func NewFetchModel(ticker string, fetch tea.Cmd, th styles.Theme) FetchModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = th.NewStyle().Foreground(th.Palette.AccentPrimary)
	return FetchModel{
		th:      th,
		ticker:  ticker,
		fetch:   fetch,
		spinner: s,
		status:  "starting download",
	}
}

// Init starts the spinner and the download.
func (m FetchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

// Update handles spinner ticks, progress lines and completion.
func (m FetchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" || msg.String() == "esc" {
			m.cancelled = true
			return m, tea.Quit
		}
	case FetchProgressMsg:
		m.status = string(msg)
	case FetchDoneMsg:
		m.bars, m.err, m.done = msg.Bars, msg.Err, true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the spinner line.
func (m FetchModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %s %s\n", m.spinner.View(), m.th.Bold("Fetching"), m.th.Accent(m.ticker))
	b.WriteString("    " + m.th.Dim(styles.TruncateWithEllipsis(m.status, 70)) + "\n")
	return b.String()
}

// Result returns the downloaded bars and the download error.
func (m FetchModel) Result() ([]marketdata.Bar, error) {
	return m.bars, m.err
}

// Cancelled reports whether the user quit before the download finished.
func (m FetchModel) Cancelled() bool {
	return m.cancelled
}
