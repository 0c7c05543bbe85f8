package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/Dallionking/alpha-decay/internal/tui/components"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// RenderMarkdown renders md with glamour in the theme's style, falling back
// to the raw text when rendering fails.
func RenderMarkdown(th styles.Theme, md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(th.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// ExplainModel is a scrolling pager over rendered markdown.
type ExplainModel struct {
	th    styles.Theme
	md    string
	vp    viewport.Model
	ready bool
	width int
}

// NewExplainModel creates a pager for md.
func NewExplainModel(md string, th styles.Theme) ExplainModel {
	return ExplainModel{th: th, md: md, width: 80}
}

// Init does nothing; content is laid out on the first WindowSizeMsg.
func (m ExplainModel) Init() tea.Cmd {
	return nil
}

// Update handles resizing, quitting and scrolling.
func (m ExplainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-2, 3)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		m.vp.SetContent(RenderMarkdown(m.th, m.md, min(msg.Width-4, 100)))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders the visible part of the document and the key hints.
func (m ExplainModel) View() string {
	if !m.ready {
		return "\n  " + m.th.Dim("loading...")
	}
	return m.vp.View() + "\n" + components.PagerFooter(m.width).Render(m.th)
}
