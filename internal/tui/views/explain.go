package views

import (
	_ "embed"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/alpha-decay/internal/tui/models"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

//go:embed explain.md
var explainDoc string

// ExplainMarkdown returns the model description as markdown.
func ExplainMarkdown() string {
	return explainDoc
}

// RenderExplain renders the description for non-interactive output.
func RenderExplain(th styles.Theme, width int) string {
	return models.RenderMarkdown(th, explainDoc, width)
}

// RunExplain opens the description in a scrolling pager.
func RunExplain(th styles.Theme) error {
	p := tea.NewProgram(models.NewExplainModel(explainDoc, th), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explain pager failed: %w", err)
	}
	return nil
}
