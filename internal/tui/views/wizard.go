package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/alpha-decay/internal/sim"
	"github.com/Dallionking/alpha-decay/internal/tui/models"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// RunWizard launches the parameter wizard. It blocks until the user confirms
// or cancels; check Confirmed on the result.
func RunWizard(base sim.Params, dark bool, th styles.Theme) (models.WizardResult, error) {
	model := models.NewWizardModel(base, dark, th)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return models.WizardResult{}, fmt.Errorf("wizard failed: %w", err)
	}
	wm, ok := final.(models.WizardModel)
	if !ok {
		return models.WizardResult{}, fmt.Errorf("wizard returned unexpected model %T", final)
	}
	return wm.Result(), nil
}
