package views

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/alpha-decay/internal/marketdata"
	"github.com/Dallionking/alpha-decay/internal/tui/models"
	"github.com/Dallionking/alpha-decay/internal/tui/styles"
)

// ErrFetchCancelled is returned when the user quits during a download.
var ErrFetchCancelled = errors.New("fetch cancelled")

// RunFetch downloads closes for ticker behind a spinner. src receives a
// progress callback so script messages show under the spinner.
func RunFetch(ctx context.Context, src func(onMessage func(string)) marketdata.Source, ticker string, years int, th styles.Theme) ([]marketdata.Bar, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var p *tea.Program
	onMessage := func(s string) {
		if p != nil {
			p.Send(models.FetchProgressMsg(s))
		}
	}
	source := src(onMessage)
	fetch := func() tea.Msg {
		bars, err := source.Closes(ctx, ticker, years)
		return models.FetchDoneMsg{Bars: bars, Err: err}
	}

	p = tea.NewProgram(models.NewFetchModel(ticker, fetch, th))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("fetch display failed: %w", err)
	}
	fm, ok := final.(models.FetchModel)
	if !ok {
		return nil, fmt.Errorf("fetch returned unexpected model %T", final)
	}
	if fm.Cancelled() {
		return nil, ErrFetchCancelled
	}
	return fm.Result()
}
