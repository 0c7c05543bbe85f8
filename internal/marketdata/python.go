package marketdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Dallionking/alpha-decay/internal/python"
)

// Fetcher streams benchmark bars from an external downloader.
type Fetcher interface {
	FetchBenchmark(ctx context.Context, ticker string, years int) (<-chan python.BarEvent, error)
}

// PythonSource downloads closes through the yfinance helper script.
type PythonSource struct {
	Fetcher Fetcher
	Log     zerolog.Logger
	// OnMessage, when set, receives progress messages from the script.
	OnMessage func(string)
}

// Closes collects every bar the script emits. A script error fails the
// whole fetch; partial data is discarded.
func (s PythonSource) Closes(ctx context.Context, ticker string, years int) ([]Bar, error) {
	if s.Fetcher == nil {
		return nil, errors.New("python source has no fetcher")
	}
	events, err := s.Fetcher.FetchBenchmark(ctx, ticker, years)
	if err != nil {
		return nil, err
	}

	var (
		bars    []Bar
		lastErr error
	)
	for ev := range events {
		switch {
		case ev.Error != "":
			lastErr = errors.New(ev.Error)
		case ev.IsBar():
			d, err := parseDate(ev.Date)
			if err != nil {
				s.Log.Warn().Str("date", ev.Date).Msg("skipping bar with bad date")
				continue
			}
			bars = append(bars, Bar{Date: d, Close: ev.Close})
		case ev.Message != "":
			s.Log.Debug().Str("ticker", ticker).Msg(ev.Message)
			if s.OnMessage != nil {
				s.OnMessage(ev.Message)
			}
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("fetching %s: %w", ticker, lastErr)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetching %s: %w", ticker, ErrNoData)
	}
	return bars, nil
}
