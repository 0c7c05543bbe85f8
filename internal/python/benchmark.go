package python

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FetchScript is the helper that downloads benchmark closes via yfinance.
const FetchScript = "scripts/fetch_benchmark.py"

// BarEvent is one JSON line emitted by the fetch script. A line carries
// either a bar (Date and Close), a progress message, or an error.
type BarEvent struct {
	Date    string  `json:"date,omitempty"`
	Close   float64 `json:"close,omitempty"`
	Message string  `json:"message,omitempty"`
	Error   string  `json:"error,omitempty"`
	Done    bool    `json:"done,omitempty"`
}

// IsBar reports whether the event carries a price.
func (e BarEvent) IsBar() bool {
	return e.Date != "" && e.Error == ""
}

// FetchBenchmark runs the fetch script for ticker over the trailing years and
// streams its events. The channel is closed when the script exits; a script
// failure arrives as a final event with Error set and Done true.
func (r *Runner) FetchBenchmark(ctx context.Context, ticker string, years int) (<-chan BarEvent, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if years <= 0 {
		return nil, fmt.Errorf("years must be positive, got %d", years)
	}

	lines, errc := r.ExecStreaming(ctx, FetchScript, []string{
		"--ticker", ticker,
		"--years", strconv.Itoa(years),
	})

	events := make(chan BarEvent, 64)
	go func() {
		defer close(events)

		for line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			events <- ParseEvent(line)
		}
		if err := <-errc; err != nil {
			events <- BarEvent{Error: err.Error(), Done: true}
		}
	}()

	return events, nil
}

// ParseEvent decodes one line of script output. Non-JSON lines become
// informational messages.
func ParseEvent(line string) BarEvent {
	var ev BarEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		return BarEvent{Message: line}
	}
	return ev
}
