package marketdata

import (
	"context"
	"errors"
	"math"
	"time"
)

// ErrNoData is returned when a source yields no usable closes.
var ErrNoData = errors.New("no price data")

// Bar is one daily closing price.
type Bar struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Source provides daily closing prices for a ticker.
type Source interface {
	Closes(ctx context.Context, ticker string, years int) ([]Bar, error)
}

// CloseValues extracts the close column.
func CloseValues(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Returns converts closes to simple period returns. The result has the same
// length as closes; the first return is 0 and any non-finite return is 0.
func Returns(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		r := closes[i]/closes[i-1] - 1
		if math.IsNaN(r) || math.IsInf(r, 0) {
			r = 0
		}
		out[i] = r
	}
	return out
}

// trailing keeps the bars within years of the last bar's date.
func trailing(bars []Bar, years int) []Bar {
	if years <= 0 || len(bars) == 0 {
		return bars
	}
	cutoff := bars[len(bars)-1].Date.AddDate(-years, 0, 0)
	for i, b := range bars {
		if !b.Date.Before(cutoff) {
			return bars[i:]
		}
	}
	return bars
}
