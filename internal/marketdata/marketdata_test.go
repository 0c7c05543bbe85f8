package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/alpha-decay/internal/python"
)

func TestReturns(t *testing.T) {
	got := Returns([]float64{100, 110, 99})
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 0.10, got[1], 1e-12)
	assert.InDelta(t, -0.10, got[2], 1e-12)
}

func TestReturns_NonFiniteBecomesZero(t *testing.T) {
	got := Returns([]float64{0, 5, 10})
	assert.Equal(t, []float64{0, 0, 1}, got)
	assert.Empty(t, Returns(nil))
}

func TestLoadCSV(t *testing.T) {
	in := `Date,Open,High,Low,Close,Adj Close,Volume
2024-01-03,1,1,1,101,100.5,10
2024-01-02,1,1,1,100,99.5,10
2024-01-04,1,1,1,,,10
2024-01-05,1,1,1,102,nan,10
`
	bars, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, []float64{99.5, 100.5}, CloseValues(bars))
}

func TestLoadCSV_CloseOnly(t *testing.T) {
	bars, err := LoadCSV(strings.NewReader("date,close\n2024-01-02T00:00:00Z,10\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, CloseValues(bars))
}

func TestLoadCSV_Errors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoData)

	_, err = LoadCSV(strings.NewReader("Date,Close\n"))
	assert.ErrorIs(t, err, ErrNoData)

	_, err = LoadCSV(strings.NewReader("Day,Price\n2024-01-02,1\n"))
	assert.ErrorContains(t, err, "Date and Close")

	_, err = LoadCSV(strings.NewReader("Date,Close\nyesterday,1\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestCSVSource_TrailingYears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spy.csv")
	body := "Date,Close\n2019-06-01,1\n2021-06-01,2\n2022-06-01,3\n2023-06-01,4\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	bars, err := CSVSource{Path: path}.Closes(context.Background(), "SPY", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, CloseValues(bars))

	all, err := CSVSource{Path: path}.Closes(context.Background(), "SPY", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")}.Closes(context.Background(), "SPY", 1)
	assert.Error(t, err)
}

type fakeFetcher struct {
	events []python.BarEvent
	err    error
}

func (f fakeFetcher) FetchBenchmark(context.Context, string, int) (<-chan python.BarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan python.BarEvent, len(f.events))
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func TestPythonSource(t *testing.T) {
	var msgs []string
	src := PythonSource{
		Fetcher: fakeFetcher{events: []python.BarEvent{
			{Message: "downloading SPY (5y)"},
			{Date: "2024-01-02", Close: 470},
			{Date: "not-a-date", Close: 1},
			{Date: "2024-01-03", Close: 468},
			{Message: "2 bars", Done: true},
		}},
		Log:       zerolog.Nop(),
		OnMessage: func(m string) { msgs = append(msgs, m) },
	}

	bars, err := src.Closes(context.Background(), "SPY", 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{470, 468}, CloseValues(bars))
	assert.Equal(t, []string{"downloading SPY (5y)", "2 bars"}, msgs)
}

func TestPythonSource_ScriptError(t *testing.T) {
	src := PythonSource{Fetcher: fakeFetcher{events: []python.BarEvent{
		{Date: "2024-01-02", Close: 470},
		{Error: "no data for XYZ", Done: true},
	}}, Log: zerolog.Nop()}

	_, err := src.Closes(context.Background(), "XYZ", 5)
	assert.ErrorContains(t, err, "no data for XYZ")
}

func TestPythonSource_Empty(t *testing.T) {
	src := PythonSource{Fetcher: fakeFetcher{}, Log: zerolog.Nop()}
	_, err := src.Closes(context.Background(), "SPY", 5)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = PythonSource{}.Closes(context.Background(), "SPY", 5)
	assert.Error(t, err)
}

func TestWriteCSV_LoadsBack(t *testing.T) {
	bars := []Bar{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 470.25},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Close: 468},
	}
	var b strings.Builder
	require.NoError(t, WriteCSV(&b, bars))
	assert.True(t, strings.HasPrefix(b.String(), "Date,Close\n2024-01-02,470.25\n"))

	got, err := LoadCSV(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, bars, got)
}
