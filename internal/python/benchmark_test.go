package python

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEvent(t *testing.T) {
	ev := ParseEvent(`{"date":"2024-01-02","close":470.5}`)
	assert.True(t, ev.IsBar())
	assert.Equal(t, 470.5, ev.Close)

	ev = ParseEvent(`{"error":"no data for XYZ","done":true}`)
	assert.False(t, ev.IsBar())
	assert.True(t, ev.Done)

	ev = ParseEvent("Traceback (most recent call last):")
	assert.False(t, ev.IsBar())
	assert.Equal(t, "Traceback (most recent call last):", ev.Message)
}

func TestFetchBenchmark_ValidatesArgs(t *testing.T) {
	r := &Runner{pythonBin: "python3", projectRoot: t.TempDir()}

	_, err := r.FetchBenchmark(context.Background(), " ", 5)
	assert.Error(t, err)

	_, err = r.FetchBenchmark(context.Background(), "SPY", 0)
	assert.Error(t, err)
}

func TestImportName(t *testing.T) {
	assert.Equal(t, "pandas_ta", importName("pandas-ta"))
	assert.Equal(t, "yfinance", importName("yfinance"))
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "ValueError: bad", lastLine("Traceback\n  File x\nValueError: bad\n"))
	assert.Equal(t, "", lastLine(""))
}
