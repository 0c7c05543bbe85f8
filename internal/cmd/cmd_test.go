package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/marketdata"
)

const sampleCSV = `Date,Close
2024-01-02,100
2024-01-03,101
2024-01-04,99.5
2024-01-05,102
2024-01-08,103.25
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestUseCSV(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.BenchmarkConfig
		want bool
	}{
		{"auto with path", config.BenchmarkConfig{Source: config.SourceAuto, CSVPath: "spy.csv"}, true},
		{"auto without path", config.BenchmarkConfig{Source: config.SourceAuto}, false},
		{"forced csv", config.BenchmarkConfig{Source: config.SourceCSV}, true},
		{"forced python", config.BenchmarkConfig{Source: config.SourcePython, CSVPath: "spy.csv"}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, useCSV(tc.cfg))
		})
	}
}

func TestWriteBars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "spy.csv")
	bars := []marketdata.Bar{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Close: 101.5},
	}
	require.NoError(t, writeBars(path, bars))

	got, err := marketdata.CSVSource{Path: path}.Closes(t.Context(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, bars, got)
}

func TestNewLogger_KeepsConfiguredFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "info"
	cfg.Log.File = filepath.Join(t.TempDir(), "run.log")

	l, closer, err := newLogger(cfg, true)
	require.NoError(t, err)
	l.Info().Str("ticker", "SPY").Msg("simulation started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ticker":"SPY"`)
	assert.Contains(t, string(data), "simulation started")
}

func TestConfigValidateCommand(t *testing.T) {
	good := writeFile(t, "config.json", `{"simulation": {"initialCapital": 5000, "ticker": "QQQ"}}`)
	assert.NoError(t, execute(t, "--config", good, "--no-color", "config", "validate"))

	bad := writeFile(t, "config.json", `{"simulation": {"initialCapital": -5}, "display": {"maxPoints": -1}}`)
	err := execute(t, "--config", bad, "--no-color", "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error(s)")
}

func TestMissingExplicitConfigFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")
	err := execute(t, "--config", missing, "--no-color", "config", "validate")
	assert.Error(t, err)
}

func TestRunJSONFromCSV(t *testing.T) {
	csvPath := writeFile(t, "spy.csv", sampleCSV)
	cfgPath := writeFile(t, "config.json", `{"log": {"level": "error"}}`)

	err := execute(t, "--config", cfgPath, "--no-color", "run",
		"--csv", csvPath, "--seed", "7", "--json")
	assert.NoError(t, err)
}

func TestRunRejectsBadParams(t *testing.T) {
	csvPath := writeFile(t, "spy.csv", sampleCSV)
	cfgPath := writeFile(t, "config.json", `{"log": {"level": "error"}}`)

	err := execute(t, "--config", cfgPath, "--no-color", "run",
		"--csv", csvPath, "--capital=-1", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
