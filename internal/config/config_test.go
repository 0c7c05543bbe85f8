package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, Default().Simulation, cfg.Simulation)
	assert.Equal(t, SourceAuto, cfg.Benchmark.Source)
	assert.Equal(t, 500, cfg.Display.Window)
	assert.Equal(t, 1000, cfg.Display.MaxPoints)
	assert.Equal(t, 50*time.Millisecond, cfg.Display.Interval)
	assert.Nil(t, cfg.Simulation.Seed)
	assert.Empty(t, Validate(cfg))
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	body := `{
  "simulation": {"decayRate": 0.5, "seed": 42},
  "display": {"interval": "20ms", "darkMode": true}
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("ALPHADECAY_SIMULATION_BETA", "1.5")

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Simulation.DecayRate)
	assert.Equal(t, 1.5, cfg.Simulation.Beta)
	assert.Equal(t, 0.05, cfg.Simulation.InitialAlpha)
	require.NotNil(t, cfg.Simulation.Seed)
	assert.Equal(t, int64(42), *cfg.Simulation.Seed)
	assert.Equal(t, 20*time.Millisecond, cfg.Display.Interval)
	assert.True(t, cfg.Display.DarkMode)
}

func TestSaveThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	seed := int64(7)
	cfg.Simulation.Seed = &seed
	cfg.Simulation.Ticker = "QQQ"
	cfg.Display.Interval = 30 * time.Millisecond

	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"interval": "30ms"`)

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "QQQ", got.Simulation.Ticker)
	assert.Equal(t, 30*time.Millisecond, got.Display.Interval)
	require.NotNil(t, got.Simulation.Seed)
	assert.Equal(t, int64(7), *got.Simulation.Seed)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Simulation.InitialCapital = -1
	cfg.Simulation.Years = 0
	cfg.Benchmark.Source = "bloomberg"
	cfg.Display.Window = -3
	cfg.Display.Interval = 0
	cfg.Log.Level = "loud"

	fields := map[string]bool{}
	for _, e := range Validate(cfg) {
		fields[e.Field] = true
	}

	for _, f := range []string{
		"simulation.initialCapital",
		"simulation.years",
		"benchmark.source",
		"display.window",
		"display.interval",
		"log.level",
	} {
		assert.True(t, fields[f], "expected error for %s", f)
	}
}

func TestValidate_CSVSource(t *testing.T) {
	cfg := Default()
	cfg.Benchmark.Source = SourceCSV
	errs := Validate(cfg)
	require.Len(t, errs, 1)
	assert.Equal(t, "benchmark.csvPath", errs[0].Field)

	cfg.Benchmark.CSVPath = filepath.Join(t.TempDir(), "missing.csv")
	errs = Validate(cfg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "file not found")
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Ticker = "QQQ"
	require.NoError(t, ApplyPreset(cfg, "persistent"))
	assert.Equal(t, 0.0, cfg.Simulation.DecayRate)
	assert.Equal(t, "QQQ", cfg.Simulation.Ticker)

	assert.Error(t, ApplyPreset(cfg, "nope"))

	list := ListPresets()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("{}"), 0o644))
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	got, err := findRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestWatcher_CoalescesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	w, err := NewWatcher(path, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Watch(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"simulation":{"beta":2}}`), 0o644))
	}

	select {
	case ev := <-events:
		assert.Equal(t, w.Path(), ev.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("no change event")
	}

	select {
	case <-events:
		t.Fatal("writes within one debounce window should produce one event")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	w, err := NewWatcher(path, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events := w.Watch(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	select {
	case <-events:
		t.Fatal("unexpected event for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	_, ok := <-events
	assert.False(t, ok)
}
