package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blake7/watchstopwatch/internal/stopwatch"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WATCHSTOPWATCH_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, stopwatch.DefaultInterval, cfg.Refresh.Interval)
	require.Equal(t, "auto", cfg.Display.Format)
	require.True(t, cfg.Display.ShowProgress)
	require.True(t, cfg.History.Enabled)
	require.Equal(t, filepath.Join(home, ".local", "share", "watchstopwatch", "history.db"), cfg.History.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, stopwatch.FormatAuto, cfg.DisplayFormat())
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[refresh]
interval = "40ms"

[display]
format = "fixed"
show_progress = false

[history]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 40*time.Millisecond, cfg.Refresh.Interval)
	require.Equal(t, stopwatch.FormatFixed, cfg.DisplayFormat())
	require.False(t, cfg.Display.ShowProgress)
	require.False(t, cfg.History.Enabled)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))
	t.Setenv("WATCHSTOPWATCH_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv("WATCHSTOPWATCH_DISPLAY_FORMAT", "fixed")
	t.Setenv("WATCHSTOPWATCH_REFRESH_INTERVAL", "100ms")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "fixed", cfg.Display.Format)
	require.Equal(t, 100*time.Millisecond, cfg.Refresh.Interval)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	good := Config{
		Refresh: RefreshConfig{Interval: time.Millisecond},
		Display: DisplayConfig{Format: "auto"},
		History: HistoryConfig{Enabled: true, Path: "/tmp/h.db"},
	}
	require.NoError(t, good.Validate())

	bad := good
	bad.Refresh.Interval = 0
	require.Error(t, bad.Validate())

	bad = good
	bad.Display.Format = "roman"
	require.Error(t, bad.Validate())

	bad = good
	bad.History.Path = " "
	require.Error(t, bad.Validate())

	bad.History.Enabled = false
	require.NoError(t, bad.Validate())
}
