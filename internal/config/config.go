package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/blake7/watchstopwatch/internal/stopwatch"
)

// Config holds application configuration.
type Config struct {
	Refresh RefreshConfig `mapstructure:"refresh"`
	Display DisplayConfig `mapstructure:"display"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`
}

// RefreshConfig controls the redraw cadence while running.
type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Format       string `mapstructure:"format"` // "auto" or "fixed"
	ShowProgress bool   `mapstructure:"show_progress"`
}

// HistoryConfig holds session archive settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// WATCHSTOPWATCH_. An empty path falls back to $WATCHSTOPWATCH_CONFIG and then
// ~/.config/watchstopwatch/config.toml; a missing default file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("refresh.interval", stopwatch.DefaultInterval)
	v.SetDefault("display.format", string(stopwatch.FormatAuto))
	v.SetDefault("display.show_progress", true)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(home, ".local", "share", "watchstopwatch", "history.db"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "watchstopwatch", "watchstopwatch.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("WATCHSTOPWATCH_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "watchstopwatch"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WATCHSTOPWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the stopwatch cannot run with.
func (c Config) Validate() error {
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive, got %s", c.Refresh.Interval)
	}
	if _, err := stopwatch.ParseFormat(c.Display.Format); err != nil {
		return fmt.Errorf("display.format: %w", err)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	return nil
}

// DisplayFormat returns the parsed display format. Validate has already
// rejected unknown values, so errors fall back to FormatAuto.
func (c Config) DisplayFormat() stopwatch.Format {
	f, err := stopwatch.ParseFormat(c.Display.Format)
	if err != nil {
		return stopwatch.FormatAuto
	}
	return f
}
