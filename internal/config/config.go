// Package config provides configuration for chesscore.
package config

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Perft     PerftConfig     `mapstructure:"perft"`
	Output    OutputConfig    `mapstructure:"output"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Duplicate DuplicateConfig `mapstructure:"duplicate"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format is "console" for human output or "json"
	Format string `mapstructure:"format"`
}

// PerftConfig controls perft searches.
type PerftConfig struct {
	// Workers is the number of goroutines; 0 means one per CPU
	Workers int `mapstructure:"workers"`
	// CacheSize is the number of transposition entries; 0 disables the cache
	CacheSize int `mapstructure:"cache_size"`
}

// EngineConfig locates the external UCI engine used by analyse.
type EngineConfig struct {
	Path  string   `mapstructure:"path"`
	Args  []string `mapstructure:"args"`
	Depth int      `mapstructure:"depth"`
}

// Metrics backends.
const (
	MetricsNone       = "none"
	MetricsLog        = "log"
	MetricsPrometheus = "prometheus"
)

// MetricsConfig selects where metrics go.
type MetricsConfig struct {
	// Backend is none, log or prometheus
	Backend string `mapstructure:"backend"`
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Perft: PerftConfig{
			CacheSize: 1 << 16,
		},
		Output:    *NewOutputConfig(),
		Engine:    EngineConfig{Depth: 18},
		Metrics:   MetricsConfig{Backend: MetricsNone},
		Duplicate: *NewDuplicateConfig(),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "log.format %q must be console or json", c.Log.Format)
	}
	if c.Perft.Workers < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft.workers %d must not be negative", c.Perft.Workers)
	}
	if c.Perft.CacheSize < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft.cache_size %d must not be negative", c.Perft.CacheSize)
	}
	if c.Engine.Depth <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "engine.depth %d must be positive", c.Engine.Depth)
	}
	switch c.Metrics.Backend {
	case MetricsNone, MetricsLog, MetricsPrometheus:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "metrics.backend %q must be none, log or prometheus", c.Metrics.Backend)
	}
	return c.Output.Validate()
}

// ParseLevel returns the zerolog level named by Level.
func (l LogConfig) ParseLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || l.Level == "" {
		return zerolog.NoLevel, errors.Wrapf(errors.ErrInvalidConfig, "log.level %q", l.Level)
	}
	return level, nil
}
