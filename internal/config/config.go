// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep defaults in New and layer file/env on top in Load.
// - Dates are configuration, never hardcoded: the season boundary and the
//   swimmer's birth date both arrive here.
package config

import (
	"runtime"
	"time"
)

// DateLayout is the calendar-date format used by date-valued fields.
const DateLayout = "2006-01-02"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory raw result queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of normalization workers.
	WorkerCount int `koanf:"worker_count"`

	// StandardsPath points at the time-standards YAML artifact.
	StandardsPath string `koanf:"standards_path"`

	// BirthDate is the swimmer's birth date (YYYY-MM-DD). Age groups for
	// historical swims derive from it.
	BirthDate string `koanf:"birth_date"`

	// SeasonStart is the current season boundary (YYYY-MM-DD) preferred
	// by the trend window. Empty disables the window and the predictor
	// falls back to the trailing results.
	SeasonStart string `koanf:"season_start"`

	// ForecastFloorRatio clamps predictions to this fraction of the
	// current best time.
	ForecastFloorRatio float64 `koanf:"forecast_floor_ratio"`

	// ForecastFallbackCount is how many trailing results to fit when the
	// season window is too thin.
	ForecastFallbackCount int `koanf:"forecast_fallback_count"`

	// MaxResultsLimit caps GET /results responses.
	MaxResultsLimit int `koanf:"max_results_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		QueueSize:             10_000,
		WorkerCount:           runtime.NumCPU() * 2,
		StandardsPath:         "standards.yaml",
		BirthDate:             "",
		SeasonStart:           "",
		ForecastFloorRatio:    0.85,
		ForecastFallbackCount: 3,
		MaxResultsLimit:       1000,
	}
}

// BirthDateValue parses the configured birth date. An empty field yields
// the zero time without error; the caller decides whether age-dependent
// features stay off.
func (c *Config) BirthDateValue() (time.Time, error) {
	return parseDate(c.BirthDate)
}

// SeasonStartValue parses the configured season boundary. Empty means no
// season window.
func (c *Config) SeasonStartValue() (time.Time, error) {
	return parseDate(c.SeasonStart)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}
