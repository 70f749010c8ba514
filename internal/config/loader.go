package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if SWIMTRACK_CONFIG is set
//  3. env (prefix SWIMTRACK_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SWIMTRACK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SWIMTRACK_ADDR, SWIMTRACK_QUEUE_SIZE, ...
	// Keys map to the koanf tags; underscores are preserved.
	envProvider := env.Provider("SWIMTRACK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "swimtrack_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.ForecastFloorRatio <= 0 || cfg.ForecastFloorRatio > 1 {
		return fmt.Errorf("%w: forecast_floor_ratio must be in (0, 1]", ErrInvalidConfig)
	}
	if cfg.ForecastFallbackCount < 2 {
		return fmt.Errorf("%w: forecast_fallback_count must be at least 2", ErrInvalidConfig)
	}
	if _, err := cfg.BirthDateValue(); err != nil {
		return fmt.Errorf("%w: birth_date: %w", ErrInvalidConfig, err)
	}
	if _, err := cfg.SeasonStartValue(); err != nil {
		return fmt.Errorf("%w: season_start: %w", ErrInvalidConfig, err)
	}
	return nil
}
