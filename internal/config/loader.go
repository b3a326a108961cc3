package config

import (
	"context"
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
//  1. defaults (New())
//  2. file (YAML) if PWA_CONFIG is set
//  3. env (prefix PWA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PWA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PWA_ADDR, PWA_EMPLOYEE_DATA_PATH, ...
	// Map env keys like PWA_SENIOR_LEVEL -> senior_level (flat keys),
	// preserving underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PWA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "pwa_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.EmployeeDataPath == "":
		return fmt.Errorf("%w: employee_data_path must not be empty", ErrInvalidConfig)
	case c.SeniorLevel <= 0:
		return fmt.Errorf("%w: senior_level must be positive", ErrInvalidConfig)
	case c.SeniorReviewLimit <= 0:
		return fmt.Errorf("%w: senior_review_limit must be positive", ErrInvalidConfig)
	case c.SuggestionMinLevel <= 0 || c.SuggestionMaxLevel < c.SuggestionMinLevel:
		return fmt.Errorf("%w: suggestion level band is inverted", ErrInvalidConfig)
	case c.AuditWorkers <= 0:
		return fmt.Errorf("%w: audit_workers must be positive", ErrInvalidConfig)
	case c.AuditQueueCapacity <= 0:
		return fmt.Errorf("%w: audit_queue_capacity must be positive", ErrInvalidConfig)
	}
	return nil
}
