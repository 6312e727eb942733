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
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SUBJECTSCORE_CONFIG is set
//  3. env (prefix SUBJECTSCORE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SUBJECTSCORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SUBJECTSCORE_ADDR, SUBJECTSCORE_MAX_BATCH_SIZE, ...
	// Map env keys like SUBJECTSCORE_MAX_BATCH_SIZE -> max_batch_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SUBJECTSCORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "subjectscore_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.MaxBatchSize < 0:
		return nil, fmt.Errorf("%w: max_batch_size must not be negative", ErrInvalidConfig)
	case cfg.CacheSize < 0:
		return nil, fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
