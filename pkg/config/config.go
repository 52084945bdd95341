/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/semalabs/sema/pkg/defaults"
	"github.com/semalabs/sema/pkg/errors"
)

// Backend configures the metrics backend connection.
type Backend struct {
	// URL is the base URL of the Prometheus-compatible backend.
	URL string `koanf:"url" yaml:"url"`

	// Retries bounds query attempts against a flaky backend.
	Retries int `koanf:"retries" yaml:"retries"`

	// Backoff is the fixed delay between retry attempts.
	Backoff time.Duration `koanf:"backoff" yaml:"backoff"`

	// Lookback is the window series must have been seen in to count as live.
	Lookback time.Duration `koanf:"lookback" yaml:"lookback"`

	// RateLimit caps backend queries per second; RateBurst is the burst size.
	RateLimit float64 `koanf:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `koanf:"rate_burst" yaml:"rate_burst"`
}

// Generate configures generation runs.
type Generate struct {
	// Concurrency bounds how many services resolve in parallel.
	Concurrency int `koanf:"concurrency" yaml:"concurrency"`

	// Timeout bounds one whole generation run.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
}

// Output configures where run artifacts go.
type Output struct {
	// Format is json, yaml, or table.
	Format string `koanf:"format" yaml:"format"`

	// Path is a file path, a cm://namespace/name ConfigMap URI, or empty
	// for stdout.
	Path string `koanf:"path" yaml:"path"`
}

// Config is the complete runtime configuration.
type Config struct {
	Backend  Backend  `koanf:"backend" yaml:"backend"`
	Generate Generate `koanf:"generate" yaml:"generate"`
	Output   Output   `koanf:"output" yaml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: Backend{
			Retries:   defaults.DiscoveryRetryAttempts,
			Backoff:   defaults.DiscoveryRetryBackoff,
			Lookback:  defaults.DiscoveryLookback,
			RateLimit: defaults.DiscoveryRateLimit,
			RateBurst: defaults.DiscoveryRateBurst,
		},
		Generate: Generate{
			Concurrency: defaults.GenerateConcurrency,
			Timeout:     defaults.GenerateTimeout,
		},
		Output: Output{
			Format: "yaml",
		},
	}
}

// Load reads configuration from the given YAML file (when it exists), then
// overlays SEMA_* environment variables. SEMA_BACKEND_URL maps to
// backend.url, and so on; the first underscore-separated token is the
// section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.WrapWithContext(errors.ErrCodeInvalidSpec,
					"failed to read config file", err, map[string]any{"path": path})
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidSpec,
				"failed to access config file", err, map[string]any{"path": path})
		}
	}

	if err := k.Load(env.Provider("SEMA_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "SEMA_"))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec,
			"failed to load environment overrides", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec,
			"failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values. The backend URL is
// required; everything else has workable defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.URL) == "" {
		return errors.New(errors.ErrCodeInvalidSpec, "backend url is required")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(errors.ErrCodeInvalidSpec,
			fmt.Sprintf("backend url %q is not a valid absolute URL", c.Backend.URL))
	}
	if c.Backend.Retries < 1 {
		return errors.New(errors.ErrCodeInvalidSpec, "backend retries must be at least 1")
	}
	if c.Backend.RateLimit <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "backend rate_limit must be positive")
	}
	if c.Generate.Concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidSpec, "generate concurrency must be at least 1")
	}
	return nil
}
