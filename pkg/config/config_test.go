package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semalabs/sema/pkg/errors"
)

func TestLoadDefaultsWithEnvURL(t *testing.T) {
	t.Setenv("SEMA_BACKEND_URL", "http://prometheus:9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://prometheus:9090", cfg.Backend.URL)
	assert.Equal(t, 3, cfg.Backend.Retries)
	assert.Equal(t, 15*time.Minute, cfg.Backend.Lookback)
	assert.Equal(t, 4, cfg.Generate.Concurrency)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	doc := `
backend:
  url: http://prom.internal:9090
  retries: 5
generate:
  concurrency: 8
output:
  format: json
  path: /tmp/report.json
`
	path := filepath.Join(t.TempDir(), "sema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://prom.internal:9090", cfg.Backend.URL)
	assert.Equal(t, 5, cfg.Backend.Retries)
	assert.Equal(t, 8, cfg.Generate.Concurrency)
	assert.Equal(t, "json", cfg.Output.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, 2*time.Second, cfg.Backend.Backoff)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	doc := "backend:\n  url: http://from-file:9090\n"
	path := filepath.Join(t.TempDir(), "sema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	t.Setenv("SEMA_BACKEND_URL", "http://from-env:9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9090", cfg.Backend.URL)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("SEMA_BACKEND_URL", "http://prometheus:9090")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing url", func(c *Config) { c.Backend.URL = "" }},
		{"relative url", func(c *Config) { c.Backend.URL = "prometheus:9090" }},
		{"zero retries", func(c *Config) { c.Backend.Retries = 0 }},
		{"zero rate limit", func(c *Config) { c.Backend.RateLimit = 0 }},
		{"zero concurrency", func(c *Config) { c.Generate.Concurrency = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Backend.URL = "http://prometheus:9090"
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidSpec))
		})
	}
}
