/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/semalabs/sema/pkg/config"
	"github.com/semalabs/sema/pkg/discovery"
	"github.com/semalabs/sema/pkg/intent"
	"github.com/semalabs/sema/pkg/serializer"
)

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "Output destination: file path, cm://namespace/name, or empty for stdout",
	Sources: cli.EnvVars("SEMA_OUTPUT_PATH"),
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"t"},
	Usage:   fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
	Value:   "yaml",
	Sources: cli.EnvVars("SEMA_OUTPUT_FORMAT"),
}

var backendFlag = &cli.StringFlag{
	Name:    "backend",
	Usage:   "Metrics backend base URL (e.g. http://prometheus:9090)",
	Sources: cli.EnvVars("SEMA_BACKEND_URL"),
}

// parseOutputFormat reads and validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			format, serializer.SupportedFormats())
	}
	return format, nil
}

// loadConfig builds the effective configuration: file, environment, then
// the --backend flag on top.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		if backend := cmd.String("backend"); backend != "" {
			// The file/env config may fail validation solely because the
			// URL arrives via flag; retry with it applied.
			cfg = config.Default()
			cfg.Backend.URL = backend
			if verr := cfg.Validate(); verr != nil {
				return nil, verr
			}
			return cfg, nil
		}
		return nil, err
	}
	if backend := cmd.String("backend"); backend != "" {
		cfg.Backend.URL = backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newDiscoveryClient builds a backend client from configuration.
func newDiscoveryClient(cfg *config.Config) (*discovery.Client, error) {
	return discovery.New(cfg.Backend.URL,
		discovery.WithRetries(cfg.Backend.Retries),
		discovery.WithBackoff(cfg.Backend.Backoff),
		discovery.WithLookback(cfg.Backend.Lookback),
		discovery.WithRateLimit(rate.Limit(cfg.Backend.RateLimit), cfg.Backend.RateBurst),
	)
}

// parseOverrides parses repeated key=metric flag values into an override map.
func parseOverrides(values []string) (map[intent.Key]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	overrides := make(map[intent.Key]string, len(values))
	for _, v := range values {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("invalid override %q: expected intent.key=metric_name", v)
		}
		overrides[intent.Key(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
	}
	return overrides, nil
}

// runTimeout picks the effective timeout for one command invocation.
func runTimeout(cmd *cli.Command, fallback time.Duration) time.Duration {
	if d := cmd.Duration("timeout"); d > 0 {
		return d
	}
	return fallback
}
