// Package config loads runtime configuration from an optional YAML file
// overlaid with SEMA_* environment variables.
package config
