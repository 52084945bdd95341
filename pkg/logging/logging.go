/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLevel converts a case-insensitive level string into a slog.Level.
// Unknown values default to Info so misconfiguration never silences logs.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefaultStructuredLogger configures the process-wide default slog logger
// with JSON output to stderr and module/version attributes on every record.
// The level is read from the LOG_LEVEL environment variable.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv("LOG_LEVEL"))
}

// SetDefaultStructuredLoggerWithLevel is like SetDefaultStructuredLogger but
// takes an explicit level string, letting CLI flags override the environment.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	lvl := ParseLevel(level)

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
		// Source location only at debug verbosity to keep records lean.
		AddSource: lvl == slog.LevelDebug,
	})

	logger := slog.New(handler).With(
		slog.String("module", module),
		slog.String("version", version),
	)

	slog.SetDefault(logger)
}
