// Package errors provides structured error types with stable codes for the
// failure taxonomy used across the engine: duplicate/missing registry keys
// (fatal at warm-up), unreachable backend and malformed responses
// (recoverable, degrade to empty inventory), and invalid service specs.
package errors
