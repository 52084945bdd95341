// Package defaults centralizes timeout and limit constants shared across
// the discovery client, resolution engine, and CLI.
package defaults
