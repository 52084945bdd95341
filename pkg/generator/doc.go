// Package generator orchestrates a full generation run: it resolves every
// service in a spec against the live backend, builds dashboard panels from
// the resolved signals, and assembles a run report with per-service
// diagnostics for backends that could not be reached.
package generator
