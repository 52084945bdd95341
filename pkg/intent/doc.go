// Package intent defines the static catalog of named monitoring signals and
// the registry used to look them up.
//
// An Intent is a named, technology-scoped request for a signal (for example
// "database connection saturation"), independent of whether any metric
// backing it currently exists. Each intent carries an ordered list of
// candidate metric expressions (most specific first), an optional synthesis
// rule deriving the signal from other intents, and an instrumentation
// guidance hint used when resolution fails entirely.
//
// Intents are data, not code: the built-in catalog is an embedded YAML
// document loaded once at process warm-up. Adding a technology means adding
// catalog entries and classifier patterns, never a new code path. The
// registry is immutable after warm-up and safe for unsynchronized concurrent
// reads.
package intent
