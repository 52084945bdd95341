// Package discovery queries a live Prometheus-compatible backend for the
// metrics that actually exist for one service.
//
// # Overview
//
// Given an opaque label-selector string scoping the query to one service,
// the client fetches the series present within the lookback window, merges
// in metric metadata (type, help) where the backend provides it, classifies
// each name by technology and value kind, and returns a DiscoveryResult: a
// point-in-time inventory with each metric name appearing at most once,
// grouped for O(1) lookup during resolution.
//
// # Failure modes
//
// Discover fails with BACKEND_UNREACHABLE when no response is obtainable
// within the bounded retry budget (fixed backoff between attempts;
// authentication failures are never retried) or when the caller's context
// expires. It fails with MALFORMED_RESPONSE when the payload cannot be
// parsed, returning a zero-metric result alongside the error so callers
// uniformly treat the service as "found nothing".
//
// The client is stateless by design: caching is the resolution engine's
// job, which keeps this component independently testable.
package discovery
