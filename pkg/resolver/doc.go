// Package resolver implements the waterfall resolution engine matching
// intents against a service's discovered metric inventory.
//
// # Waterfall
//
// Each intent is evaluated in a fixed priority order, short-circuiting at
// the first success:
//
//  1. Override — an operator-supplied metric name for the intent key binds
//     directly, without consulting discovery. Overrides are trusted, not
//     re-validated against the inventory.
//  2. Direct match — the intent's candidate expressions are tried in
//     registration order against the inventory; the first whose metric name
//     exists and whose required labels are present wins.
//  3. Synthesis — if the intent declares a synthesis rule, every referenced
//     sub-intent is resolved via steps 1-2 only (synthesis never recurses
//     into further synthesis). All refs must resolve; partial synthesis is
//     failure, not a degraded result. Overrides apply at every level.
//  4. Guidance — an unresolved signal carrying the intent's guidance hint
//     and, where derivable, a suggested missing-exporter name.
//
// Per intent the state machine is START → BOUND or START → GUIDANCE; no
// intent visits more than one terminal state per call.
//
// # Caching
//
// The engine memoizes the discovery inventory and the full resolved signal
// sequence per service identifier. There is no time-based expiry: callers
// must Invalidate a service before regenerating its artifacts within the
// same process. Entries for distinct services never contend.
//
// # Determinism
//
// Given identical inventory and overrides, resolution output is
// byte-for-byte identical: every ordered structure is an explicit sequence,
// and output order always matches input intent order.
package resolver
