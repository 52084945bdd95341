/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/semalabs/sema/pkg/discovery"
	"github.com/semalabs/sema/pkg/errors"
	"github.com/semalabs/sema/pkg/guidance"
	"github.com/semalabs/sema/pkg/intent"
)

// Discoverer produces the live metric inventory for a service selector.
// *discovery.Client satisfies it.
type Discoverer interface {
	Discover(ctx context.Context, selector string) (*discovery.Result, error)
}

// Engine resolves monitoring intents against live metric inventories. Safe
// for concurrent use.
type Engine struct {
	registry *intent.Registry
	disc     Discoverer
	cache    *resolutionCache
}

// Option configures the engine.
type Option func(*Engine)

// WithRegistry overrides the default embedded intent catalog.
func WithRegistry(r *intent.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// New creates a resolution engine backed by the given discoverer. Unless
// overridden, intents come from the embedded catalog.
func New(disc Discoverer, opts ...Option) (*Engine, error) {
	if disc == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "discoverer cannot be nil")
	}

	e := &Engine{
		disc:  disc,
		cache: newResolutionCache(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		reg, err := intent.Default()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal,
				"failed to load default intent catalog", err)
		}
		e.registry = reg
	}
	return e, nil
}

// Resolve runs one resolution pass for a service. Results are memoized per
// service identifier: repeated calls for the same service return the cached
// resolution without re-querying the backend until Invalidate is called.
//
// A discovery failure is not fatal. The pass proceeds against an empty
// inventory, every signal falls through to its guidance terminal state, and
// the failure reason is surfaced once on Resolution.Warning.
func (e *Engine) Resolve(ctx context.Context, req *Request) (*Resolution, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := e.cache.entryFor(req.Service)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.resolution != nil {
		resolutionCacheHits.Inc()
		slog.Debug("resolution served from cache", "service", req.Service)
		return entry.resolution, nil
	}
	resolutionCacheMisses.Inc()

	start := time.Now()
	defer func() {
		resolutionDuration.Observe(time.Since(start).Seconds())
	}()

	intents, err := e.requestedIntents(req)
	if err != nil {
		return nil, err
	}

	inv, warning := e.discover(ctx, req)

	res := &Resolution{
		Service:       req.Service,
		Selector:      req.Selector,
		ResolvedAt:    time.Now().UTC(),
		InventorySize: inv.Len(),
		Signals:       make([]Signal, 0, len(intents)),
		Warning:       warning,
	}

	for _, in := range intents {
		sig := e.resolveIntent(in, inv, req)
		resolutionSignals.WithLabelValues(string(sig.Source)).Inc()
		res.Signals = append(res.Signals, sig)
	}

	slog.Info("resolution complete",
		"service", req.Service,
		"inventory", inv.Len(),
		"signals", len(res.Signals),
		"duration", time.Since(start))

	entry.resolution = res
	return res, nil
}

// Invalidate drops the cached resolution for one service. The next Resolve
// call for that service re-runs discovery.
func (e *Engine) Invalidate(service string) {
	e.cache.invalidate(service)
	slog.Debug("resolution cache invalidated", "service", service)
}

// InvalidateAll drops every cached resolution.
func (e *Engine) InvalidateAll() {
	e.cache.invalidateAll()
}

// requestedIntents materializes the ordered intent list for a request. An
// explicit intent list wins over technology scoping; an unknown key in it is
// caller error, not a resolution outcome.
func (e *Engine) requestedIntents(req *Request) ([]*intent.Intent, error) {
	if len(req.Intents) > 0 {
		list := make([]*intent.Intent, 0, len(req.Intents))
		for _, key := range req.Intents {
			in, err := e.registry.Get(key)
			if err != nil {
				return nil, err
			}
			list = append(list, in)
		}
		return list, nil
	}

	var list []*intent.Intent
	for _, tech := range req.Technologies {
		list = append(list, e.registry.ListByTechnology(tech)...)
	}
	if len(list) == 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidSpec,
			"no intents registered for requested technologies",
			map[string]any{"service": req.Service})
	}
	return list, nil
}

// discover fetches the service's metric inventory, degrading to an empty
// inventory plus a warning when the backend cannot deliver one.
func (e *Engine) discover(ctx context.Context, req *Request) (*discovery.Result, string) {
	inv, err := e.disc.Discover(ctx, req.Selector)
	if err != nil {
		slog.Warn("discovery failed, resolving against empty inventory",
			"service", req.Service, "error", err)
		if inv == nil {
			inv = discovery.EmptyResult(req.Selector)
		}
		return inv, err.Error()
	}
	return inv, ""
}

// resolveIntent walks the waterfall for one intent: operator override, then
// direct candidate match, then single-level synthesis, then guidance.
func (e *Engine) resolveIntent(in *intent.Intent, inv *discovery.Result, req *Request) Signal {
	sig := Signal{
		Intent: in.Key,
		Title:  in.DisplayTitle(),
		Kind:   in.Kind,
	}

	if metric, ok := e.resolveDirect(in, inv, req.Overrides); ok {
		sig.Source = SourceDirect
		sig.Metric = metric
		sig.Query = queryFor(in.Kind, metric, req.Selector)
		return sig
	}

	if in.Synthesis != nil {
		if components, ok := e.resolveSynthesis(in, inv, req); ok {
			sig.Source = SourceSynthesized
			sig.Components = components
			sig.Query = expandExpr(in.Synthesis.Expr, components)
			return sig
		}
	}

	spec := guidance.Synthesize(in)
	sig.Source = SourceUnresolved
	sig.Guidance = spec.Guidance
	sig.Exporter = spec.Exporter
	return sig
}

// resolveDirect attempts the first two waterfall steps and returns the metric
// name the intent binds to. An override is trusted verbatim, without checking
// the inventory; otherwise candidates are tried in declaration order and the
// first whose metric exists with the required labels wins.
func (e *Engine) resolveDirect(in *intent.Intent, inv *discovery.Result, overrides map[intent.Key]string) (string, bool) {
	if name, ok := overrides[in.Key]; ok && name != "" {
		return name, true
	}
	for _, c := range in.Candidates {
		m, ok := inv.Lookup(c.Metric)
		if !ok {
			continue
		}
		if !m.HasLabels(c.Labels) {
			continue
		}
		return c.Metric, true
	}
	return "", false
}

// resolveSynthesis resolves every referenced sub-intent through the direct
// steps only; references never recurse into further synthesis. If any
// reference stays unresolved the whole synthesis fails closed and the caller
// falls through to guidance.
func (e *Engine) resolveSynthesis(in *intent.Intent, inv *discovery.Result, req *Request) ([]string, bool) {
	refs := in.Synthesis.Refs
	components := make([]string, 0, len(refs))

	for _, ref := range refs {
		sub, err := e.registry.Get(ref)
		if err != nil {
			slog.Warn("synthesis references unknown intent",
				"intent", in.Key, "ref", ref)
			return nil, false
		}
		metric, ok := e.resolveDirect(sub, inv, req.Overrides)
		if !ok {
			return nil, false
		}
		components = append(components, queryFor(sub.Kind, metric, req.Selector))
	}
	if len(components) == 0 {
		return nil, false
	}
	return components, true
}

// String describes the engine for logs.
func (e *Engine) String() string {
	return fmt.Sprintf("resolver.Engine{intents:%d}", e.registry.Len())
}
