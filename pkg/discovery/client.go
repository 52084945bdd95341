/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package discovery

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"golang.org/x/time/rate"

	"github.com/semalabs/sema/pkg/classifier"
	"github.com/semalabs/sema/pkg/defaults"
	"github.com/semalabs/sema/pkg/errors"
)

// Interface is the discovery contract the resolution engine depends on.
type Interface interface {
	Discover(ctx context.Context, selector string) (*Result, error)
}

// backend is the slice of the Prometheus v1 HTTP API the client uses.
// promv1.API satisfies it; tests substitute a fake.
type backend interface {
	Series(ctx context.Context, matches []string, startTime, endTime time.Time, opts ...promv1.Option) ([]model.LabelSet, promv1.Warnings, error)
	Metadata(ctx context.Context, metric, limit string) (map[string][]promv1.Metadata, error)
}

// Client discovers the metric inventory for a service by querying a
// Prometheus-compatible HTTP API. It holds no per-service state.
type Client struct {
	api      backend
	retries  int
	backoff  time.Duration
	lookback time.Duration
	limiter  *rate.Limiter
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithRetries bounds the number of attempts per backend query.
func WithRetries(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retries = attempts
		}
	}
}

// WithBackoff sets the fixed delay between retry attempts.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.backoff = d
		}
	}
}

// WithLookback sets the window over which series existence is checked.
func WithLookback(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.lookback = d
		}
	}
}

// WithRateLimit caps outbound queries against the backend.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithBackend substitutes the backend API implementation; used in tests.
func WithBackend(b backend) Option {
	return func(c *Client) {
		c.api = b
	}
}

// New creates a discovery Client for the backend at the given base URL.
func New(backendURL string, opts ...Option) (*Client, error) {
	c := &Client{
		retries:  defaults.DiscoveryRetryAttempts,
		backoff:  defaults.DiscoveryRetryBackoff,
		lookback: defaults.DiscoveryLookback,
		limiter:  rate.NewLimiter(rate.Limit(defaults.DiscoveryRateLimit), defaults.DiscoveryRateBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.api == nil {
		promClient, err := api.NewClient(api.Config{Address: backendURL})
		if err != nil {
			return nil, fmt.Errorf("failed to create backend client for %q: %w", backendURL, err)
		}
		c.api = promv1.NewAPI(promClient)
	}

	return c, nil
}

// Discover queries the backend for every metric currently emitted by the
// service matching the selector and returns the classified inventory.
func (c *Client) Discover(ctx context.Context, selector string) (*Result, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "service selector cannot be empty")
	}

	start := time.Now()
	defer func() {
		discoveryDuration.Observe(time.Since(start).Seconds())
	}()

	series, err := c.fetchSeries(ctx, selector)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeMalformedResponse) {
			discoveryTotal.WithLabelValues("malformed").Inc()
			// Degrade to an empty inventory instead of propagating a
			// partial or corrupt parse.
			return EmptyResult(selector), err
		}
		discoveryTotal.WithLabelValues("unreachable").Inc()
		return nil, err
	}

	metadata := c.fetchMetadata(ctx)

	result := NewResult(selector, buildMetrics(series, metadata))
	discoveryTotal.WithLabelValues("success").Inc()

	slog.Debug("discovery complete",
		"selector", selector,
		"series", len(series),
		"metrics", result.Len(),
	)

	return result, nil
}

// fetchSeries queries series existence for the selector over the lookback
// window, retrying transient failures within the bounded budget.
func (c *Client) fetchSeries(ctx context.Context, selector string) ([]model.LabelSet, error) {
	matcher := selector
	if !strings.HasPrefix(matcher, "{") {
		matcher = "{" + matcher + "}"
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBackendUnreachable,
				"context expired while rate-limited", err)
		}

		end := time.Now()
		series, warnings, err := c.api.Series(ctx, []string{matcher}, end.Add(-c.lookback), end)
		if err == nil {
			for _, w := range warnings {
				slog.Warn("backend returned warning", "selector", selector, "warning", w)
			}
			return series, nil
		}
		lastErr = err

		switch {
		case isMalformed(err):
			return nil, errors.Wrap(errors.ErrCodeMalformedResponse,
				"backend payload could not be parsed", err)
		case isAuthFailure(err):
			// Retrying with the same credentials cannot succeed.
			return nil, errors.Wrap(errors.ErrCodeBackendUnreachable,
				"backend rejected credentials", err)
		case ctx.Err() != nil:
			return nil, errors.Wrap(errors.ErrCodeBackendUnreachable,
				"discovery canceled or timed out", ctx.Err())
		}

		if attempt < c.retries {
			discoveryRetries.Inc()
			slog.Debug("retrying backend query",
				"selector", selector,
				"attempt", attempt,
				"error", err.Error(),
			)
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return nil, errors.Wrap(errors.ErrCodeBackendUnreachable,
					"discovery canceled or timed out", ctx.Err())
			}
		}
	}

	return nil, errors.WrapWithContext(errors.ErrCodeBackendUnreachable,
		"no response within retry budget", lastErr,
		map[string]any{"attempts": c.retries})
}

// fetchMetadata pulls metric metadata (type, help) for the whole backend.
// Metadata is advisory: on failure the inventory falls back to name-based
// inference rather than failing discovery.
func (c *Client) fetchMetadata(ctx context.Context) map[string][]promv1.Metadata {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil
	}
	metadata, err := c.api.Metadata(ctx, "", "")
	if err != nil {
		slog.Debug("metadata unavailable, falling back to name inference", "error", err.Error())
		return nil
	}
	return metadata
}

// buildMetrics merges raw series and metadata into classified metrics, one
// per distinct metric name, with sorted observed label values.
func buildMetrics(series []model.LabelSet, metadata map[string][]promv1.Metadata) []*Metric {
	type accumulator struct {
		labels map[string]map[string]bool
	}
	acc := make(map[string]*accumulator)
	names := make([]string, 0)

	for _, ls := range series {
		name := string(ls[model.MetricNameLabel])
		if name == "" {
			continue
		}
		a, ok := acc[name]
		if !ok {
			a = &accumulator{labels: make(map[string]map[string]bool)}
			acc[name] = a
			names = append(names, name)
		}
		for ln, lv := range ls {
			if ln == model.MetricNameLabel {
				continue
			}
			values, ok := a.labels[string(ln)]
			if !ok {
				values = make(map[string]bool)
				a.labels[string(ln)] = values
			}
			values[string(lv)] = true
		}
	}

	sort.Strings(names)

	metrics := make([]*Metric, 0, len(names))
	for _, name := range names {
		a := acc[name]

		labels := make(map[string][]string, len(a.labels))
		for ln, values := range a.labels {
			sorted := make([]string, 0, len(values))
			for v := range values {
				sorted = append(sorted, v)
			}
			sort.Strings(sorted)
			labels[ln] = sorted
		}

		m := &Metric{
			Name:       name,
			Technology: classifier.TechnologyOf(name),
			Kind:       classifier.ValueKindOf(name),
			Labels:     labels,
		}

		// Backend metadata takes precedence over suffix inference.
		// Histogram series metadata is keyed by the base name.
		if md := metadataFor(name, metadata); md != nil {
			if kind, ok := classifier.ParseValueKind(string(md.Type)); ok {
				m.Kind = kind
			}
			m.Help = md.Help
		}

		metrics = append(metrics, m)
	}

	return metrics
}

// metadataFor finds metadata for a metric name, trying the exact name first
// and then the base name with histogram/summary suffixes stripped.
func metadataFor(name string, metadata map[string][]promv1.Metadata) *promv1.Metadata {
	if len(metadata) == 0 {
		return nil
	}
	if md, ok := metadata[name]; ok && len(md) > 0 {
		return &md[0]
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		base, found := strings.CutSuffix(name, suffix)
		if !found {
			continue
		}
		if md, ok := metadata[base]; ok && len(md) > 0 {
			return &md[0]
		}
	}
	return nil
}

// isAuthFailure reports whether the backend rejected our credentials.
func isAuthFailure(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "forbidden")
}

// isMalformed reports whether the backend responded but the payload could
// not be parsed.
func isMalformed(err error) bool {
	var apiErr *promv1.Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == promv1.ErrBadResponse
	}
	return false
}
