/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/semalabs/sema/pkg/defaults"
	"github.com/semalabs/sema/pkg/errors"
	"github.com/semalabs/sema/pkg/panel"
	"github.com/semalabs/sema/pkg/resolver"
	"github.com/semalabs/sema/pkg/servicespec"
)

// Resolver runs one resolution pass for a service. *resolver.Engine
// satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, req *resolver.Request) (*resolver.Resolution, error)
}

// Dashboard is the generated artifact for one service.
type Dashboard struct {
	// Service is the service identifier the dashboard belongs to.
	Service string `json:"service" yaml:"service"`

	// Title is the dashboard's display title.
	Title string `json:"title" yaml:"title"`

	// Panels holds one slot per requested intent, in intent order.
	Panels []panel.Panel `json:"panels" yaml:"panels"`
}

// Diagnostic records a degraded service in a run: the dashboard was still
// generated, but its backend could not deliver an inventory.
type Diagnostic struct {
	Service string `json:"service" yaml:"service"`
	Message string `json:"message" yaml:"message"`
}

// Report is the output of one generation run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string `json:"runId" yaml:"runId"`

	// GeneratedAt is when the run completed.
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`

	// Dashboards holds one artifact per declared service, in spec order.
	Dashboards []Dashboard `json:"dashboards" yaml:"dashboards"`

	// Diagnostics lists services whose backends were degraded during the
	// run. Empty on a fully healthy run.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Generator runs generation passes. Safe for concurrent use.
type Generator struct {
	res         Resolver
	concurrency int
}

// Option configures the generator.
type Option func(*Generator)

// WithConcurrency bounds how many services resolve in parallel.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// New creates a generator on top of a resolver.
func New(res Resolver, opts ...Option) (*Generator, error) {
	if res == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "resolver cannot be nil")
	}

	g := &Generator{
		res:         res,
		concurrency: defaults.GenerateConcurrency,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Run generates dashboards for every service in the spec. Services resolve
// concurrently, bounded by the configured concurrency; dashboard order in
// the report always follows spec order. A degraded backend produces a
// guidance-only dashboard plus a diagnostic, never a run failure; an invalid
// request fails the whole run.
func (g *Generator) Run(ctx context.Context, spec *servicespec.Spec) (*Report, error) {
	if spec == nil || len(spec.Services) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "spec declares no services")
	}

	start := time.Now()
	runID := uuid.NewString()
	slog.Info("generation run started",
		"run", runID, "services", len(spec.Services), "concurrency", g.concurrency)

	resolutions := make([]*resolver.Resolution, len(spec.Services))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i := range spec.Services {
		svc := spec.Services[i]
		eg.Go(func() error {
			res, err := g.res.Resolve(egCtx, &resolver.Request{
				Service:      svc.ID,
				Selector:     svc.Selector,
				Technologies: svc.Technologies,
				Overrides:    svc.Overrides,
			})
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeInternal,
					"resolution failed", err, map[string]any{"service": svc.ID})
			}
			resolutions[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Dashboards:  make([]Dashboard, 0, len(spec.Services)),
	}
	for i, res := range resolutions {
		report.Dashboards = append(report.Dashboards, Dashboard{
			Service: res.Service,
			Title:   dashboardTitle(res.Service),
			Panels:  panel.BuildAll(res),
		})
		if res.Warning != "" {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Service: spec.Services[i].ID,
				Message: res.Warning,
			})
		}
	}

	slog.Info("generation run complete",
		"run", runID,
		"dashboards", len(report.Dashboards),
		"diagnostics", len(report.Diagnostics),
		"duration", time.Since(start))
	return report, nil
}

func dashboardTitle(service string) string {
	return fmt.Sprintf("%s / service overview", service)
}
