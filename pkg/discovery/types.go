/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package discovery

import (
	"slices"
	"time"

	"github.com/semalabs/sema/pkg/classifier"
)

// Metric is one metric name observed on the live backend for a service.
type Metric struct {
	// Name is the metric name as emitted by the backend.
	Name string `json:"name" yaml:"name"`

	// Kind is the inferred value kind: backend metadata when available,
	// name-suffix inference otherwise.
	Kind classifier.ValueKind `json:"kind" yaml:"kind"`

	// Technology is the technology tag inferred from the name.
	Technology classifier.Technology `json:"technology" yaml:"technology"`

	// Help is the metadata help text, when the backend provides one.
	Help string `json:"help,omitempty" yaml:"help,omitempty"`

	// Labels maps observed label names to their sorted seen values.
	Labels map[string][]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// HasLabels reports whether the metric exposes every named label.
func (m *Metric) HasLabels(names []string) bool {
	for _, n := range names {
		if _, ok := m.Labels[n]; !ok {
			return false
		}
	}
	return true
}

// Result is the full metric inventory for one service at one point in time.
// A metric name appears at most once; construction enforces the invariant.
// Results are owned by the resolution call that requested them and are never
// shared across services.
type Result struct {
	// Selector is the label selector the inventory was scoped to.
	Selector string `json:"selector" yaml:"selector"`

	// CollectedAt is when the inventory was taken.
	CollectedAt time.Time `json:"collectedAt" yaml:"collectedAt"`

	// Metrics is the inventory ordered by metric name.
	Metrics []*Metric `json:"metrics" yaml:"metrics"`

	byName map[string]*Metric
	byTech map[classifier.Technology][]*Metric
	byKind map[classifier.ValueKind][]*Metric
}

// NewResult builds a Result from the given metrics, dropping duplicate names
// (first occurrence wins) and ordering the inventory by name so downstream
// output is deterministic.
func NewResult(selector string, metrics []*Metric) *Result {
	r := &Result{
		Selector:    selector,
		CollectedAt: time.Now().UTC(),
		Metrics:     make([]*Metric, 0, len(metrics)),
		byName:      make(map[string]*Metric, len(metrics)),
		byTech:      make(map[classifier.Technology][]*Metric),
		byKind:      make(map[classifier.ValueKind][]*Metric),
	}

	for _, m := range metrics {
		if m == nil || m.Name == "" {
			continue
		}
		if _, exists := r.byName[m.Name]; exists {
			continue
		}
		r.byName[m.Name] = m
		r.Metrics = append(r.Metrics, m)
	}

	slices.SortFunc(r.Metrics, func(a, b *Metric) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})

	for _, m := range r.Metrics {
		r.byTech[m.Technology] = append(r.byTech[m.Technology], m)
		r.byKind[m.Kind] = append(r.byKind[m.Kind], m)
	}

	return r
}

// EmptyResult returns a zero-metric Result for the selector. Callers treat
// it as "found nothing", which the resolution engine maps to guidance.
func EmptyResult(selector string) *Result {
	return NewResult(selector, nil)
}

// Lookup returns the metric with the given name, if present.
func (r *Result) Lookup(name string) (*Metric, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// ByTechnology returns the metrics tagged with the given technology, in
// name order.
func (r *Result) ByTechnology(tech classifier.Technology) []*Metric {
	return r.byTech[tech]
}

// ByKind returns the metrics of the given value kind, in name order.
func (r *Result) ByKind(kind classifier.ValueKind) []*Metric {
	return r.byKind[kind]
}

// Len returns the number of distinct metric names in the inventory.
func (r *Result) Len() int {
	return len(r.Metrics)
}

// IsEmpty reports whether the inventory contains no metrics.
func (r *Result) IsEmpty() bool {
	return len(r.Metrics) == 0
}
