/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/semalabs/sema/pkg/classifier"
	"github.com/semalabs/sema/pkg/errors"
	"github.com/semalabs/sema/pkg/intent"
)

// Source identifies how a signal was bound.
type Source string

const (
	// SourceDirect means the signal is bound to a real discovered metric
	// (or a trusted operator override).
	SourceDirect Source = "DIRECT"
	// SourceSynthesized means the signal composes two or more
	// directly-resolved sub-signals.
	SourceSynthesized Source = "SYNTHESIZED"
	// SourceUnresolved means nothing usable exists; the signal carries
	// guidance instead of a query.
	SourceUnresolved Source = "UNRESOLVED"
)

// String returns the string representation of the source.
func (s Source) String() string {
	return string(s)
}

// Signal is the engine's output for one intent against one inventory.
// Exactly one of three shapes holds: DIRECT (Query and Metric set),
// SYNTHESIZED (Query and Components set), or UNRESOLVED (Guidance set,
// Query empty). Never partially populated.
type Signal struct {
	// Intent is the key of the intent this signal answers.
	Intent intent.Key `json:"intent" yaml:"intent"`

	// Title is the display title derived from the intent.
	Title string `json:"title" yaml:"title"`

	// Kind is the intent's semantic signal kind.
	Kind intent.SignalKind `json:"kind" yaml:"kind"`

	// Source records how the signal was bound.
	Source Source `json:"source" yaml:"source"`

	// Query is a self-contained query expression scoped to the service,
	// re-evaluable outside the panel context. Empty when UNRESOLVED.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`

	// Metric is the bound metric name for DIRECT signals.
	Metric string `json:"metric,omitempty" yaml:"metric,omitempty"`

	// Components are the sub-signal queries for SYNTHESIZED signals, in
	// synthesis rule reference order.
	Components []string `json:"components,omitempty" yaml:"components,omitempty"`

	// Guidance is the instrumentation advice for UNRESOLVED signals.
	Guidance string `json:"guidance,omitempty" yaml:"guidance,omitempty"`

	// Exporter is the suggested missing exporter for UNRESOLVED signals,
	// when derivable from the intent's technology.
	Exporter string `json:"exporter,omitempty" yaml:"exporter,omitempty"`
}

// IsResolved reports whether the signal is bound to a query.
func (s *Signal) IsResolved() bool {
	return s.Source == SourceDirect || s.Source == SourceSynthesized
}

// Request scopes one resolution pass to a single service.
type Request struct {
	// Service is the stable service identifier used as the cache key.
	Service string

	// Selector is the opaque label-selector string scoping discovery and
	// all emitted query expressions to the service.
	Selector string

	// Technologies selects which technologies' intents to resolve, in
	// declaration order. Ignored when Intents is set.
	Technologies []classifier.Technology

	// Intents optionally names the exact intents to resolve, in order.
	Intents []intent.Key

	// Overrides maps intent keys to operator-supplied metric names that
	// bypass discovery entirely.
	Overrides map[intent.Key]string
}

// Validate checks the request for structural problems.
func (r *Request) Validate() error {
	if r == nil {
		return errors.New(errors.ErrCodeInvalidSpec, "request cannot be nil")
	}
	if strings.TrimSpace(r.Service) == "" {
		return errors.New(errors.ErrCodeInvalidSpec, "service identifier cannot be empty")
	}
	if strings.TrimSpace(r.Selector) == "" {
		return errors.NewWithContext(errors.ErrCodeInvalidSpec,
			"service selector cannot be empty",
			map[string]any{"service": r.Service})
	}
	if len(r.Technologies) == 0 && len(r.Intents) == 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidSpec,
			"request names no technologies and no intents",
			map[string]any{"service": r.Service})
	}
	for _, tech := range r.Technologies {
		if !tech.IsValid() {
			return errors.NewWithContext(errors.ErrCodeInvalidSpec,
				fmt.Sprintf("invalid technology %q", tech),
				map[string]any{"service": r.Service})
		}
	}
	return nil
}

// Resolution is the output of one resolution pass for one service.
type Resolution struct {
	// Service is the service identifier the pass was scoped to.
	Service string `json:"service" yaml:"service"`

	// Selector is the label selector used for discovery.
	Selector string `json:"selector" yaml:"selector"`

	// ResolvedAt is when the pass completed.
	ResolvedAt time.Time `json:"resolvedAt" yaml:"resolvedAt"`

	// InventorySize is the number of distinct metrics discovered.
	InventorySize int `json:"inventorySize" yaml:"inventorySize"`

	// Signals holds one entry per requested intent, in request order.
	Signals []Signal `json:"signals" yaml:"signals"`

	// Warning carries the discovery failure reason when the backend was
	// unreachable or returned a malformed response; surfaced once per service, not per
	// intent. Empty on healthy discovery.
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`
}
