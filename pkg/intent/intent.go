/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package intent

import (
	"fmt"
	"strings"

	"github.com/semalabs/sema/pkg/classifier"
)

// Key uniquely identifies an intent, e.g. "db.connections.used".
type Key string

// String returns the string representation of the key.
func (k Key) String() string {
	return string(k)
}

// SignalKind is the semantic kind of the signal an intent requests.
// It drives both the query shape and the downstream visualization choice.
type SignalKind string

const (
	// KindRateCounter is a monotonically increasing event counter,
	// rendered as a rate over time.
	KindRateCounter SignalKind = "rate_counter"
	// KindGaugeRatio is an instantaneous value or ratio.
	KindGaugeRatio SignalKind = "gauge_ratio"
	// KindLatencyHistogram is a latency distribution, rendered as a quantile.
	KindLatencyHistogram SignalKind = "latency_histogram"
	// KindSaturationPercent is a 0-100 saturation percentage.
	KindSaturationPercent SignalKind = "saturation_percent"
)

// String returns the string representation of the signal kind.
func (k SignalKind) String() string {
	return string(k)
}

// IsValid returns true if the signal kind is a supported value.
func (k SignalKind) IsValid() bool {
	switch k {
	case KindRateCounter, KindGaugeRatio, KindLatencyHistogram, KindSaturationPercent:
		return true
	default:
		return false
	}
}

// SupportedSignalKinds returns all supported signal kind values.
func SupportedSignalKinds() []SignalKind {
	return []SignalKind{
		KindRateCounter,
		KindGaugeRatio,
		KindLatencyHistogram,
		KindSaturationPercent,
	}
}

// Candidate is one concrete metric name an intent is willing to accept,
// together with the label names that series must carry.
type Candidate struct {
	// Metric is the exact metric name expected on the backend.
	Metric string `json:"metric" yaml:"metric"`

	// Labels lists label names a discovered series must expose for the
	// candidate to match. Empty means any label set is acceptable.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Synthesis declares how to derive the signal from other intents when no
// candidate resolves directly. Expr references Refs positionally via $1..$n;
// each placeholder expands to the referenced sub-intent's resolved query.
type Synthesis struct {
	Expr string `json:"expr" yaml:"expr"`
	Refs []Key  `json:"refs" yaml:"refs"`
}

// Intent is a named, technology-scoped request for a monitoring signal.
// Intents are registered once at warm-up and never mutated afterwards.
type Intent struct {
	// Key uniquely identifies the intent across all technologies.
	Key Key `json:"key" yaml:"key"`

	// Technology is the owning technology tag.
	Technology classifier.Technology `json:"technology" yaml:"technology"`

	// Kind is the semantic kind of the requested signal.
	Kind SignalKind `json:"kind" yaml:"kind"`

	// Title is the display title; derived from Key when empty.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Candidates are the acceptable metric expressions, most specific first.
	Candidates []Candidate `json:"candidates,omitempty" yaml:"candidates,omitempty"`

	// Synthesis optionally derives the signal from other intents.
	Synthesis *Synthesis `json:"synthesis,omitempty" yaml:"synthesis,omitempty"`

	// Guidance is the human-readable instrumentation advice used when the
	// intent cannot be resolved at all.
	Guidance string `json:"guidance,omitempty" yaml:"guidance,omitempty"`
}

// Validate checks the intent for structural problems. It is called during
// registration so catalog mistakes surface at warm-up, not mid-run.
func (i *Intent) Validate() error {
	if i == nil {
		return fmt.Errorf("intent cannot be nil")
	}
	if strings.TrimSpace(string(i.Key)) == "" {
		return fmt.Errorf("intent key cannot be empty")
	}
	if !i.Technology.IsValid() || i.Technology == classifier.TechnologyUnknown {
		return fmt.Errorf("intent %q: invalid technology %q", i.Key, i.Technology)
	}
	if !i.Kind.IsValid() {
		return fmt.Errorf("intent %q: invalid signal kind %q", i.Key, i.Kind)
	}
	if len(i.Candidates) == 0 && i.Synthesis == nil {
		return fmt.Errorf("intent %q: needs at least one candidate or a synthesis rule", i.Key)
	}
	for n, c := range i.Candidates {
		if strings.TrimSpace(c.Metric) == "" {
			return fmt.Errorf("intent %q: candidate %d has empty metric name", i.Key, n)
		}
	}
	if i.Synthesis != nil {
		if strings.TrimSpace(i.Synthesis.Expr) == "" {
			return fmt.Errorf("intent %q: synthesis expression cannot be empty", i.Key)
		}
		if len(i.Synthesis.Refs) == 0 {
			return fmt.Errorf("intent %q: synthesis rule references no intents", i.Key)
		}
		for n := range i.Synthesis.Refs {
			if !strings.Contains(i.Synthesis.Expr, fmt.Sprintf("$%d", n+1)) {
				return fmt.Errorf("intent %q: synthesis expression does not use ref $%d", i.Key, n+1)
			}
		}
	}
	return nil
}

// DisplayTitle returns the configured title, or one derived from the key
// segments when unset (e.g. "db.connections.used" -> "Db Connections Used").
func (i *Intent) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return TitleFromKey(i.Key)
}
