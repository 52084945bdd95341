/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package panel

import (
	"fmt"

	"github.com/semalabs/sema/pkg/intent"
	"github.com/semalabs/sema/pkg/resolver"
)

// Kind is the visualization type of a panel.
type Kind string

const (
	// KindTimeSeries renders a query over time.
	KindTimeSeries Kind = "timeseries"
	// KindStat renders a query's latest value.
	KindStat Kind = "stat"
	// KindText renders static markdown, used for guidance placeholders.
	KindText Kind = "text"
)

// String returns the string representation of the panel kind.
func (k Kind) String() string {
	return string(k)
}

// Panel is one renderer-ready dashboard slot. Query panels carry an
// expression and unit; text panels carry markdown content instead.
type Panel struct {
	// Title is the panel's display title.
	Title string `json:"title" yaml:"title"`

	// Kind selects the visualization.
	Kind Kind `json:"kind" yaml:"kind"`

	// Intent is the key of the intent the panel answers.
	Intent intent.Key `json:"intent" yaml:"intent"`

	// Source records how the underlying signal was bound.
	Source resolver.Source `json:"source" yaml:"source"`

	// Query is the panel's expression. Empty for text panels.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`

	// Unit hints the renderer's axis formatting. Empty for text panels.
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	// Content is the markdown body of a text panel.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// IsPlaceholder reports whether the panel carries guidance instead of data.
func (p *Panel) IsPlaceholder() bool {
	return p.Kind == KindText
}

// Build converts one resolved signal into a panel. Unresolved signals yield
// a text panel with the signal's guidance so every requested intent keeps a
// visible slot on the dashboard.
func Build(sig resolver.Signal) Panel {
	p := Panel{
		Title:  sig.Title,
		Intent: sig.Intent,
		Source: sig.Source,
	}

	if !sig.IsResolved() {
		p.Kind = KindText
		p.Content = guidanceContent(sig)
		return p
	}

	p.Query = sig.Query
	p.Kind, p.Unit = presentation(sig.Kind)
	return p
}

// BuildAll converts a resolution's signal sequence, preserving order.
func BuildAll(res *resolver.Resolution) []Panel {
	panels := make([]Panel, 0, len(res.Signals))
	for _, sig := range res.Signals {
		panels = append(panels, Build(sig))
	}
	return panels
}

// presentation maps a signal kind to its visualization and unit.
func presentation(kind intent.SignalKind) (Kind, string) {
	switch kind {
	case intent.KindRateCounter:
		return KindTimeSeries, "ops"
	case intent.KindLatencyHistogram:
		return KindTimeSeries, "s"
	case intent.KindSaturationPercent:
		return KindStat, "percent"
	default:
		return KindStat, "short"
	}
}

// guidanceContent renders the placeholder markdown body.
func guidanceContent(sig resolver.Signal) string {
	content := sig.Guidance
	if sig.Exporter != "" {
		content = fmt.Sprintf("%s\n\nSuggested exporter: `%s`", content, sig.Exporter)
	}
	return content
}
