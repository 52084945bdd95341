/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package resolver

import (
	"fmt"
	"strings"

	"github.com/semalabs/sema/pkg/intent"
)

// rateWindow is the range window used for rate() expressions. Five minutes
// tracks the conventional 4x-scrape-interval rule for 15s scrapes.
const rateWindow = "5m"

// queryFor builds a self-contained query expression for one bound metric.
// The selector is embedded so the expression stays re-evaluable outside the
// panel context (alert rules, recording rules, ad-hoc exploration).
func queryFor(kind intent.SignalKind, metric, selector string) string {
	sel := scopedSelector(selector)
	switch kind {
	case intent.KindRateCounter:
		return fmt.Sprintf("sum(rate(%s{%s}[%s]))", metric, sel, rateWindow)
	case intent.KindLatencyHistogram:
		return fmt.Sprintf("histogram_quantile(0.95, sum by (le) (rate(%s{%s}[%s])))",
			metric, sel, rateWindow)
	case intent.KindSaturationPercent:
		return fmt.Sprintf("100 * sum(%s{%s})", metric, sel)
	default:
		// gauge_ratio and anything future-unknown: plain scoped sum.
		return fmt.Sprintf("sum(%s{%s})", metric, sel)
	}
}

// expandExpr substitutes $1..$n placeholders in a synthesis expression with
// the resolved sub-queries, each parenthesized so operator precedence in the
// template cannot leak into the sub-expressions. Substitution runs from the
// highest index down so $12 is never clobbered by $1.
func expandExpr(expr string, components []string) string {
	out := expr
	for i := len(components) - 1; i >= 0; i-- {
		placeholder := fmt.Sprintf("$%d", i+1)
		out = strings.ReplaceAll(out, placeholder, "("+components[i]+")")
	}
	return out
}

// scopedSelector normalizes a selector for embedding inside a metric's label
// matcher braces. Callers may pass either a bare matcher list or one already
// wrapped in braces.
func scopedSelector(selector string) string {
	s := strings.TrimSpace(selector)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	return strings.TrimSpace(s)
}
