// Package panel turns resolved signals into renderer-ready dashboard
// panels. A bound signal becomes a query panel; an unresolved one becomes a
// text panel carrying instrumentation guidance, so a dashboard never renders
// an empty chart.
package panel
