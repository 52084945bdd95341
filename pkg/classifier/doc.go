// Package classifier groups raw metric names into technology and value-kind
// buckets using ordered pattern rules.
//
// Classification is a pure function over the metric name: an ordered list of
// prefix/substring rules assigns the technology tag, and a separate ordered
// list of suffix rules infers the value kind (e.g. "_total" is a counter,
// "_bucket" a histogram component). The first matching rule wins in each
// list. Names that match no rule classify as TechnologyUnknown and
// ValueKindUnspecified rather than failing, so unclassified metrics remain
// visible downstream instead of being silently dropped.
package classifier
