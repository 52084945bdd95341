/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package classifier

import "strings"

// Technology represents the technology a metric is attributed to.
type Technology string

const (
	TechnologyUnknown  Technology = "unknown"
	TechnologyPostgres Technology = "postgres"
	TechnologyMySQL    Technology = "mysql"
	TechnologyRedis    Technology = "redis"
	TechnologyKafka    Technology = "kafka"
	TechnologyRabbitMQ Technology = "rabbitmq"
	TechnologyNginx    Technology = "nginx"
	TechnologyHTTP     Technology = "http"
	TechnologyGRPC     Technology = "grpc"
	TechnologyGo       Technology = "go"
	TechnologyJVM      Technology = "jvm"
)

// String returns the string representation of the technology.
func (t Technology) String() string {
	return string(t)
}

// IsValid returns true if the technology is a supported value.
func (t Technology) IsValid() bool {
	switch t {
	case TechnologyUnknown, TechnologyPostgres, TechnologyMySQL, TechnologyRedis,
		TechnologyKafka, TechnologyRabbitMQ, TechnologyNginx, TechnologyHTTP,
		TechnologyGRPC, TechnologyGo, TechnologyJVM:
		return true
	default:
		return false
	}
}

// SupportedTechnologies returns all supported technology values.
func SupportedTechnologies() []Technology {
	return []Technology{
		TechnologyPostgres,
		TechnologyMySQL,
		TechnologyRedis,
		TechnologyKafka,
		TechnologyRabbitMQ,
		TechnologyNginx,
		TechnologyHTTP,
		TechnologyGRPC,
		TechnologyGo,
		TechnologyJVM,
	}
}

// ParseTechnology parses a string into a Technology.
// Returns the Technology and true if parsing succeeds, or TechnologyUnknown
// and false if the string is not a supported value.
func ParseTechnology(s string) (Technology, bool) {
	t := Technology(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return TechnologyUnknown, false
	}
	return t, true
}

// ValueKind represents the value semantics of a metric series.
type ValueKind string

const (
	ValueKindUnspecified ValueKind = "unspecified"
	ValueKindCounter     ValueKind = "counter"
	ValueKindGauge       ValueKind = "gauge"
	ValueKindHistogram   ValueKind = "histogram"
	ValueKindSummary     ValueKind = "summary"
)

// String returns the string representation of the value kind.
func (k ValueKind) String() string {
	return string(k)
}

// IsValid returns true if the value kind is a supported value.
func (k ValueKind) IsValid() bool {
	switch k {
	case ValueKindUnspecified, ValueKindCounter, ValueKindGauge,
		ValueKindHistogram, ValueKindSummary:
		return true
	default:
		return false
	}
}

// ParseValueKind parses a string (e.g. a Prometheus metadata type) into a
// ValueKind. Unrecognized values parse as ValueKindUnspecified and false.
func ParseValueKind(s string) (ValueKind, bool) {
	k := ValueKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() || k == ValueKindUnspecified {
		return ValueKindUnspecified, false
	}
	return k, true
}

// matchKind identifies how a rule pattern is applied to a metric name.
type matchKind int

const (
	matchPrefix matchKind = iota
	matchContains
	matchSuffix
)

// rule is a single ordered classification rule.
type rule[T ~string] struct {
	pattern string
	kind    matchKind
	value   T
}

func (r rule[T]) matches(name string) bool {
	switch r.kind {
	case matchPrefix:
		return strings.HasPrefix(name, r.pattern)
	case matchContains:
		return strings.Contains(name, r.pattern)
	case matchSuffix:
		return strings.HasSuffix(name, r.pattern)
	default:
		return false
	}
}

// technologyRules is the ordered technology tagging list. Order matters:
// more specific exporter prefixes come before generic instrumentation ones.
var technologyRules = []rule[Technology]{
	{"pg_", matchPrefix, TechnologyPostgres},
	{"postgres_", matchPrefix, TechnologyPostgres},
	{"postgresql_", matchPrefix, TechnologyPostgres},
	{"mysql_", matchPrefix, TechnologyMySQL},
	{"redis_", matchPrefix, TechnologyRedis},
	{"kafka_", matchPrefix, TechnologyKafka},
	{"rabbitmq_", matchPrefix, TechnologyRabbitMQ},
	{"nginx_", matchPrefix, TechnologyNginx},
	{"jvm_", matchPrefix, TechnologyJVM},
	{"grpc_", matchPrefix, TechnologyGRPC},
	{"go_", matchPrefix, TechnologyGo},
	{"process_", matchPrefix, TechnologyGo},
	{"http_", matchPrefix, TechnologyHTTP},
	{"_http_", matchContains, TechnologyHTTP},
	{"_grpc_", matchContains, TechnologyGRPC},
}

// valueKindRules is the ordered value-kind inference list based on metric
// naming conventions. "_bucket" is checked before the generic counter
// suffixes since histogram components carry counter-like suffixes too.
var valueKindRules = []rule[ValueKind]{
	{"_bucket", matchSuffix, ValueKindHistogram},
	{"_total", matchSuffix, ValueKindCounter},
	{"_sum", matchSuffix, ValueKindCounter},
	{"_count", matchSuffix, ValueKindCounter},
	{"_bytes", matchSuffix, ValueKindGauge},
	{"_ratio", matchSuffix, ValueKindGauge},
	{"_percent", matchSuffix, ValueKindGauge},
	{"_seconds", matchSuffix, ValueKindGauge},
	{"_info", matchSuffix, ValueKindGauge},
	{"_current", matchSuffix, ValueKindGauge},
	{"_size", matchSuffix, ValueKindGauge},
	{"_usage", matchSuffix, ValueKindGauge},
}

// Classify returns the technology and value kind inferred from the metric
// name. It is total: every input yields a pair, defaulting to
// TechnologyUnknown and ValueKindUnspecified when no rule matches.
func Classify(name string) (Technology, ValueKind) {
	return TechnologyOf(name), ValueKindOf(name)
}

// TechnologyOf returns the technology tag for the metric name, first
// matching rule wins.
func TechnologyOf(name string) Technology {
	for _, r := range technologyRules {
		if r.matches(name) {
			return r.value
		}
	}
	return TechnologyUnknown
}

// ValueKindOf returns the value kind inferred from the metric name suffix,
// first matching rule wins.
func ValueKindOf(name string) ValueKind {
	for _, r := range valueKindRules {
		if r.matches(name) {
			return r.value
		}
	}
	return ValueKindUnspecified
}
