/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package guidance

import (
	"fmt"

	"github.com/semalabs/sema/pkg/classifier"
	"github.com/semalabs/sema/pkg/intent"
)

// PanelSpec is a non-query placeholder spec for one unresolved intent.
type PanelSpec struct {
	// Title is the display title derived from the intent.
	Title string `json:"title" yaml:"title"`

	// Guidance is the intent's human-readable instrumentation advice.
	Guidance string `json:"guidance" yaml:"guidance"`

	// Exporter is the suggested exporter or instrumentation library that
	// would supply the missing metric; empty when none is derivable.
	Exporter string `json:"exporter,omitempty" yaml:"exporter,omitempty"`

	// Technology is the intent's owning technology tag.
	Technology classifier.Technology `json:"technology" yaml:"technology"`
}

// exporters maps technology tags to the conventional exporter or
// instrumentation library supplying that technology's metrics.
var exporters = map[classifier.Technology]string{
	classifier.TechnologyPostgres: "postgres_exporter",
	classifier.TechnologyMySQL:    "mysqld_exporter",
	classifier.TechnologyRedis:    "redis_exporter",
	classifier.TechnologyKafka:    "kafka_exporter",
	classifier.TechnologyRabbitMQ: "rabbitmq_prometheus plugin",
	classifier.TechnologyNginx:    "nginx-prometheus-exporter",
	classifier.TechnologyJVM:      "jmx_exporter",
	classifier.TechnologyGo:       "prometheus/client_golang",
	classifier.TechnologyHTTP:     "promhttp middleware",
	classifier.TechnologyGRPC:     "go-grpc-prometheus interceptors",
}

// ExporterFor returns the suggested exporter for a technology, or an empty
// string when none is known.
func ExporterFor(tech classifier.Technology) string {
	return exporters[tech]
}

// Synthesize produces the placeholder spec for an unresolved intent.
func Synthesize(in *intent.Intent) *PanelSpec {
	spec := &PanelSpec{
		Title:      in.DisplayTitle(),
		Guidance:   in.Guidance,
		Exporter:   ExporterFor(in.Technology),
		Technology: in.Technology,
	}
	if spec.Guidance == "" {
		// Every intent should carry a hint; fall back to something
		// actionable rather than an empty panel.
		spec.Guidance = fmt.Sprintf(
			"No metrics matching intent %q were found for this service.", in.Key)
	}
	return spec
}
