package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		metric   string
		wantTech Technology
		wantKind ValueKind
	}{
		{
			name:     "postgres exporter counter",
			metric:   "pg_stat_database_xact_commit_total",
			wantTech: TechnologyPostgres,
			wantKind: ValueKindCounter,
		},
		{
			name:     "postgres gauge without suffix",
			metric:   "pg_stat_database_numbackends",
			wantTech: TechnologyPostgres,
			wantKind: ValueKindUnspecified,
		},
		{
			name:     "redis memory gauge",
			metric:   "redis_memory_used_bytes",
			wantTech: TechnologyRedis,
			wantKind: ValueKindGauge,
		},
		{
			name:     "http histogram bucket",
			metric:   "http_request_duration_seconds_bucket",
			wantTech: TechnologyHTTP,
			wantKind: ValueKindHistogram,
		},
		{
			name:     "bucket wins over count suffix",
			metric:   "grpc_server_handling_seconds_bucket",
			wantTech: TechnologyGRPC,
			wantKind: ValueKindHistogram,
		},
		{
			name:     "histogram count component is counter",
			metric:   "http_request_duration_seconds_count",
			wantTech: TechnologyHTTP,
			wantKind: ValueKindCounter,
		},
		{
			name:     "embedded http name",
			metric:   "myapp_http_requests_total",
			wantTech: TechnologyHTTP,
			wantKind: ValueKindCounter,
		},
		{
			name:     "go runtime",
			metric:   "go_goroutines",
			wantTech: TechnologyGo,
			wantKind: ValueKindUnspecified,
		},
		{
			name:     "unclassified name still yields a pair",
			metric:   "weird_custom_thing",
			wantTech: TechnologyUnknown,
			wantKind: ValueKindUnspecified,
		},
		{
			name:     "empty name",
			metric:   "",
			wantTech: TechnologyUnknown,
			wantKind: ValueKindUnspecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tech, kind := Classify(tt.metric)
			assert.Equal(t, tt.wantTech, tech)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	// Same input must classify identically across repeated calls.
	for range 10 {
		tech, kind := Classify("kafka_consumer_lag_ratio")
		assert.Equal(t, TechnologyKafka, tech)
		assert.Equal(t, ValueKindGauge, kind)
	}
}

func TestParseTechnology(t *testing.T) {
	tech, ok := ParseTechnology("Postgres")
	assert.True(t, ok)
	assert.Equal(t, TechnologyPostgres, tech)

	tech, ok = ParseTechnology("cobol")
	assert.False(t, ok)
	assert.Equal(t, TechnologyUnknown, tech)
}

func TestParseValueKind(t *testing.T) {
	kind, ok := ParseValueKind("counter")
	assert.True(t, ok)
	assert.Equal(t, ValueKindCounter, kind)

	kind, ok = ParseValueKind("unknown")
	assert.False(t, ok)
	assert.Equal(t, ValueKindUnspecified, kind)
}

func TestSupportedTechnologiesAreValid(t *testing.T) {
	for _, tech := range SupportedTechnologies() {
		assert.True(t, tech.IsValid(), "technology %q", tech)
	}
}
