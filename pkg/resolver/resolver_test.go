package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semalabs/sema/pkg/classifier"
	"github.com/semalabs/sema/pkg/discovery"
	"github.com/semalabs/sema/pkg/errors"
	"github.com/semalabs/sema/pkg/intent"
)

type fakeDiscoverer struct {
	result *discovery.Result
	err    error
	calls  int
}

func (f *fakeDiscoverer) Discover(_ context.Context, selector string) (*discovery.Result, error) {
	f.calls++
	if f.err != nil {
		return discovery.EmptyResult(selector), f.err
	}
	return f.result, nil
}

func testMetric(name string, labels ...string) *discovery.Metric {
	m := &discovery.Metric{
		Name:   name,
		Labels: map[string][]string{},
	}
	for _, l := range labels {
		m.Labels[l] = []string{"test"}
	}
	return m
}

func testEngine(t *testing.T, disc Discoverer) *Engine {
	t.Helper()
	e, err := New(disc)
	require.NoError(t, err)
	return e
}

func postgresRequest(service string) *Request {
	return &Request{
		Service:      service,
		Selector:     `job="` + service + `"`,
		Technologies: []classifier.Technology{classifier.TechnologyPostgres},
	}
}

func signalFor(t *testing.T, res *Resolution, key intent.Key) Signal {
	t.Helper()
	for _, s := range res.Signals {
		if s.Intent == key {
			return s
		}
	}
	t.Fatalf("no signal for intent %q", key)
	return Signal{}
}

func TestResolveBindsSecondCandidate(t *testing.T) {
	// The preferred candidate is absent; the fallback exists and must bind
	// directly, not fall through to guidance.
	disc := &fakeDiscoverer{
		result: discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
			testMetric("pg_stat_database_numbackends", "datname"),
		}),
	}
	e := testEngine(t, disc)

	res, err := e.Resolve(context.Background(), postgresRequest("orders-db"))
	require.NoError(t, err)
	assert.Empty(t, res.Warning)

	sig := signalFor(t, res, "db.connections.used")
	assert.Equal(t, SourceDirect, sig.Source)
	assert.Equal(t, "pg_stat_database_numbackends", sig.Metric)
	assert.Equal(t, `sum(pg_stat_database_numbackends{job="orders-db"})`, sig.Query)
	assert.Empty(t, sig.Guidance)
}

func TestResolveEnforcesCandidateLabels(t *testing.T) {
	// pg_stat_activity_count requires the datname label; a series without it
	// must not match even though the name does.
	disc := &fakeDiscoverer{
		result: discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
			testMetric("pg_stat_activity_count"),
			testMetric("pg_stat_database_numbackends"),
		}),
	}
	e := testEngine(t, disc)

	res, err := e.Resolve(context.Background(), postgresRequest("orders-db"))
	require.NoError(t, err)

	sig := signalFor(t, res, "db.connections.used")
	assert.Equal(t, SourceDirect, sig.Source)
	assert.Equal(t, "pg_stat_database_numbackends", sig.Metric)
}

func TestResolveNoCandidateLandsOnGuidance(t *testing.T) {
	// Neither connection candidate exists; the signal must terminate on
	// guidance naming the PostgreSQL exporter.
	disc := &fakeDiscoverer{
		result: discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
			testMetric("node_cpu_seconds_total"),
		}),
	}
	e := testEngine(t, disc)

	res, err := e.Resolve(context.Background(), postgresRequest("orders-db"))
	require.NoError(t, err)

	sig := signalFor(t, res, "db.connections.used")
	assert.Equal(t, SourceUnresolved, sig.Source)
	assert.Empty(t, sig.Query)
	assert.Contains(t, sig.Guidance, "PostgreSQL")
	assert.Equal(t, "postgres_exporter", sig.Exporter)
}

func TestResolveSynthesizesRatio(t *testing.T) {
	disc := &fakeDiscoverer{
		result: discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
			testMetric("pg_stat_database_blks_hit"),
			testMetric("pg_stat_database_blks_read"),
		}),
	}
	e := testEngine(t, disc)

	res, err := e.Resolve(context.Background(), postgresRequest("orders-db"))
	require.NoError(t, err)

	sig := signalFor(t, res, "db.cache_hit_ratio")
	require.Equal(t, SourceSynthesized, sig.Source)
	require.Len(t, sig.Components, 2)

	hits := `sum(rate(pg_stat_database_blks_hit{job="orders-db"}[5m]))`
	misses := `sum(rate(pg_stat_database_blks_read{job="orders-db"}[5m]))`
	assert.Equal(t, hits, sig.Components[0])
	assert.Equal(t, misses, sig.Components[1])
	assert.Equal(t, "100 * ("+hits+") / (("+hits+") + ("+misses+"))", sig.Query)
}

func TestResolveSynthesisFailsClosed(t *testing.T) {
	// One of the two synthesis inputs is missing; the ratio must land on
	// guidance rather than a partial expression.
	disc := &fakeDiscoverer{
		result: discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
			testMetric("pg_stat_database_blks_hit"),
		}),
	}
	e := testEngine(t, disc)

	res, err := e.Resolve(context.Background(), postgresRequest("orders-db"))
	require.NoError(t, err)

	sig := signalFor(t, res, "db.cache_hit_ratio")
	assert.Equal(t, SourceUnresolved, sig.Source)
	assert.Empty(t, sig.Query)
	assert.Empty(t, sig.Components)
	assert.NotEmpty(t, sig.Guidance)
	assert.Equal(t, "postgres_exporter", sig.Exporter)
}

func TestResolveOverrideTrustedVerbatim(t *testing.T) {
	// Overrides bypass discovery entirely; the named metric is not in the
	// inventory and must still bind.
	disc := &fakeDiscoverer{
		result: discovery.EmptyResult(`job="orders-db"`),
	}
	e := testEngine(t, disc)

	req := postgresRequest("orders-db")
	req.Overrides = map[intent.Key]string{
		"db.connections.used": "custom_pg_connections",
	}

	res, err := e.Resolve(context.Background(), req)
	require.NoError(t, err)

	sig := signalFor(t, res, "db.connections.used")
	assert.Equal(t, SourceDirect, sig.Source)
	assert.Equal(t, "custom_pg_connections", sig.Metric)
	assert.Equal(t, `sum(custom_pg_connections{job="orders-db"})`, sig.Query)
}

func TestResolveOverrideAppliesInsideSynthesis(t *testing.T) {
	// The miss counter is absent from the inventory but overridden; the
	// synthesis must pick the override up for the referenced sub-intent.
	disc := &fakeDiscoverer{
		result: discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
			testMetric("pg_stat_database_blks_hit"),
		}),
	}
	e := testEngine(t, disc)

	req := postgresRequest("orders-db")
	req.Overrides = map[intent.Key]string{
		"db.cache.misses": "my_blks_read",
	}

	res, err := e.Resolve(context.Background(), req)
	require.NoError(t, err)

	sig := signalFor(t, res, "db.cache_hit_ratio")
	require.Equal(t, SourceSynthesized, sig.Source)
	assert.Contains(t, sig.Query, "my_blks_read")
}

func TestResolveDegradesToGuidanceOnBackendFailure(t *testing.T) {
	disc := &fakeDiscoverer{
		err: errors.New(errors.ErrCodeBackendUnreachable, "connection refused"),
	}
	e := testEngine(t, disc)

	res, err := e.Resolve(context.Background(), postgresRequest("orders-db"))
	require.NoError(t, err)

	assert.Contains(t, res.Warning, "connection refused")
	assert.Zero(t, res.InventorySize)
	require.NotEmpty(t, res.Signals)
	for _, sig := range res.Signals {
		assert.Equal(t, SourceUnresolved, sig.Source, "intent %s", sig.Intent)
		assert.NotEmpty(t, sig.Guidance, "intent %s", sig.Intent)
	}
}

func TestResolveDeterministic(t *testing.T) {
	inventory := discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
		testMetric("pg_stat_database_numbackends"),
		testMetric("pg_stat_database_blks_hit"),
		testMetric("pg_stat_database_blks_read"),
	})

	first := resolveOnce(t, inventory)
	second := resolveOnce(t, inventory)

	assert.Equal(t, first.Signals, second.Signals)
	assert.Equal(t, first.InventorySize, second.InventorySize)
}

func resolveOnce(t *testing.T, inventory *discovery.Result) *Resolution {
	t.Helper()
	e := testEngine(t, &fakeDiscoverer{result: inventory})
	res, err := e.Resolve(context.Background(), postgresRequest("orders-db"))
	require.NoError(t, err)
	return res
}

func TestResolveCachesPerService(t *testing.T) {
	disc := &fakeDiscoverer{
		result: discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
			testMetric("pg_stat_database_numbackends"),
		}),
	}
	e := testEngine(t, disc)
	req := postgresRequest("orders-db")

	first, err := e.Resolve(context.Background(), req)
	require.NoError(t, err)
	second, err := e.Resolve(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, disc.calls, "second resolve must be served from cache")
	assert.Same(t, first, second)

	e.Invalidate("orders-db")
	_, err = e.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, disc.calls, "invalidation must force rediscovery")
}

func TestResolveCacheIsolatesServices(t *testing.T) {
	disc := &fakeDiscoverer{
		result: discovery.NewResult("", []*discovery.Metric{
			testMetric("pg_stat_database_numbackends"),
		}),
	}
	e := testEngine(t, disc)

	_, err := e.Resolve(context.Background(), postgresRequest("svc-a"))
	require.NoError(t, err)
	_, err = e.Resolve(context.Background(), postgresRequest("svc-b"))
	require.NoError(t, err)
	assert.Equal(t, 2, disc.calls)

	// Invalidating one service must not evict the other.
	e.Invalidate("svc-a")
	_, err = e.Resolve(context.Background(), postgresRequest("svc-b"))
	require.NoError(t, err)
	assert.Equal(t, 2, disc.calls)

	_, err = e.Resolve(context.Background(), postgresRequest("svc-a"))
	require.NoError(t, err)
	assert.Equal(t, 3, disc.calls)
}

func TestResolveExplicitIntentList(t *testing.T) {
	disc := &fakeDiscoverer{
		result: discovery.NewResult(`job="orders-db"`, []*discovery.Metric{
			testMetric("pg_stat_database_blks_hit"),
		}),
	}
	e := testEngine(t, disc)

	req := &Request{
		Service:  "orders-db",
		Selector: `job="orders-db"`,
		Intents:  []intent.Key{"db.cache.hits", "db.connections.used"},
	}

	res, err := e.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Signals, 2)
	assert.Equal(t, intent.Key("db.cache.hits"), res.Signals[0].Intent)
	assert.Equal(t, intent.Key("db.connections.used"), res.Signals[1].Intent)
}

func TestResolveUnknownIntentKey(t *testing.T) {
	e := testEngine(t, &fakeDiscoverer{result: discovery.EmptyResult("")})

	req := &Request{
		Service:  "orders-db",
		Selector: `job="orders-db"`,
		Intents:  []intent.Key{"no.such.intent"},
	}

	_, err := e.Resolve(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"empty service", &Request{Selector: "a=b", Technologies: []classifier.Technology{classifier.TechnologyPostgres}}},
		{"empty selector", &Request{Service: "svc", Technologies: []classifier.Technology{classifier.TechnologyPostgres}}},
		{"no scope", &Request{Service: "svc", Selector: "a=b"}},
		{"invalid technology", &Request{Service: "svc", Selector: "a=b", Technologies: []classifier.Technology{"cobol"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidSpec))
		})
	}
}

func TestNewRequiresDiscoverer(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestQueryShapes(t *testing.T) {
	tests := []struct {
		kind intent.SignalKind
		want string
	}{
		{intent.KindRateCounter, `sum(rate(m{job="x"}[5m]))`},
		{intent.KindGaugeRatio, `sum(m{job="x"})`},
		{intent.KindLatencyHistogram, `histogram_quantile(0.95, sum by (le) (rate(m{job="x"}[5m])))`},
		{intent.KindSaturationPercent, `100 * sum(m{job="x"})`},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.Equal(t, tc.want, queryFor(tc.kind, "m", `job="x"`))
		})
	}
}

func TestScopedSelectorStripsBraces(t *testing.T) {
	assert.Equal(t, `job="x"`, scopedSelector(`{job="x"}`))
	assert.Equal(t, `job="x"`, scopedSelector(` job="x" `))
}

func TestExpandExprParenthesizes(t *testing.T) {
	got := expandExpr("$1 / $2", []string{"a", "b"})
	assert.Equal(t, "(a) / (b)", got)
}
