package generator

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semalabs/sema/pkg/classifier"
	"github.com/semalabs/sema/pkg/errors"
	"github.com/semalabs/sema/pkg/intent"
	"github.com/semalabs/sema/pkg/resolver"
	"github.com/semalabs/sema/pkg/servicespec"
)

type fakeResolver struct {
	mu       sync.Mutex
	services []string
	warn     map[string]string
	fail     map[string]error
}

func (f *fakeResolver) Resolve(_ context.Context, req *resolver.Request) (*resolver.Resolution, error) {
	f.mu.Lock()
	f.services = append(f.services, req.Service)
	f.mu.Unlock()

	if err, ok := f.fail[req.Service]; ok {
		return nil, err
	}
	return &resolver.Resolution{
		Service:  req.Service,
		Selector: req.Selector,
		Warning:  f.warn[req.Service],
		Signals: []resolver.Signal{
			{
				Intent: "db.connections.used",
				Title:  "Database Connections In Use",
				Kind:   intent.KindGaugeRatio,
				Source: resolver.SourceDirect,
				Metric: "pg_stat_database_numbackends",
				Query:  "sum(pg_stat_database_numbackends{})",
			},
		},
	}, nil
}

func testSpec(ids ...string) *servicespec.Spec {
	spec := &servicespec.Spec{APIVersion: "v1"}
	for _, id := range ids {
		spec.Services = append(spec.Services, servicespec.Service{
			ID:           id,
			Selector:     `job="` + id + `"`,
			Technologies: []classifier.Technology{classifier.TechnologyPostgres},
		})
	}
	return spec
}

func TestRunProducesDashboardPerService(t *testing.T) {
	g, err := New(&fakeResolver{})
	require.NoError(t, err)

	report, err := g.Run(context.Background(), testSpec("svc-a", "svc-b", "svc-c"))
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Dashboards, 3)
	// Order follows the spec, regardless of resolution concurrency.
	assert.Equal(t, "svc-a", report.Dashboards[0].Service)
	assert.Equal(t, "svc-b", report.Dashboards[1].Service)
	assert.Equal(t, "svc-c", report.Dashboards[2].Service)
	assert.Empty(t, report.Diagnostics)

	for _, d := range report.Dashboards {
		assert.NotEmpty(t, d.Title)
		assert.Len(t, d.Panels, 1)
	}
}

func TestRunCollectsDiagnostics(t *testing.T) {
	g, err := New(&fakeResolver{
		warn: map[string]string{"svc-b": "backend unreachable: connection refused"},
	})
	require.NoError(t, err)

	report, err := g.Run(context.Background(), testSpec("svc-a", "svc-b"))
	require.NoError(t, err)

	assert.Len(t, report.Dashboards, 2)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "svc-b", report.Diagnostics[0].Service)
	assert.Contains(t, report.Diagnostics[0].Message, "connection refused")
}

func TestRunFailsOnResolverError(t *testing.T) {
	g, err := New(&fakeResolver{
		fail: map[string]error{
			"svc-b": errors.New(errors.ErrCodeNotFound, "intent not found"),
		},
	})
	require.NoError(t, err)

	_, err = g.Run(context.Background(), testSpec("svc-a", "svc-b"))
	require.Error(t, err)
}

func TestRunRejectsEmptySpec(t *testing.T) {
	g, err := New(&fakeResolver{})
	require.NoError(t, err)

	_, err = g.Run(context.Background(), &servicespec.Spec{APIVersion: "v1"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidSpec))
}

func TestRunBoundedConcurrency(t *testing.T) {
	f := &fakeResolver{}
	g, err := New(f, WithConcurrency(2))
	require.NoError(t, err)

	report, err := g.Run(context.Background(), testSpec("a", "b", "c", "d", "e"))
	require.NoError(t, err)
	assert.Len(t, report.Dashboards, 5)
	assert.Len(t, f.services, 5)
}

func TestNewRequiresResolver(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}
