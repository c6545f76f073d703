package observability

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/prometheus"
)

func TestObservability_RecordsIntoRegistry(t *testing.T) {
	reg := promclient.NewRegistry()
	obs, err := New("niche-workers-test", prometheus.WithRegisterer(reg))
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "rank-micro-niches", "completed")
	obs.RecordJobDuration(ctx, "rank-micro-niches", 12*time.Millisecond, "completed")
	obs.RecordNichesScored(ctx, 4, false)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "jobs.processed_total")
	assert.Contains(t, names, "jobs.duration_milliseconds")
	assert.Contains(t, names, "niches.scored_total")
}

func TestObservability_NoopIsSafe(t *testing.T) {
	var nilObs *Observability
	assert.NotPanics(t, func() {
		ctx := context.Background()
		Noop().RecordJobProcessed(ctx, "score-micro-niche", "failed")
		Noop().RecordNichesScored(ctx, 1, true)
		nilObs.RecordJobDuration(ctx, "score-micro-niche", time.Second, "failed")
		assert.NoError(t, nilObs.Shutdown(ctx))
	})
}
