package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_SpansAndCounters(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	reader := metric.NewManualReader()

	obs := New("solar-test", WithSpanProcessor(recorder), WithMetricReader(reader))
	defer obs.Shutdown()

	ctx := context.Background()
	_, span := obs.StartSpan(ctx, "calculate-solar-savings.execute", attribute.String("state", "maharashtra"))
	span.End()

	obs.RecordCalculation(ctx, "city", 3)
	obs.RecordJobProcessed(ctx, "calculate-solar-savings", "completed")
	obs.RecordJobDuration(ctx, "calculate-solar-savings", 12*time.Millisecond, "completed")
	obs.RecordQuoteRatio(ctx, "fair", 1.1)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "calculate-solar-savings.execute", ended[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}
	assert.True(t, names["solar.calculations"])
	assert.True(t, names["jobs.processed"])
	assert.True(t, names["solar.quote.price_ratio"])
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	ctx, span := obs.StartSpan(context.Background(), "noop")
	span.End()
	obs.RecordCalculation(ctx, "national", 2)
	obs.RecordJobProcessed(ctx, "x", "failed")
	obs.Shutdown()
}
