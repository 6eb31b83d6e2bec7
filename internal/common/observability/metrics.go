package observability

import (
	"context"
	"time"

	"solar-workers/internal/common/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "solar-workers"

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	calcCounter    otelmetric.Int64Counter
	quoteRatio     otelmetric.Float64Histogram
}

// Option customises the providers built by New.
type Option func(*options)

type options struct {
	spanProcessors []sdktrace.SpanProcessor
	metricReaders  []metric.Reader
	logger         logger.Logger
}

// WithSpanProcessor registers an additional span processor (exporters, test recorders).
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.spanProcessors = append(o.spanProcessors, sp) }
}

// WithLogger reports provider setup failures to log.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithMetricReader registers an additional metric reader.
func WithMetricReader(r metric.Reader) Option {
	return func(o *options) { o.metricReaders = append(o.metricReaders, r) }
}

func New(serviceName string, opts ...Option) *Observability {
	o := options{logger: logger.NewNoOpLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	tpOpts := make([]sdktrace.TracerProviderOption, 0, len(o.spanProcessors))
	for _, sp := range o.spanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}
	tracerProvider := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tracerProvider)

	obs := &Observability{
		tracerProvider: tracerProvider,
		tracer:         tracerProvider.Tracer(serviceName),
	}

	var readers []metric.Option
	if len(o.metricReaders) > 0 {
		for _, r := range o.metricReaders {
			readers = append(readers, metric.WithReader(r))
		}
	} else {
		exporter, err := prometheus.New()
		if err != nil {
			o.logger.Error("prometheus exporter unavailable, otel metrics disabled", map[string]interface{}{
				"error": err,
			})
			return obs
		}
		readers = append(readers, metric.WithReader(exporter))
	}

	provider := metric.NewMeterProvider(readers...)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)

	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	calcCounter, _ := meter.Int64Counter(
		"solar.calculations",
		otelmetric.WithDescription("Savings calculations by location level"),
	)

	quoteRatio, _ := meter.Float64Histogram(
		"solar.quote.price_ratio",
		otelmetric.WithDescription("Quoted price per kW over the city fair rate"),
	)

	obs.meterProvider = provider
	obs.meter = meter
	obs.jobCounter = jobCounter
	obs.jobDuration = jobDuration
	obs.calcCounter = calcCounter
	obs.quoteRatio = quoteRatio
	return obs
}

// StartSpan starts a span on the service tracer, or on the global tracer when o is nil.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	if o != nil && o.tracer != nil {
		tracer = o.tracer
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o != nil && o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o != nil && o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordCalculation(ctx context.Context, locationLevel string, systemKW float64) {
	if o != nil && o.calcCounter != nil {
		o.calcCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("location_level", locationLevel),
			attribute.Float64("system_kw", systemKW),
		))
	}
}

func (o *Observability) RecordQuoteRatio(ctx context.Context, bucket string, ratio float64) {
	if o != nil && o.quoteRatio != nil {
		o.quoteRatio.Record(ctx, ratio, otelmetric.WithAttributes(
			attribute.String("bucket", bucket),
		))
	}
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
