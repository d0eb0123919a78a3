package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/zatekoja/dentaldesk"

// Metrics holds the API client metrics
type Metrics struct {
	RequestCount    metric.Int64Counter
	RequestDuration metric.Float64Histogram
	RetryCount      metric.Int64Counter
	FailureCount    metric.Int64Counter
}

// metricInterval is how often the periodic reader pushes to the collector
const metricInterval = 15 * time.Second

// Setup installs OTLP/gRPC trace and metric providers as the otel globals and
// starts Go runtime metrics. The returned func flushes and stops both providers.
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	tp, err := newTracerProvider(ctx, res, endpoint)
	if err != nil {
		return nil, err
	}
	mp, err := newMeterProvider(ctx, res, endpoint)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx))
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		GetLogger().Warn().Err(err).Msg("Go runtime metrics unavailable")
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, endpoint string) (*sdktrace.TracerProvider, error) {
	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	), nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, endpoint string) (*sdkmetric.MeterProvider, error) {
	exp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp metric exporter: %w", err)
	}
	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(metricInterval))
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	), nil
}

// InitMetrics registers the client instruments on the global meter provider.
// Without Setup they are no-ops.
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)
	var (
		m    Metrics
		errs []error
		err  error
	)

	m.RequestCount, err = meter.Int64Counter("http.client.request.count",
		metric.WithDescription("HTTP attempts sent to the dental API"))
	errs = append(errs, err)

	m.RequestDuration, err = meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("HTTP attempt latency"),
		metric.WithUnit("ms"))
	errs = append(errs, err)

	m.RetryCount, err = meter.Int64Counter("http.client.retry.count",
		metric.WithDescription("Retries scheduled after a retryable failure"))
	errs = append(errs, err)

	m.FailureCount, err = meter.Int64Counter("http.client.failure.count",
		metric.WithDescription("Calls that ended in a classified failure"))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

// StartSpan opens a client-kind span around an outbound call
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
}

// StartServerSpan opens a server-kind span for an inbound request
func StartServerSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindServer))
}

// RecordError is a nil-safe span.RecordError
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
}

func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

func routeAttrs(method, path string, extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := append([]attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
	}, extra...)
	return metric.WithAttributes(attrs...)
}

// RecordRequestMetric records one HTTP attempt. statusCode is 0 when no response arrived.
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	opt := routeAttrs(method, path, attribute.Int("http.status_code", statusCode))
	metrics.RequestCount.Add(ctx, 1, opt)
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordRetry records a scheduled retry
func RecordRetry(ctx context.Context, metrics *Metrics, method, path string) {
	if metrics != nil {
		metrics.RetryCount.Add(ctx, 1, routeAttrs(method, path))
	}
}

// RecordFailure records a call that ended with an error of the given kind
func RecordFailure(ctx context.Context, metrics *Metrics, method, path, kind string) {
	if metrics != nil {
		metrics.FailureCount.Add(ctx, 1, routeAttrs(method, path, attribute.String("error.kind", kind)))
	}
}
