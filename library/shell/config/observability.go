package config

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/AntonStoeckl/biblioteca/eventstore/oteladapters"
)

const instrumentationName = "github.com/AntonStoeckl/biblioteca"

// Telemetry holds the OpenTelemetry providers and the collectors built from them.
type Telemetry struct {
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
	Metrics        *oteladapters.MetricsCollector
	Tracing        *oteladapters.TracingCollector
	shutdowns      []func(context.Context) error
}

// NewTelemetry exports metrics and traces via OTLP/gRPC to o.OTLPEndpoint.
// Without an endpoint it returns no-op providers, so instrumented code needs no nil checks.
func NewTelemetry(ctx context.Context, o Observability) (Telemetry, error) {
	if !o.Enabled() {
		return newTelemetry(metricnoop.NewMeterProvider(), tracenoop.NewTracerProvider()), nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(o.ServiceName)))
	if err != nil {
		return Telemetry{}, err
	}

	traceExporter, err := otlptracegrpc.New(ctx, traceEndpointOptions(o)...)
	if err != nil {
		return Telemetry{}, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	metricExporter, err := otlpmetricgrpc.New(ctx, metricEndpointOptions(o)...)
	if err != nil {
		return Telemetry{}, errors.Join(err, tracerProvider.Shutdown(ctx))
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(time.Duration(o.MetricsExportSeconds)*time.Second))),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t := newTelemetry(meterProvider, tracerProvider)
	t.shutdowns = []func(context.Context) error{tracerProvider.Shutdown, meterProvider.Shutdown}

	return t, nil
}

func newTelemetry(meterProvider metric.MeterProvider, tracerProvider trace.TracerProvider) Telemetry {
	return Telemetry{
		MeterProvider:  meterProvider,
		TracerProvider: tracerProvider,
		Metrics:        oteladapters.NewMetricsCollector(meterProvider.Meter(instrumentationName)),
		Tracing:        oteladapters.NewTracingCollector(tracerProvider.Tracer(instrumentationName)),
	}
}

// Shutdown flushes and stops the exporters. It is a no-op for disabled telemetry.
func (t Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, shutdown := range t.shutdowns {
		errs = append(errs, shutdown(ctx))
	}

	return errors.Join(errs...)
}

// The endpoint may be host:port or a URL, as OTEL_EXPORTER_OTLP_ENDPOINT usually is.
func traceEndpointOptions(o Observability) []otlptracegrpc.Option {
	if strings.Contains(o.OTLPEndpoint, "://") {
		return []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(o.OTLPEndpoint)}
	}

	options := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(o.OTLPEndpoint)}
	if o.Insecure {
		options = append(options, otlptracegrpc.WithInsecure())
	}

	return options
}

func metricEndpointOptions(o Observability) []otlpmetricgrpc.Option {
	if strings.Contains(o.OTLPEndpoint, "://") {
		return []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpointURL(o.OTLPEndpoint)}
	}

	options := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(o.OTLPEndpoint)}
	if o.Insecure {
		options = append(options, otlpmetricgrpc.WithInsecure())
	}

	return options
}
