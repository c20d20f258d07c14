// Package telemetry wires OpenTelemetry tracing for the edge
// renderer. Spans cover request handling, store fetches and ranking.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceVersion = "1.0.0"

var provider *sdktrace.TracerProvider

// Init sets up the global tracer provider with a stdout exporter and
// returns a tracer for the service. The stdout exporter is fine for
// the edge renderer: traces are scraped from container logs.
func Init(serviceName string) (trace.Tracer, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return provider.Tracer(serviceName), nil
}

// Shutdown flushes any buffered spans.
func Shutdown(ctx context.Context, log *slog.Logger) {
	if provider == nil {
		return
	}
	if err := provider.Shutdown(ctx); err != nil {
		log.Error("error shutting down tracer provider", "error", err)
	}
}
