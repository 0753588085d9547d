package opentelemetry

import (
	"context"

	"github.com/LambdaTest/xdist-tracker/config"
	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitTracer installs a global tracer provider exporting to the configured
// otel collector. The returned func flushes and stops the exporter.
func InitTracer(ctx context.Context, cfg *config.Config, logger lumber.Logger) func(context.Context) error {
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.Tracing.OtelEndpoint),
	))
	if err != nil {
		logger.Errorf("failed to create otel exporter, tracing disabled: %v", err)
		return func(context.Context) error { return nil }
	}
	resources, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", constants.ServiceName),
			attribute.String("environment", cfg.Env),
		),
	)
	if err != nil {
		logger.Errorf("could not set otel resources: %v", err)
	}

	otel.SetTracerProvider(
		sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resources),
		),
	)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return exporter.Shutdown
}
