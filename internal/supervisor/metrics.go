package supervisor

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instruments are built against the process-wide MeterProvider. When no
// OTLP endpoint is configured that provider is OTel's no-op implementation,
// so these calls are free — recording is unconditional rather than gated on
// a "metrics enabled" flag, matching how otelecho/otelpgx instrument
// unconditionally and rely on the no-op provider for the disabled case.
type instruments struct {
	processed metric.Int64Counter
	errors    metric.Int64Counter
}

func newInstruments() instruments {
	meter := otel.Meter("observ-ing-ingester")
	processed, _ := meter.Int64Counter("ingester.records.processed",
		metric.WithDescription("records successfully written, by record kind"))
	errors, _ := meter.Int64Counter("ingester.records.errors",
		metric.WithDescription("commits that failed to write"))
	return instruments{processed: processed, errors: errors}
}

func (i instruments) recordSuccess(ctx context.Context, kind string) {
	if i.processed == nil {
		return
	}
	i.processed.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (i instruments) recordError(ctx context.Context) {
	if i.errors == nil {
		return
	}
	i.errors.Add(ctx, 1)
}
