package supervisor

import (
	"context"
	"testing"
)

// With no MeterProvider configured, otel.Meter returns the no-op
// implementation; recording must not panic or block.
func TestInstruments_RecordWithoutConfiguredProvider(t *testing.T) {
	m := newInstruments()
	m.recordSuccess(context.Background(), "occurrence")
	m.recordError(context.Background())
}
