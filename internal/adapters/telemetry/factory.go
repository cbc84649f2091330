package telemetry

import (
	"context"

	"go.trai.ch/moveiface/internal/adapters/telemetry/progrock"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/zerr"
)

// InstrumentationName names the tracer of the verification pipeline.
const InstrumentationName = "moveiface"

// ShutdownFunc flushes the tracer at the end of a run.
type ShutdownFunc func(context.Context) error

// New returns the tracer selected by backend.
func New(backend domain.TelemetryBackend, log ports.Logger) (ports.Tracer, ShutdownFunc, error) {
	switch backend {
	case "", domain.TelemetryNone:
		return NewNoOpTracer(), func(context.Context) error { return nil }, nil
	case domain.TelemetryOTel:
		t := NewOTelTracer(InstrumentationName, log)
		return t, t.Shutdown, nil
	case domain.TelemetryProgrock:
		t := progrock.New()
		return t, func(context.Context) error { return t.Close() }, nil
	default:
		return nil, nil, zerr.With(domain.ErrConfigInvalid, "telemetry", string(backend))
	}
}
