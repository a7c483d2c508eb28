// Package telemetry wraps the OpenTelemetry tracer used by the dispatcher,
// grounded in the teacher's internal/platform/otel provider and the
// per-request span started by its gRPC telemetry interceptor.
//
// The core never logs or traces from inside a reducer (reducers must not
// perform I/O, per spec §4.1); only the dispatcher, at the boundary between
// an intent and the registry, opens a span.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/fluxcore/engine/dispatch"

// Tracer returns the engine's named tracer from the global otel provider.
// Production wiring installs a real TracerProvider during app startup;
// tests run against the default no-op provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartIntentSpan opens a span for one dispatched intent, tagging it with
// the trace id and, once known, the resolved command type.
func StartIntentSpan(ctx context.Context, intentID string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "dispatch.intent", trace.WithAttributes(
		attribute.String("flux.trace_id", intentID),
	))
}

// SetCommandType records the resolved command type on an already-open span.
func SetCommandType(span trace.Span, commandType string) {
	span.SetAttributes(attribute.String("flux.command_type", commandType))
}
