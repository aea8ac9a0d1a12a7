package middleware

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// tracerName is the instrumentation scope name for omnibar tracing.
const tracerName = "github.com/voltlaunchr/omnibar"

// Tracing returns middleware that wraps each match invocation in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this middleware becomes a
// pass-through with zero overhead.
//
// Span attributes: omnibar.plugin.id and omnibar.query.length. The
// query text itself is deliberately not recorded; it is user input.
// On error (excluding the not-applicable sentinel) the span status is
// set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided
// tracer. This variant allows injecting a specific TracerProvider for
// testing or when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, rec *plugin.Record, q *omnibar.Query, next Handler) ([]omnibar.Result, error) {
		ctx, span := tracer.Start(ctx, "omnibar.plugin.match",
			trace.WithAttributes(
				attribute.String("omnibar.plugin.id", rec.ID),
				attribute.Int("omnibar.query.length", len(q.Text())),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		results, err := next(ctx)
		if err != nil && !errors.Is(err, omnibar.ErrNotApplicable) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return results, err
	}
}
