package middleware

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// meterName is the instrumentation scope name for omnibar metrics.
const meterName = "github.com/voltlaunchr/omnibar"

// Metrics returns middleware that records per-invocation metrics using
// the global OTel MeterProvider. If no MeterProvider is configured,
// noop instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - omnibar.match.duration (Float64Histogram): match time in seconds,
//     with attributes: plugin, status ("ok", "not_applicable", "error")
//   - omnibar.match.invocations (Int64Counter): total invocations,
//     with the same attributes
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"omnibar.match.duration",
		metric.WithDescription("Duration of plugin match invocations in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	invocations, iErr := meter.Int64Counter(
		"omnibar.match.invocations",
		metric.WithDescription("Total number of plugin match invocations"),
		metric.WithUnit("{invocation}"),
	)
	_ = iErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, rec *plugin.Record, _ *omnibar.Query, next Handler) ([]omnibar.Result, error) {
		start := time.Now()
		results, err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		switch {
		case errors.Is(err, omnibar.ErrNotApplicable):
			status = "not_applicable"
		case err != nil:
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("plugin", rec.ID),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		invocations.Add(ctx, 1, attrs)

		return results, err
	}
}
