package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/hook"
	"github.com/voltlaunchr/omnibar/id"
	"github.com/voltlaunchr/omnibar/plugin"
)

// meterName is the instrumentation scope name for dispatch-level metrics.
const meterName = "github.com/voltlaunchr/omnibar/observability"

// Compile-time interface checks.
var (
	_ hook.Hook              = (*MetricsHook)(nil)
	_ hook.DispatchStarted   = (*MetricsHook)(nil)
	_ hook.DispatchCompleted = (*MetricsHook)(nil)
	_ hook.MatchFailed       = (*MetricsHook)(nil)
	_ hook.MatchTimedOut     = (*MetricsHook)(nil)
	_ hook.ResultExecuted    = (*MetricsHook)(nil)
	_ hook.ExecuteFailed     = (*MetricsHook)(nil)
)

// MetricsHook records system-wide dispatch metrics. The middleware
// layer covers per-invocation duration; this hook covers the cycle
// level and the fault/timeout/execute counters that the middleware
// cannot see (timeouts are detected by the engine after the
// middleware chain has been abandoned).
type MetricsHook struct {
	cycles        metric.Int64Counter
	cycleDuration metric.Float64Histogram
	cycleResults  metric.Int64Histogram
	matchFaults   metric.Int64Counter
	matchTimeouts metric.Int64Counter
	executions    metric.Int64Counter
}

// NewMetricsHook creates a MetricsHook using the global MeterProvider.
func NewMetricsHook() *MetricsHook {
	return NewMetricsHookWithMeter(otel.Meter(meterName))
}

// NewMetricsHookWithMeter creates a MetricsHook with the provided
// meter. This variant allows injecting a specific MeterProvider for
// testing.
func NewMetricsHookWithMeter(meter metric.Meter) *MetricsHook {
	// On instrument creation error the OTel API returns noops, so the
	// hook degrades gracefully.
	cycles, _ := meter.Int64Counter(
		"omnibar.dispatch.cycles",
		metric.WithDescription("Total number of dispatch cycles"),
		metric.WithUnit("{cycle}"),
	)
	cycleDuration, _ := meter.Float64Histogram(
		"omnibar.dispatch.duration",
		metric.WithDescription("Wall-clock duration of a dispatch cycle in seconds"),
		metric.WithUnit("s"),
	)
	cycleResults, _ := meter.Int64Histogram(
		"omnibar.dispatch.results",
		metric.WithDescription("Ranked results returned per dispatch cycle"),
		metric.WithUnit("{result}"),
	)
	matchFaults, _ := meter.Int64Counter(
		"omnibar.match.faults",
		metric.WithDescription("Match invocations that faulted"),
		metric.WithUnit("{invocation}"),
	)
	matchTimeouts, _ := meter.Int64Counter(
		"omnibar.match.timeouts",
		metric.WithDescription("Match invocations abandoned at their deadline"),
		metric.WithUnit("{invocation}"),
	)
	executions, _ := meter.Int64Counter(
		"omnibar.execute.total",
		metric.WithDescription("Result executions by status"),
		metric.WithUnit("{execution}"),
	)

	return &MetricsHook{
		cycles:        cycles,
		cycleDuration: cycleDuration,
		cycleResults:  cycleResults,
		matchFaults:   matchFaults,
		matchTimeouts: matchTimeouts,
		executions:    executions,
	}
}

// Name implements hook.Hook.
func (m *MetricsHook) Name() string { return "observability-metrics" }

// OnDispatchStarted implements hook.DispatchStarted.
func (m *MetricsHook) OnDispatchStarted(ctx context.Context, _ id.CycleID, _ *omnibar.Query) error {
	m.cycles.Add(ctx, 1)
	return nil
}

// OnDispatchCompleted implements hook.DispatchCompleted.
func (m *MetricsHook) OnDispatchCompleted(ctx context.Context, _ id.CycleID, results int, elapsed time.Duration) error {
	m.cycleDuration.Record(ctx, elapsed.Seconds())
	m.cycleResults.Record(ctx, int64(results))
	return nil
}

// OnMatchFailed implements hook.MatchFailed.
func (m *MetricsHook) OnMatchFailed(ctx context.Context, rec *plugin.Record, _ error) error {
	m.matchFaults.Add(ctx, 1, metric.WithAttributes(
		attribute.String("plugin", rec.ID),
	))
	return nil
}

// OnMatchTimedOut implements hook.MatchTimedOut.
func (m *MetricsHook) OnMatchTimedOut(ctx context.Context, rec *plugin.Record, _ time.Duration) error {
	m.matchTimeouts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("plugin", rec.ID),
	))
	return nil
}

// OnResultExecuted implements hook.ResultExecuted.
func (m *MetricsHook) OnResultExecuted(ctx context.Context, r omnibar.Result, _ time.Duration) error {
	m.executions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("plugin", r.Source),
		attribute.String("status", "ok"),
	))
	return nil
}

// OnExecuteFailed implements hook.ExecuteFailed.
func (m *MetricsHook) OnExecuteFailed(ctx context.Context, r omnibar.Result, _ error) error {
	m.executions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("plugin", r.Source),
		attribute.String("status", "error"),
	))
	return nil
}
