// Package engine implements the omnibar dispatcher: one fan-out/gather
// cycle per query. Given a query, it selects admissible plugins from
// the registry snapshot, invokes each one concurrently under an
// isolation boundary and a per-plugin deadline, stamps provenance on
// every contributed result, deduplicates, and returns the ranked list.
//
// The engine sits above the plugin, middleware, hook, limit, and rank
// packages and wires them together; none of them import each other.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/hook"
	"github.com/voltlaunchr/omnibar/id"
	"github.com/voltlaunchr/omnibar/limit"
	mw "github.com/voltlaunchr/omnibar/middleware"
	"github.com/voltlaunchr/omnibar/observability"
	"github.com/voltlaunchr/omnibar/plugin"
	"github.com/voltlaunchr/omnibar/rank"
)

// Engine coordinates dispatch cycles over a plugin registry.
// Create one with New() and functional options.
type Engine struct {
	registry *plugin.Registry
	hooks    *hook.Registry
	limits   *limit.Manager
	chain    mw.Middleware
	config   omnibar.Config
	logger   *slog.Logger

	// Deferred option state, consumed by New.
	extraMws     []mw.Middleware
	pendingHooks []hook.Hook

	// OpenTelemetry providers (optional; nil means use global).
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the engine's configuration wholesale.
func WithConfig(cfg omnibar.Config) Option {
	return func(e *Engine) { e.config = cfg }
}

// WithMatchTimeout sets the per-plugin deadline for Match invocations.
func WithMatchTimeout(d time.Duration) Option {
	return func(e *Engine) { e.config.MatchTimeout = d }
}

// WithExecuteTimeout sets the deadline for ExecuteSelected.
// Zero disables the deadline.
func WithExecuteTimeout(d time.Duration) Option {
	return func(e *Engine) { e.config.ExecuteTimeout = d }
}

// WithLogger sets the structured logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithHook registers a lifecycle hook with the engine.
func WithHook(h hook.Hook) Option {
	return func(e *Engine) { e.pendingHooks = append(e.pendingHooks, h) }
}

// WithMiddleware appends middleware to the match invocation chain,
// inside the default stack (recover, tracing, metrics, logging).
func WithMiddleware(m mw.Middleware) Option {
	return func(e *Engine) { e.extraMws = append(e.extraMws, m) }
}

// WithLimits installs per-plugin rate and concurrency limits.
// A denied invocation contributes zero results for that cycle.
func WithLimits(configs ...limit.Config) Option {
	return func(e *Engine) { e.limits = limit.NewManager(configs...) }
}

// WithTracerProvider sets a custom OTel TracerProvider. When set, the
// tracing middleware uses this provider instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) { e.tracerProvider = tp }
}

// WithMeterProvider sets a custom OTel MeterProvider. When set, both
// the metrics middleware and the observability hook use this provider
// instead of the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Engine) { e.meterProvider = mp }
}

// New creates an Engine over the given registry.
func New(registry *plugin.Registry, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, omnibar.ErrNoRegistry
	}

	e := &Engine{
		registry: registry,
		config:   omnibar.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	// Build tracing middleware (custom provider or global).
	var tracingMw mw.Middleware
	if e.tracerProvider != nil {
		tracingMw = mw.TracingWithTracer(e.tracerProvider.Tracer("github.com/voltlaunchr/omnibar"))
	} else {
		tracingMw = mw.Tracing()
	}

	// Build metrics middleware and the observability hook.
	var metricsMw mw.Middleware
	var obsHook *observability.MetricsHook
	if e.meterProvider != nil {
		metricsMw = mw.MetricsWithMeter(e.meterProvider.Meter("github.com/voltlaunchr/omnibar"))
		obsHook = observability.NewMetricsHookWithMeter(e.meterProvider.Meter("github.com/voltlaunchr/omnibar/observability"))
	} else {
		metricsMw = mw.Metrics()
		obsHook = observability.NewMetricsHook()
	}

	// Default middleware stack: recover → tracing → metrics → logging.
	all := []mw.Middleware{
		mw.Recover(e.logger),
		tracingMw,
		metricsMw,
		mw.Logging(e.logger),
	}
	all = append(all, e.extraMws...)
	e.chain = mw.Chain(all...)
	e.extraMws = nil

	e.hooks = hook.NewRegistry(e.logger)
	e.hooks.Register(obsHook)
	for _, h := range e.pendingHooks {
		e.hooks.Register(h)
	}
	e.pendingHooks = nil

	return e, nil
}

// Registry returns the engine's plugin registry.
func (e *Engine) Registry() *plugin.Registry { return e.registry }

// Hooks returns the engine's hook registry.
func (e *Engine) Hooks() *hook.Registry { return e.hooks }

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() omnibar.Config { return e.config }

// Close signals shutdown to all registered hooks.
func (e *Engine) Close(ctx context.Context) error {
	e.hooks.EmitShutdown(ctx)
	return nil
}

// outcomeKind classifies one match invocation. Internal to the engine;
// plugins never see it.
type outcomeKind int

const (
	outcomeMatched outcomeKind = iota
	outcomeNotApplicable
	outcomeFailed
	outcomeTimedOut
	outcomeThrottled
)

type outcome struct {
	kind    outcomeKind
	results []omnibar.Result
}

// Dispatch runs one fan-out/gather cycle for the query and returns the
// ranked result list.
//
// Plugin-caused faults never surface here: a plugin that panics, fails,
// returns malformed results, or overruns its deadline contributes zero
// items and the cycle continues. Dispatch only fails for programmer
// errors in the caller (a nil query).
//
// Wall-clock cost is bounded by the single per-plugin deadline plus a
// small fixed overhead, because all deadlines run concurrently.
func (e *Engine) Dispatch(ctx context.Context, q *omnibar.Query) ([]omnibar.Result, error) {
	if q == nil {
		return nil, omnibar.ErrNilQuery
	}

	cycleID := id.NewCycleID()
	start := time.Now()
	e.hooks.EmitDispatchStarted(ctx, cycleID, q)

	// Snapshot: registrations after this point do not affect the cycle.
	snapshot := e.registry.ListEnabled()

	admitted := make([]*plugin.Record, 0, len(snapshot))
	for _, rec := range snapshot {
		if e.safeAdmits(rec, q) {
			admitted = append(admitted, rec)
		}
	}

	// Fan out: one invocation per admitted plugin, each isolated and
	// individually bounded. Outcomes land at the admitted index so the
	// merge below walks registry enumeration order, never completion
	// order, which keeps dedup tie-breaking reproducible.
	outcomes := make([]outcome, len(admitted))
	var wg sync.WaitGroup
	for i, rec := range admitted {
		wg.Add(1)
		go func(i int, rec *plugin.Record) {
			defer wg.Done()
			outcomes[i] = e.invoke(ctx, rec, q)
		}(i, rec)
	}
	wg.Wait()

	// Merge: stamp provenance, drop duplicate result identities
	// first-seen-wins.
	merged := make([]omnibar.Result, 0, len(admitted))
	seen := make(map[string]struct{}, len(admitted))
	for i, out := range outcomes {
		if out.kind != outcomeMatched {
			continue
		}
		for _, res := range out.results {
			res.Source = admitted[i].ID
			if _, dup := seen[res.ID]; dup {
				e.logger.Debug("duplicate result identity dropped",
					slog.String("cycle_id", cycleID.String()),
					slog.String("result_id", res.ID),
					slog.String("plugin", res.Source),
				)
				continue
			}
			seen[res.ID] = struct{}{}
			merged = append(merged, res)
		}
	}

	ranked := rank.Rank(merged)
	e.hooks.EmitDispatchCompleted(ctx, cycleID, len(ranked), time.Since(start))

	return ranked, nil
}

// safeAdmits evaluates a plugin's admission check, treating a panic as
// "does not admit". Admission faults must never block the cycle.
func (e *Engine) safeAdmits(rec *plugin.Record, q *omnibar.Query) (admitted bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("plugin admission check panicked",
				slog.String("plugin", rec.ID),
				slog.Any("panic", r),
			)
			admitted = false
		}
	}()
	return rec.Plugin.Admits(q)
}

type matchReturn struct {
	results []omnibar.Result
	err     error
}

// invoke runs one plugin's Match through the middleware chain, racing
// it against the per-plugin deadline, and classifies the outcome.
func (e *Engine) invoke(ctx context.Context, rec *plugin.Record, q *omnibar.Query) outcome {
	if e.limits != nil && !e.limits.Acquire(rec.ID) {
		e.logger.Debug("plugin invocation throttled", slog.String("plugin", rec.ID))
		return outcome{kind: outcomeThrottled}
	}

	mctx, cancel := context.WithTimeout(ctx, e.config.MatchTimeout)
	defer cancel()

	e.hooks.EmitMatchStarted(ctx, rec, q)
	start := time.Now()

	// Buffered so an abandoned invocation can still deliver (and be
	// discarded) without leaking its goroutine.
	done := make(chan matchReturn, 1)
	go func() {
		if e.limits != nil {
			// Released when the match actually finishes, even if the
			// cycle has long since abandoned it.
			defer e.limits.Release(rec.ID)
		}
		results, err := e.chain(mctx, rec, q, func(c context.Context) ([]omnibar.Result, error) {
			return rec.Plugin.Match(c, q)
		})
		done <- matchReturn{results: results, err: err}
	}()

	select {
	case ret := <-done:
		elapsed := time.Since(start)
		switch {
		case ret.err == nil:
			if err := validateResults(ret.results); err != nil {
				e.logger.Warn("plugin returned malformed results",
					slog.String("plugin", rec.ID),
					slog.String("error", err.Error()),
				)
				e.hooks.EmitMatchFailed(ctx, rec, err)
				return outcome{kind: outcomeFailed}
			}
			e.hooks.EmitMatchCompleted(ctx, rec, len(ret.results), elapsed)
			return outcome{kind: outcomeMatched, results: ret.results}
		case errors.Is(ret.err, omnibar.ErrNotApplicable):
			return outcome{kind: outcomeNotApplicable}
		default:
			// Already logged by the logging middleware.
			e.hooks.EmitMatchFailed(ctx, rec, ret.err)
			return outcome{kind: outcomeFailed}
		}
	case <-mctx.Done():
		// Deadline elapsed (or the caller cancelled). The straggler
		// keeps running in the background; its eventual resolution is
		// delivered to the buffered channel and discarded.
		e.logger.Debug("plugin match abandoned",
			slog.String("plugin", rec.ID),
			slog.Duration("timeout", e.config.MatchTimeout),
		)
		e.hooks.EmitMatchTimedOut(ctx, rec, e.config.MatchTimeout)
		return outcome{kind: outcomeTimedOut}
	}
}

// validateResults rejects result sets a plugin is not allowed to
// produce. A single bad item poisons the whole invocation: partial
// acceptance would make dedup order depend on which items survived.
func validateResults(results []omnibar.Result) error {
	for i, res := range results {
		if res.ID == "" {
			return fmt.Errorf("%w: item %d", omnibar.ErrMalformedResult, i)
		}
	}
	return nil
}

// ExecuteSelected performs the side effect of the single result the
// user selected. It is not part of the dispatch path: it runs once,
// synchronously, and unlike Match its failure is reported back to the
// caller. A panicking Execute is converted to an error.
func (e *Engine) ExecuteSelected(ctx context.Context, res omnibar.Result) error {
	if res.Source == "" {
		return omnibar.ErrNoSource
	}
	rec, ok := e.registry.Get(res.Source)
	if !ok {
		return fmt.Errorf("%w: %s", omnibar.ErrPluginNotFound, res.Source)
	}

	if e.config.ExecuteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.ExecuteTimeout)
		defer cancel()
	}

	start := time.Now()
	err := e.safeExecute(ctx, rec, res)
	if err != nil {
		e.logger.Warn("result execution failed",
			slog.String("plugin", rec.ID),
			slog.String("result_id", res.ID),
			slog.String("error", err.Error()),
		)
		e.hooks.EmitExecuteFailed(ctx, res, err)
		return err
	}

	e.hooks.EmitResultExecuted(ctx, res, time.Since(start))
	return nil
}

func (e *Engine) safeExecute(ctx context.Context, rec *plugin.Record, res omnibar.Result) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("panic in plugin %s execute: %v", rec.ID, r)
		}
	}()
	return rec.Plugin.Execute(ctx, res)
}
