package hook

import (
	"context"
	"log/slog"
	"time"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/id"
	"github.com/voltlaunchr/omnibar/plugin"
)

// Named entry types pair an event implementation with the hook name
// captured at registration time. This avoids type-asserting back to
// Hook inside the emit methods.
type dispatchStartedEntry struct {
	name string
	hook DispatchStarted
}

type dispatchCompletedEntry struct {
	name string
	hook DispatchCompleted
}

type matchStartedEntry struct {
	name string
	hook MatchStarted
}

type matchCompletedEntry struct {
	name string
	hook MatchCompleted
}

type matchFailedEntry struct {
	name string
	hook MatchFailed
}

type matchTimedOutEntry struct {
	name string
	hook MatchTimedOut
}

type resultExecutedEntry struct {
	name string
	hook ResultExecuted
}

type executeFailedEntry struct {
	name string
	hook ExecuteFailed
}

type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered hooks and dispatches lifecycle events to
// them. It type-caches hooks at registration time so emit calls
// iterate only over hooks that implement the relevant event.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	// Type-cached slices for each lifecycle event.
	dispatchStarted   []dispatchStartedEntry
	dispatchCompleted []dispatchCompletedEntry
	matchStarted      []matchStartedEntry
	matchCompleted    []matchCompletedEntry
	matchFailed       []matchFailedEntry
	matchTimedOut     []matchTimedOutEntry
	resultExecuted    []resultExecutedEntry
	executeFailed     []executeFailedEntry
	shutdown          []shutdownEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Hooks are notified in registration order.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(DispatchStarted); ok {
		r.dispatchStarted = append(r.dispatchStarted, dispatchStartedEntry{name, e})
	}
	if e, ok := h.(DispatchCompleted); ok {
		r.dispatchCompleted = append(r.dispatchCompleted, dispatchCompletedEntry{name, e})
	}
	if e, ok := h.(MatchStarted); ok {
		r.matchStarted = append(r.matchStarted, matchStartedEntry{name, e})
	}
	if e, ok := h.(MatchCompleted); ok {
		r.matchCompleted = append(r.matchCompleted, matchCompletedEntry{name, e})
	}
	if e, ok := h.(MatchFailed); ok {
		r.matchFailed = append(r.matchFailed, matchFailedEntry{name, e})
	}
	if e, ok := h.(MatchTimedOut); ok {
		r.matchTimedOut = append(r.matchTimedOut, matchTimedOutEntry{name, e})
	}
	if e, ok := h.(ResultExecuted); ok {
		r.resultExecuted = append(r.resultExecuted, resultExecutedEntry{name, e})
	}
	if e, ok := h.(ExecuteFailed); ok {
		r.executeFailed = append(r.executeFailed, executeFailedEntry{name, e})
	}
	if e, ok := h.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// EmitDispatchStarted notifies all hooks that implement DispatchStarted.
func (r *Registry) EmitDispatchStarted(ctx context.Context, cycleID id.CycleID, q *omnibar.Query) {
	for _, e := range r.dispatchStarted {
		if err := e.hook.OnDispatchStarted(ctx, cycleID, q); err != nil {
			r.logHookError("OnDispatchStarted", e.name, err)
		}
	}
}

// EmitDispatchCompleted notifies all hooks that implement DispatchCompleted.
func (r *Registry) EmitDispatchCompleted(ctx context.Context, cycleID id.CycleID, results int, elapsed time.Duration) {
	for _, e := range r.dispatchCompleted {
		if err := e.hook.OnDispatchCompleted(ctx, cycleID, results, elapsed); err != nil {
			r.logHookError("OnDispatchCompleted", e.name, err)
		}
	}
}

// EmitMatchStarted notifies all hooks that implement MatchStarted.
func (r *Registry) EmitMatchStarted(ctx context.Context, rec *plugin.Record, q *omnibar.Query) {
	for _, e := range r.matchStarted {
		if err := e.hook.OnMatchStarted(ctx, rec, q); err != nil {
			r.logHookError("OnMatchStarted", e.name, err)
		}
	}
}

// EmitMatchCompleted notifies all hooks that implement MatchCompleted.
func (r *Registry) EmitMatchCompleted(ctx context.Context, rec *plugin.Record, results int, elapsed time.Duration) {
	for _, e := range r.matchCompleted {
		if err := e.hook.OnMatchCompleted(ctx, rec, results, elapsed); err != nil {
			r.logHookError("OnMatchCompleted", e.name, err)
		}
	}
}

// EmitMatchFailed notifies all hooks that implement MatchFailed.
func (r *Registry) EmitMatchFailed(ctx context.Context, rec *plugin.Record, matchErr error) {
	for _, e := range r.matchFailed {
		if err := e.hook.OnMatchFailed(ctx, rec, matchErr); err != nil {
			r.logHookError("OnMatchFailed", e.name, err)
		}
	}
}

// EmitMatchTimedOut notifies all hooks that implement MatchTimedOut.
func (r *Registry) EmitMatchTimedOut(ctx context.Context, rec *plugin.Record, timeout time.Duration) {
	for _, e := range r.matchTimedOut {
		if err := e.hook.OnMatchTimedOut(ctx, rec, timeout); err != nil {
			r.logHookError("OnMatchTimedOut", e.name, err)
		}
	}
}

// EmitResultExecuted notifies all hooks that implement ResultExecuted.
func (r *Registry) EmitResultExecuted(ctx context.Context, res omnibar.Result, elapsed time.Duration) {
	for _, e := range r.resultExecuted {
		if err := e.hook.OnResultExecuted(ctx, res, elapsed); err != nil {
			r.logHookError("OnResultExecuted", e.name, err)
		}
	}
}

// EmitExecuteFailed notifies all hooks that implement ExecuteFailed.
func (r *Registry) EmitExecuteFailed(ctx context.Context, res omnibar.Result, execErr error) {
	for _, e := range r.executeFailed {
		if err := e.hook.OnExecuteFailed(ctx, res, execErr); err != nil {
			r.logHookError("OnExecuteFailed", e.name, err)
		}
	}
}

// EmitShutdown notifies all hooks that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated; they must not affect
// dispatch output.
func (r *Registry) logHookError(event, hookName string, err error) {
	r.logger.Warn("lifecycle hook error",
		slog.String("event", event),
		slog.String("hook", hookName),
		slog.String("error", err.Error()),
	)
}
