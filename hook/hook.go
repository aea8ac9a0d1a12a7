// Package hook defines the lifecycle notification system for omnibar.
// Hooks are notified of dispatch events (cycle started, match failed,
// match timed out, result executed, etc.) and can react to them for
// logging, metrics, usage history, and so on.
//
// Each lifecycle event is a separate interface so hooks opt in only to
// the events they care about.
package hook

import (
	"context"
	"time"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/id"
	"github.com/voltlaunchr/omnibar/plugin"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// ──────────────────────────────────────────────────
// Dispatch cycle events
// ──────────────────────────────────────────────────

// DispatchStarted is called when a dispatch cycle begins.
type DispatchStarted interface {
	OnDispatchStarted(ctx context.Context, cycleID id.CycleID, q *omnibar.Query) error
}

// DispatchCompleted is called after a dispatch cycle produces its
// ranked output.
type DispatchCompleted interface {
	OnDispatchCompleted(ctx context.Context, cycleID id.CycleID, results int, elapsed time.Duration) error
}

// ──────────────────────────────────────────────────
// Match invocation events
// ──────────────────────────────────────────────────

// MatchStarted is called before a plugin's Match invocation begins.
type MatchStarted interface {
	OnMatchStarted(ctx context.Context, rec *plugin.Record, q *omnibar.Query) error
}

// MatchCompleted is called after a Match invocation resolves in time
// with a usable result set (possibly empty).
type MatchCompleted interface {
	OnMatchCompleted(ctx context.Context, rec *plugin.Record, results int, elapsed time.Duration) error
}

// MatchFailed is called when a Match invocation faults (error, panic,
// or malformed results). The not-applicable sentinel does not fire it.
type MatchFailed interface {
	OnMatchFailed(ctx context.Context, rec *plugin.Record, err error) error
}

// MatchTimedOut is called when a Match invocation exceeds its deadline
// and is abandoned.
type MatchTimedOut interface {
	OnMatchTimedOut(ctx context.Context, rec *plugin.Record, timeout time.Duration) error
}

// ──────────────────────────────────────────────────
// Execute events
// ──────────────────────────────────────────────────

// ResultExecuted is called after ExecuteSelected completes successfully.
type ResultExecuted interface {
	OnResultExecuted(ctx context.Context, r omnibar.Result, elapsed time.Duration) error
}

// ExecuteFailed is called when ExecuteSelected fails.
type ExecuteFailed interface {
	OnExecuteFailed(ctx context.Context, r omnibar.Result, err error) error
}

// ──────────────────────────────────────────────────
// Other events
// ──────────────────────────────────────────────────

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
