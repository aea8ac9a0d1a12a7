package plugin

import (
	"context"

	"github.com/voltlaunchr/omnibar"
)

// Plugin is the capability contract for one search-bar plugin.
type Plugin interface {
	// Admits reports whether this plugin should be asked to compute
	// results for the query. It is called synchronously on every
	// keystroke for every enabled plugin: it must be cheap, pure, and
	// must never perform I/O. A panicking Admits is treated as false.
	Admits(q *omnibar.Query) bool

	// Match computes the plugin's results for the query. It may block
	// on I/O; the engine bounds it with a per-plugin deadline carried
	// in ctx. Return omnibar.ErrNotApplicable when the plugin has
	// nothing to offer; that is not a fault, unlike any other error.
	// An empty slice with a nil error is a successful zero-result match.
	Match(ctx context.Context, q *omnibar.Query) ([]omnibar.Result, error)

	// Execute performs the side effect described by the selected
	// result's payload (copy to clipboard, open a URL). It is invoked
	// once, by explicit user selection, outside the dispatch path.
	// Errors propagate to the caller of ExecuteSelected.
	Execute(ctx context.Context, r omnibar.Result) error
}

// Record is a registered plugin plus its registration metadata.
// Records are owned by the Registry: created on Register, overwritten
// when the same ID re-registers, removed on Unregister.
type Record struct {
	// ID is the short, unique, caller-assigned plugin identity.
	ID string

	// DisplayName is the human-readable plugin name.
	DisplayName string

	// Description explains what the plugin does.
	Description string

	// Enabled gates participation in dispatch cycles.
	Enabled bool

	// Plugin is the capability implementation.
	Plugin Plugin
}
