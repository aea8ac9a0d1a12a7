package omnibar

import "errors"

var (
	// Construction errors.
	ErrNoRegistry = errors.New("omnibar: no plugin registry configured")

	// Dispatch errors. Dispatch never fails for plugin-caused faults;
	// these cover programmer errors in the caller only.
	ErrNilQuery = errors.New("omnibar: nil query")

	// Match sentinel. A plugin returns this from Match when, on closer
	// inspection, it has nothing to offer for the query. It is distinct
	// from an empty result slice and is not treated as a fault.
	ErrNotApplicable = errors.New("omnibar: plugin not applicable")

	// Faults detected by the engine.
	ErrMalformedResult = errors.New("omnibar: result missing identity")

	// Execute errors.
	ErrPluginNotFound = errors.New("omnibar: plugin not found")
	ErrNoSource       = errors.New("omnibar: result has no originating plugin")
)
