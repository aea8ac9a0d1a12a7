package omnibar

// Result is a single entry a plugin contributes during one dispatch
// cycle. Results are values: the engine copies them on merge, so a
// plugin never observes engine-side mutation.
//
// ID must be unique per cycle. Use id.NewResultID() for a
// collision-free identity; the engine drops later duplicates.
type Result struct {
	// ID is the caller-facing unique key for this result within one
	// dispatch cycle.
	ID string

	// Kind tags the result type ("calculation", "web-search", ...).
	// The engine does not interpret it; the UI layer may.
	Kind string

	// Title is the primary display line.
	Title string

	// Subtitle is an optional secondary display line.
	Subtitle string

	// Icon is an optional icon reference for the UI layer.
	Icon string

	// Score drives ranking: higher scores sort first.
	Score float64

	// Payload carries opaque data for Execute (a URL, a value to copy).
	Payload map[string]any

	// Source is the identity of the originating plugin. It is stamped
	// by the engine during merge; anything a plugin writes here is
	// overwritten and cannot forge another plugin's identity.
	Source string
}
