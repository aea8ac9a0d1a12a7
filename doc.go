// Package omnibar provides the query dispatch core for a desktop
// launcher search bar. It fans a single keystroke-query out to an open
// set of independently authored plugins, invokes each one concurrently
// under a per-plugin deadline, isolates failures, and merges the
// contributed results into one deterministically ranked list.
//
// Omnibar is a library, not an application. Register plugins in a
// plugin.Registry, build an engine.Engine around it, and call Dispatch
// on every keystroke.
//
// # Quick Start
//
//	reg := plugin.NewRegistry(slog.Default())
//	reg.Register(&plugin.Record{ID: "calc", DisplayName: "Calculator",
//	    Enabled: true, Plugin: calculator.New()})
//
//	eng, err := engine.New(reg, engine.WithMatchTimeout(500*time.Millisecond))
//	results, err := eng.Dispatch(ctx, omnibar.NewQuery("2+2"))
//
// # Architecture
//
// The root package defines the shared value types (Query, Result,
// Config) and sentinel errors. Subsystems live in their own packages:
// plugin (capability contract and registry), engine (the dispatcher),
// rank (result ordering), middleware (per-invocation cross-cutting
// logic), hook (lifecycle notifications), limit (per-plugin rate and
// concurrency control), and observability (metrics).
//
// All generated IDs use TypeID: prefix-qualified, K-sortable,
// UUIDv7-based identifiers.
package omnibar
