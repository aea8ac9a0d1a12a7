// Package plugin defines the capability contract every search-bar
// plugin implements, and the registry that owns plugin records.
//
// A plugin is an opaque, independently-faulting unit: the engine
// communicates with it only through omnibar.Query in and
// omnibar.Result slices out, and never inspects its internal state.
// Plugins are expected to protect their own internal state; the
// registry provides no locking on their behalf.
package plugin
