// Package middleware provides composable middleware for match
// invocations. Middleware wraps a plugin's Match call synchronously
// and can modify execution (recover from panics, log, add tracing and
// metrics).
package middleware

import (
	"context"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// Handler is the terminal function that performs the Match call.
type Handler func(ctx context.Context) ([]omnibar.Result, error)

// Middleware wraps a Handler with cross-cutting logic. It receives the
// invocation context, the plugin record being invoked, the query, and
// the next handler. Middleware MUST call next to continue the chain
// (unless short-circuiting on error).
type Middleware func(ctx context.Context, rec *plugin.Record, q *omnibar.Query, next Handler) ([]omnibar.Result, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(recover, logging, metrics) executes as:
//
//	recover → logging → metrics → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, rec *plugin.Record, q *omnibar.Query, next Handler) ([]omnibar.Result, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) ([]omnibar.Result, error) {
				return mw(ctx, rec, q, prev)
			}
		}
		return h(ctx)
	}
}
