package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// Recover returns middleware that recovers from panics in the handler
// chain. A panicking plugin must not abort the dispatch cycle, so the
// panic is converted to an error (which the engine classifies as a
// match fault) and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, rec *plugin.Record, _ *omnibar.Query, next Handler) (results []omnibar.Result, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("plugin match panicked",
					slog.String("plugin", rec.ID),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				results = nil
				retErr = fmt.Errorf("panic in plugin %s: %v", rec.ID, r)
			}
		}()
		return next(ctx)
	}
}
