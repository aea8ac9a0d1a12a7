package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// Logging returns middleware that logs each match invocation. Dispatch
// runs per keystroke, so the happy path logs at Debug; only genuine
// faults log at Warn. The not-applicable sentinel is not a fault.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, rec *plugin.Record, q *omnibar.Query, next Handler) ([]omnibar.Result, error) {
		start := time.Now()
		results, err := next(ctx)
		elapsed := time.Since(start)

		switch {
		case err == nil:
			logger.Debug("plugin match completed",
				slog.String("plugin", rec.ID),
				slog.Int("results", len(results)),
				slog.Duration("elapsed", elapsed),
			)
		case errors.Is(err, omnibar.ErrNotApplicable):
			logger.Debug("plugin not applicable",
				slog.String("plugin", rec.ID),
				slog.Duration("elapsed", elapsed),
			)
		default:
			logger.Warn("plugin match failed",
				slog.String("plugin", rec.ID),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		}

		return results, err
	}
}
