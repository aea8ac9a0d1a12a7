package omnibar

import "time"

// Config holds configuration for the dispatch engine.
type Config struct {
	// MatchTimeout is the per-plugin deadline for a single Match
	// invocation. Deadlines run concurrently, so the wall-clock cost of
	// one dispatch cycle is bounded by this value plus a small fixed
	// overhead, regardless of plugin count.
	MatchTimeout time.Duration

	// ExecuteTimeout bounds ExecuteSelected. Zero means no deadline.
	ExecuteTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MatchTimeout:   500 * time.Millisecond,
		ExecuteTimeout: 10 * time.Second,
	}
}
