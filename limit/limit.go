// Package limit provides per-plugin rate limiting and concurrency
// control for match invocations.
//
// Dispatch runs on every keystroke, so a network-backed plugin can be
// hammered with one request per character typed. A [Config] caps the
// sustained invocation rate with a token bucket
// (golang.org/x/time/rate) and bounds concurrent in-flight matches.
// A denied invocation contributes zero results for that cycle; it is
// not a fault.
//
// Plugins without a Config have no limits beyond the per-plugin
// deadline.
package limit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Config defines invocation limits for a single plugin.
type Config struct {
	// Plugin is the plugin identity the limits apply to.
	Plugin string

	// MaxConcurrent bounds simultaneous in-flight Match invocations
	// for this plugin. A slow plugin abandoned by one cycle may still
	// be running when the next keystroke dispatches; this cap keeps
	// stragglers from piling up. Zero means no concurrency limit.
	MaxConcurrent int

	// RateLimit is the maximum sustained Match invocations per second.
	// Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the burst size for the token-bucket limiter.
	// Defaults to 1 if RateLimit is set but RateBurst is zero.
	RateBurst int
}

// pluginState tracks runtime state for a single plugin.
type pluginState struct {
	config  Config
	limiter *rate.Limiter
	active  int
}

// Manager enforces per-plugin invocation limits. It is safe for
// concurrent use.
type Manager struct {
	mu      sync.Mutex
	plugins map[string]*pluginState
}

// NewManager creates a Manager from the given per-plugin configs.
func NewManager(configs ...Config) *Manager {
	m := &Manager{plugins: make(map[string]*pluginState)}
	for _, cfg := range configs {
		m.plugins[cfg.Plugin] = newPluginState(cfg)
	}
	return m
}

func newPluginState(cfg Config) *pluginState {
	ps := &pluginState{config: cfg}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		ps.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return ps
}

// Acquire checks rate and concurrency limits for the plugin. If the
// invocation may proceed it increments the active counter and returns
// true. The caller MUST call Release when the invocation finishes,
// even if its result was abandoned.
func (m *Manager) Acquire(pluginID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps := m.plugins[pluginID]
	if ps == nil {
		return true
	}

	if ps.limiter != nil && !ps.limiter.Allow() {
		return false
	}
	if ps.config.MaxConcurrent > 0 && ps.active >= ps.config.MaxConcurrent {
		return false
	}

	ps.active++
	return true
}

// Release decrements the active invocation count for the plugin.
func (m *Manager) Release(pluginID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ps := m.plugins[pluginID]; ps != nil && ps.active > 0 {
		ps.active--
	}
}

// SetConfig dynamically updates (or creates) a plugin's limit config.
// The current active count is preserved.
func (m *Manager) SetConfig(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps := newPluginState(cfg)
	if existing := m.plugins[cfg.Plugin]; existing != nil {
		ps.active = existing.active
	}
	m.plugins[cfg.Plugin] = ps
}

// ActiveCount returns the number of in-flight invocations tracked for
// the plugin.
func (m *Manager) ActiveCount(pluginID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ps := m.plugins[pluginID]; ps != nil {
		return ps.active
	}
	return 0
}
