package plugin

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry is the in-memory mapping from plugin identity to plugin
// record. Registration changes are rare (configuration time) relative
// to dispatch frequency (per keystroke), so a single mutex around the
// mapping suffices.
//
// Enumeration order is registration order, and an overwrite keeps the
// original position. The engine's dedup tie-breaking is computed
// against this order, so identical registrations yield identical
// dispatch output across runs.
type Registry struct {
	mu      sync.Mutex
	logger  *slog.Logger
	order   []string
	records map[string]*Record
}

// NewRegistry creates an empty plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		records: make(map[string]*Record),
	}
}

// Register inserts a record, or overwrites the record with the same ID.
// Overwriting is not an error: it is logged as a warning and the
// record keeps its enumeration position. Registering the same record
// twice is idempotent.
func (r *Registry) Register(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("plugin: register nil record")
	}
	if rec.ID == "" {
		return fmt.Errorf("plugin: register record with empty ID")
	}
	if rec.Plugin == nil {
		return fmt.Errorf("plugin: register %q with nil implementation", rec.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.ID]; exists {
		r.logger.Warn("plugin already registered, overwriting",
			slog.String("plugin", rec.ID),
			slog.String("display_name", rec.DisplayName),
		)
	} else {
		r.order = append(r.order, rec.ID)
	}
	r.records[rec.ID] = rec

	return nil
}

// Unregister removes the record with the given ID. Removing an unknown
// ID is a no-op.
func (r *Registry) Unregister(pluginID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[pluginID]; !exists {
		return
	}

	delete(r.records, pluginID)
	for i, existing := range r.order {
		if existing == pluginID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the record registered under pluginID.
func (r *Registry) Get(pluginID string) (*Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[pluginID]
	return rec, ok
}

// ListAll returns all records in registration order. The returned
// slice is a snapshot: later registry changes do not affect it.
func (r *Registry) ListAll() []*Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Record, 0, len(r.order))
	for _, pluginID := range r.order {
		out = append(out, r.records[pluginID])
	}
	return out
}

// ListEnabled returns the enabled records in registration order,
// as a snapshot.
func (r *Registry) ListEnabled() []*Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Record, 0, len(r.order))
	for _, pluginID := range r.order {
		if rec := r.records[pluginID]; rec.Enabled {
			out = append(out, rec)
		}
	}
	return out
}

// SetEnabled flips the enabled flag on a registered record. It reports
// whether the record exists. In-flight dispatch cycles are not
// affected; they operate on the snapshot taken at cycle start.
func (r *Registry) SetEnabled(pluginID string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[pluginID]
	if !ok {
		return false
	}
	rec.Enabled = enabled
	return true
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
