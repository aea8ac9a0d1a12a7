package plugin_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// nopPlugin is the minimal capability implementation for registry tests.
type nopPlugin struct{}

func (nopPlugin) Admits(_ *omnibar.Query) bool { return true }

func (nopPlugin) Match(_ context.Context, _ *omnibar.Query) ([]omnibar.Result, error) {
	return nil, nil
}

func (nopPlugin) Execute(_ context.Context, _ omnibar.Result) error { return nil }

func record(pluginID string, enabled bool) *plugin.Record {
	return &plugin.Record{
		ID:          pluginID,
		DisplayName: pluginID,
		Enabled:     enabled,
		Plugin:      nopPlugin{},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := plugin.NewRegistry(slog.Default())

	if err := r.Register(record("calc", true)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	rec, ok := r.Get("calc")
	if !ok {
		t.Fatal("Get returned false for registered plugin")
	}
	if rec.ID != "calc" {
		t.Fatalf("rec.ID = %q, want %q", rec.ID, "calc")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	r := plugin.NewRegistry(slog.Default())

	if err := r.Register(nil); err == nil {
		t.Error("Register(nil) should fail")
	}
	if err := r.Register(&plugin.Record{Plugin: nopPlugin{}}); err == nil {
		t.Error("Register with empty ID should fail")
	}
	if err := r.Register(&plugin.Record{ID: "x"}); err == nil {
		t.Error("Register with nil implementation should fail")
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d after rejected registrations, want 0", r.Len())
	}
}

func TestRegistry_OverwriteKeepsSingleRecordAndPosition(t *testing.T) {
	r := plugin.NewRegistry(slog.Default())

	if err := r.Register(record("a", true)); err != nil {
		t.Fatalf("Register a: %v", err)
	}
	if err := r.Register(record("b", true)); err != nil {
		t.Fatalf("Register b: %v", err)
	}

	replacement := record("a", true)
	replacement.DisplayName = "a-v2"
	if err := r.Register(replacement); err != nil {
		t.Fatalf("Register a again: %v", err)
	}

	if r.Len() != 2 {
		t.Fatalf("Len = %d after overwrite, want 2", r.Len())
	}
	rec, _ := r.Get("a")
	if rec.DisplayName != "a-v2" {
		t.Fatalf("DisplayName = %q, want the overwriting record", rec.DisplayName)
	}

	all := r.ListAll()
	if all[0].ID != "a" || all[1].ID != "b" {
		t.Fatalf("enumeration order changed after overwrite: %s, %s", all[0].ID, all[1].ID)
	}
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	r := plugin.NewRegistry(slog.Default())

	if err := r.Register(record("calc", true)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	r.Unregister("calc")
	if _, ok := r.Get("calc"); ok {
		t.Fatal("plugin still present after Unregister")
	}

	// Unknown ID is a no-op, not an error.
	r.Unregister("calc")
	r.Unregister("never-registered")
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}
}

func TestRegistry_ListEnabledFiltersAndPreservesOrder(t *testing.T) {
	r := plugin.NewRegistry(slog.Default())

	for _, rec := range []*plugin.Record{
		record("a", true),
		record("b", false),
		record("c", true),
	} {
		if err := r.Register(rec); err != nil {
			t.Fatalf("Register %s: %v", rec.ID, err)
		}
	}

	enabled := r.ListEnabled()
	if len(enabled) != 2 {
		t.Fatalf("ListEnabled returned %d records, want 2", len(enabled))
	}
	if enabled[0].ID != "a" || enabled[1].ID != "c" {
		t.Fatalf("order = %s, %s; want a, c", enabled[0].ID, enabled[1].ID)
	}

	all := r.ListAll()
	if len(all) != 3 {
		t.Fatalf("ListAll returned %d records, want 3", len(all))
	}
}

func TestRegistry_SetEnabled(t *testing.T) {
	r := plugin.NewRegistry(slog.Default())

	if err := r.Register(record("a", false)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !r.SetEnabled("a", true) {
		t.Fatal("SetEnabled returned false for a registered plugin")
	}
	if got := len(r.ListEnabled()); got != 1 {
		t.Fatalf("ListEnabled after enable = %d records, want 1", got)
	}

	if r.SetEnabled("missing", true) {
		t.Fatal("SetEnabled returned true for an unknown plugin")
	}
}

func TestRegistry_SnapshotUnaffectedByLaterChanges(t *testing.T) {
	r := plugin.NewRegistry(slog.Default())

	if err := r.Register(record("a", true)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	snapshot := r.ListEnabled()
	r.Unregister("a")

	if len(snapshot) != 1 || snapshot[0].ID != "a" {
		t.Fatal("snapshot mutated by later Unregister")
	}
}
