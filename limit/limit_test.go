package limit_test

import (
	"testing"

	"github.com/voltlaunchr/omnibar/limit"
)

func TestManager_UnconfiguredPluginAlwaysAllowed(t *testing.T) {
	m := limit.NewManager()

	for range 100 {
		if !m.Acquire("anything") {
			t.Fatal("unconfigured plugin denied")
		}
	}
	if got := m.ActiveCount("anything"); got != 0 {
		t.Fatalf("ActiveCount for unconfigured plugin = %d, want 0 (untracked)", got)
	}
}

func TestManager_MaxConcurrent(t *testing.T) {
	m := limit.NewManager(limit.Config{Plugin: "web", MaxConcurrent: 2})

	if !m.Acquire("web") || !m.Acquire("web") {
		t.Fatal("first two acquisitions should succeed")
	}
	if m.Acquire("web") {
		t.Fatal("third acquisition should be denied at MaxConcurrent=2")
	}

	m.Release("web")
	if !m.Acquire("web") {
		t.Fatal("acquisition after Release should succeed")
	}
	if got := m.ActiveCount("web"); got != 2 {
		t.Fatalf("ActiveCount = %d, want 2", got)
	}
}

func TestManager_RateLimit(t *testing.T) {
	// 1/s with burst 2: two immediate acquisitions pass, the third is
	// denied without waiting.
	m := limit.NewManager(limit.Config{Plugin: "web", RateLimit: 1, RateBurst: 2})

	if !m.Acquire("web") {
		t.Fatal("first acquisition denied")
	}
	m.Release("web")
	if !m.Acquire("web") {
		t.Fatal("second acquisition denied within burst")
	}
	m.Release("web")
	if m.Acquire("web") {
		t.Fatal("third immediate acquisition should exceed the burst")
	}
}

func TestManager_RateBurstDefaultsToOne(t *testing.T) {
	m := limit.NewManager(limit.Config{Plugin: "web", RateLimit: 0.1})

	if !m.Acquire("web") {
		t.Fatal("first acquisition denied")
	}
	m.Release("web")
	if m.Acquire("web") {
		t.Fatal("second immediate acquisition should be denied with default burst 1")
	}
}

func TestManager_ReleaseNeverUnderflows(t *testing.T) {
	m := limit.NewManager(limit.Config{Plugin: "web", MaxConcurrent: 1})

	m.Release("web")
	m.Release("web")
	if got := m.ActiveCount("web"); got != 0 {
		t.Fatalf("ActiveCount = %d after spurious releases, want 0", got)
	}
	if !m.Acquire("web") {
		t.Fatal("acquisition denied after spurious releases")
	}
}

func TestManager_SetConfigPreservesActiveCount(t *testing.T) {
	m := limit.NewManager(limit.Config{Plugin: "web", MaxConcurrent: 5})

	if !m.Acquire("web") || !m.Acquire("web") {
		t.Fatal("setup acquisitions failed")
	}

	m.SetConfig(limit.Config{Plugin: "web", MaxConcurrent: 2})

	if got := m.ActiveCount("web"); got != 2 {
		t.Fatalf("ActiveCount = %d after reconfigure, want 2", got)
	}
	if m.Acquire("web") {
		t.Fatal("acquisition should be denied: active count already at new cap")
	}
}

func TestManager_PluginsAreIndependent(t *testing.T) {
	m := limit.NewManager(
		limit.Config{Plugin: "a", MaxConcurrent: 1},
		limit.Config{Plugin: "b", MaxConcurrent: 1},
	)

	if !m.Acquire("a") {
		t.Fatal("a denied")
	}
	if !m.Acquire("b") {
		t.Fatal("b denied despite independent limits")
	}
	if m.Acquire("a") {
		t.Fatal("a should be at its cap")
	}
}
