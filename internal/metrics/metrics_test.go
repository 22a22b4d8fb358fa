package metrics

import (
	"sync"
	"testing"
)

func TestIncAndSnapshot(t *testing.T) {
	m := New(Config{Enabled: true})
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricRehydrateMiss)

	snap := m.Snapshot()
	if snap["login_success"] != 2 {
		t.Fatalf("expected login_success=2, got %d", snap["login_success"])
	}
	if snap["rehydrate_miss"] != 1 {
		t.Fatalf("expected rehydrate_miss=1, got %d", snap["rehydrate_miss"])
	}
	if snap["logout"] != 0 {
		t.Fatalf("expected logout=0, got %d", snap["logout"])
	}
	if len(snap) != int(MetricIDCount) {
		t.Fatalf("expected %d counters, got %d", MetricIDCount, len(snap))
	}
}

func TestDisabledMetricsAreNoOps(t *testing.T) {
	m := New(Config{Enabled: false})
	m.Inc(MetricLoginSuccess)
	if snap := m.Snapshot(); len(snap) != 0 {
		t.Fatalf("expected empty snapshot when disabled, got %v", snap)
	}

	var nilMetrics *Metrics
	nilMetrics.Inc(MetricLogout)
	if snap := nilMetrics.Snapshot(); len(snap) != 0 {
		t.Fatalf("expected empty snapshot on nil metrics, got %v", snap)
	}
}

func TestEveryMetricHasAName(t *testing.T) {
	seen := make(map[string]MetricID, MetricIDCount)
	for id := MetricID(0); id < MetricIDCount; id++ {
		name := id.Name()
		if name == "" || name == "unknown" {
			t.Fatalf("metric %d has no name", id)
		}
		if prev, dup := seen[name]; dup {
			t.Fatalf("name %q shared by %d and %d", name, prev, id)
		}
		seen[name] = id
	}
	if MetricIDCount.Name() != "unknown" {
		t.Fatal("out-of-range ID must report unknown")
	}
}

func TestIncIsSafeForConcurrentUse(t *testing.T) {
	m := New(Config{Enabled: true})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Inc(MetricUserUpdated)
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot()["user_updated"]; got != 8000 {
		t.Fatalf("expected 8000, got %d", got)
	}
}
