package metrics

import "sync/atomic"

// MetricID identifies one counter in the session machine's metric set.
type MetricID uint8

const (
	MetricLoginSuccess MetricID = iota
	MetricLoginFailure
	MetricRegisterSuccess
	MetricRegisterFailure
	MetricLogout
	MetricLogoutRemoteFailure
	MetricRehydrateMiss
	MetricRehydrateConfirmed
	MetricRehydrateRejected
	MetricUserUpdated
	MetricPasswordChangeSuccess
	MetricPasswordChangeFailure
	MetricStaleSettlementDropped
	MetricCacheWriteFailure

	MetricIDCount
)

var metricNames = [MetricIDCount]string{
	MetricLoginSuccess:           "login_success",
	MetricLoginFailure:           "login_failure",
	MetricRegisterSuccess:        "register_success",
	MetricRegisterFailure:        "register_failure",
	MetricLogout:                 "logout",
	MetricLogoutRemoteFailure:    "logout_remote_failure",
	MetricRehydrateMiss:          "rehydrate_miss",
	MetricRehydrateConfirmed:     "rehydrate_confirmed",
	MetricRehydrateRejected:      "rehydrate_rejected",
	MetricUserUpdated:            "user_updated",
	MetricPasswordChangeSuccess:  "password_change_success",
	MetricPasswordChangeFailure:  "password_change_failure",
	MetricStaleSettlementDropped: "stale_settlement_dropped",
	MetricCacheWriteFailure:      "cache_write_failure",
}

// Name returns the stable string name for a metric ID.
func (id MetricID) Name() string {
	if id >= MetricIDCount {
		return "unknown"
	}
	return metricNames[id]
}

// Config controls metric collection.
type Config struct {
	Enabled bool
}

// Metrics holds one atomic counter per MetricID. All operations on a
// disabled or nil Metrics are no-ops.
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]atomic.Uint64
}

// New creates a Metrics instance.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot is a point-in-time copy of all counters, keyed by metric name.
type Snapshot map[string]uint64

// Snapshot copies every counter. The copy is not atomic across counters;
// individual reads are.
func (m *Metrics) Snapshot() Snapshot {
	out := make(Snapshot, MetricIDCount)
	if m == nil || !m.enabled {
		return out
	}
	for id := MetricID(0); id < MetricIDCount; id++ {
		out[id.Name()] = m.counters[id].Load()
	}
	return out
}
