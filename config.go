package sessionkit

// Config groups machine configuration. Zero value is not usable directly;
// [Builder] starts from defaultConfig and applies caller overrides.
type Config struct {
	Rehydrate RehydrateConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
REHYDRATE CONFIG
====================================
*/

// RehydrateConfig controls startup rehydration behavior.
type RehydrateConfig struct {
	// ClearCacheOnFailure clears the session cache entry whenever
	// rehydration settles rejected. The default is true, matching the
	// collaborator-authoritative contract, but note that a transient
	// network failure at startup is indistinguishable from an explicit
	// rejection and will also discard the hint.
	ClearCacheOnFailure bool
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Rehydrate: RehydrateConfig{
			ClearCacheOnFailure: true,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
