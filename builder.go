package sessionkit

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/mekdim/sessionkit/cache"
	internalaudit "github.com/mekdim/sessionkit/internal/audit"
	internalmetrics "github.com/mekdim/sessionkit/internal/metrics"
)

// Builder assembles a [Machine]. A Builder is single-use: Build may be
// called once.
type Builder struct {
	config    Config
	svc       AuthService
	store     cache.Store
	logger    zerolog.Logger
	auditSink AuditSink

	built bool
}

// New returns a Builder seeded with default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithAuthService sets the network collaborator. Required.
func (b *Builder) WithAuthService(svc AuthService) *Builder {
	b.svc = svc
	return b
}

// WithCache sets the session cache entry store. Defaults to an in-memory
// store, which degrades rehydration to a miss on every process start.
func (b *Builder) WithCache(store cache.Store) *Builder {
	b.store = store
	return b
}

// WithLogger sets the structured logger. Defaults to a nop logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the audit sink and enables audit dispatch.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled toggles in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build wires the machine. The returned machine is in the rehydrating
// state; call [Machine.Start] to settle it.
func (b *Builder) Build() (*Machine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.svc == nil {
		return nil, errors.New("auth service is required")
	}
	b.built = true

	store := b.store
	if store == nil {
		store = cache.NewMemoryStore()
	}

	m := &Machine{
		config:  b.config,
		svc:     b.svc,
		store:   store,
		logger:  b.logger,
		metrics: internalmetrics.New(internalmetrics.Config{Enabled: b.config.Metrics.Enabled}),
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    b.config.Audit.Enabled,
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, b.auditSink),
		subscribers: map[uint64]func(Snapshot){},
		snap:        Snapshot{Loading: true},
	}
	m.flows = m.buildFlows()
	return m, nil
}
