package sessionkit

import (
	"context"

	internalflows "github.com/mekdim/sessionkit/internal/flows"
	internalmetrics "github.com/mekdim/sessionkit/internal/metrics"
)

// Start settles the initial rehydrating state. With no cached entry the
// session becomes anonymous immediately. With a cached hint the machine
// asks the collaborator for the current session: confirmation authenticates
// with the server record (not the stale hint) and refreshes the cache;
// rejection clears the hint and records the failure, after which the
// session is effectively anonymous.
//
// Start is normally called once, right after Build. Calling it again
// re-runs rehydration, which is harmless but not useful.
func (m *Machine) Start(ctx context.Context) {
	op, err := m.begin()
	if err != nil {
		return
	}

	result := m.flows.Rehydrate(ctx)
	switch result.Status {
	case internalflows.RehydrateConfirmed:
		user := fromRecord(result.User)
		m.metrics.Inc(internalmetrics.MetricRehydrateConfirmed)
		m.emitAudit(ctx, "rehydrate", true, user.ID, user.Email, nil, nil)
		m.settle(op, func(s *Snapshot) {
			s.User = user
			s.Authenticated = true
		})
	case internalflows.RehydrateRejected:
		m.metrics.Inc(internalmetrics.MetricRehydrateRejected)
		m.emitAudit(ctx, "rehydrate", false, "", "", result.Err, nil)
		m.settle(op, func(s *Snapshot) {
			s.User = nil
			s.Authenticated = false
			s.Err = errorMessage(result.Err)
		})
	default: // RehydrateMiss
		m.metrics.Inc(internalmetrics.MetricRehydrateMiss)
		m.settle(op, func(s *Snapshot) {
			s.User = nil
			s.Authenticated = false
		})
	}
}
