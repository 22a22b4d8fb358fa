package sessionkit

import (
	"context"

	internalmetrics "github.com/mekdim/sessionkit/internal/metrics"
)

// Logout signs the user out. The remote call is best-effort: its failure is
// logged and swallowed, and local state plus the cache entry are cleared
// regardless. Logout therefore has no error to return — a user must never
// stay authenticated locally because of a network hiccup on sign-out.
func (m *Machine) Logout(ctx context.Context) {
	op, err := m.begin()
	if err != nil {
		return
	}

	m.mu.Lock()
	var userID, email string
	if m.snap.User != nil {
		userID = m.snap.User.ID
		email = m.snap.User.Email
	}
	m.mu.Unlock()

	m.flows.Logout(ctx)

	m.metrics.Inc(internalmetrics.MetricLogout)
	m.emitAudit(ctx, "logout", true, userID, email, nil, nil)
	m.settle(op, func(s *Snapshot) {
		s.User = nil
		s.Authenticated = false
	})
}
