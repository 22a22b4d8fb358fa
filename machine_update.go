package sessionkit

import (
	"context"

	internalmetrics "github.com/mekdim/sessionkit/internal/metrics"
)

// UpdateUser overwrites the in-memory user and the cache entry with a
// locally projected change (profile edit already accepted by the backend).
// No network call is made; the session stays authenticated.
func (m *Machine) UpdateUser(ctx context.Context, user User) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMachineClosed
	}
	if !m.snap.Authenticated {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	u := user
	m.snap.User = &u
	snap := copySnapshot(m.snap)
	subs := m.subscriberList()
	m.mu.Unlock()

	m.flows.Update(ctx, toRecord(user))
	m.metrics.Inc(internalmetrics.MetricUserUpdated)
	m.emitAudit(ctx, "update_user", true, user.ID, user.Email, nil, nil)
	m.publish(snap, subs)
	return nil
}

// ChangePassword forwards a validated password change to the collaborator
// when it implements [PasswordChanger]. The session stays authenticated
// throughout; failures follow the login contract (generic message recorded,
// original error returned).
func (m *Machine) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	changer, ok := m.svc.(PasswordChanger)
	if !ok {
		return ErrPasswordChangeUnsupported
	}

	m.mu.Lock()
	if !m.snap.Authenticated {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	var userID, email string
	if m.snap.User != nil {
		userID = m.snap.User.ID
		email = m.snap.User.Email
	}
	m.mu.Unlock()

	op, err := m.begin()
	if err != nil {
		return err
	}

	if err := changer.ChangePassword(ctx, currentPassword, newPassword); err != nil {
		m.metrics.Inc(internalmetrics.MetricPasswordChangeFailure)
		m.emitAudit(ctx, "change_password", false, userID, email, err, nil)
		m.settle(op, func(s *Snapshot) {
			s.Err = errorMessage(err)
		})
		return err
	}

	m.metrics.Inc(internalmetrics.MetricPasswordChangeSuccess)
	m.emitAudit(ctx, "change_password", true, userID, email, nil, nil)
	m.settle(op, func(s *Snapshot) {})
	return nil
}
