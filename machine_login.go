package sessionkit

import (
	"context"

	internalflows "github.com/mekdim/sessionkit/internal/flows"
	internalmetrics "github.com/mekdim/sessionkit/internal/metrics"
)

// Login authenticates against the collaborator. On success the session
// becomes authenticated and the cache entry is written. On failure the
// machine records a generic message for passive observers and returns the
// original error so the calling form can map it onto fields (see
// [FieldMessages]).
func (m *Machine) Login(ctx context.Context, creds Credentials) (*User, error) {
	op, err := m.begin()
	if err != nil {
		return nil, err
	}

	record, err := m.flows.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		m.metrics.Inc(internalmetrics.MetricLoginFailure)
		m.emitAudit(ctx, "login", false, "", creds.Email, err, nil)
		m.settle(op, func(s *Snapshot) {
			s.Err = errorMessage(err)
		})
		return nil, err
	}

	user := fromRecord(record)
	m.metrics.Inc(internalmetrics.MetricLoginSuccess)
	m.emitAudit(ctx, "login", true, user.ID, user.Email, nil, nil)
	m.settle(op, func(s *Snapshot) {
		s.User = user
		s.Authenticated = true
	})
	return user, nil
}

// Register creates an account and, on success, signs the new user in. The
// failure contract matches [Machine.Login]: generic message recorded, the
// original error returned for field-level mapping.
func (m *Machine) Register(ctx context.Context, data Registration) (*User, error) {
	op, err := m.begin()
	if err != nil {
		return nil, err
	}

	record, err := m.flows.Register(ctx, internalflows.RegistrationData{
		FullName: data.FullName,
		Email:    data.Email,
		Password: data.Password,
		Phone:    data.Phone,
		Language: data.Language,
	})
	if err != nil {
		m.metrics.Inc(internalmetrics.MetricRegisterFailure)
		m.emitAudit(ctx, "register", false, "", data.Email, err, nil)
		m.settle(op, func(s *Snapshot) {
			s.Err = errorMessage(err)
		})
		return nil, err
	}

	user := fromRecord(record)
	m.metrics.Inc(internalmetrics.MetricRegisterSuccess)
	m.emitAudit(ctx, "register", true, user.ID, user.Email, nil, nil)
	m.settle(op, func(s *Snapshot) {
		s.User = user
		s.Authenticated = true
	})
	return user, nil
}
