package sessionkit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mekdim/sessionkit/cache"
	internalaudit "github.com/mekdim/sessionkit/internal/audit"
	internalflows "github.com/mekdim/sessionkit/internal/flows"
	internalmetrics "github.com/mekdim/sessionkit/internal/metrics"
)

// Machine owns the session state for the lifetime of the client process.
// All mutations go through its operations; consumers read via [Machine.Snapshot]
// or [Machine.Subscribe] and never mutate state directly.
//
// Operations are expected to be invoked serially (a form disables its submit
// control while Loading is true). If two operations do race, the settlement
// of the most recently started one wins; stale settlements are dropped.
type Machine struct {
	config  Config
	svc     AuthService
	store   cache.Store
	logger  zerolog.Logger
	metrics *internalmetrics.Metrics
	audit   *internalaudit.Dispatcher
	flows   internalflows.Service

	mu          sync.Mutex
	snap        Snapshot
	subscribers map[uint64]func(Snapshot)
	nextSubID   uint64
	currentOp   string
	closed      bool

	notifyMu    sync.Mutex
	notifying   bool
	notifyQueue []delivery
}

// delivery is one queued subscriber notification.
type delivery struct {
	snap Snapshot
	subs []func(Snapshot)
}

// Close stops the audit dispatcher. The machine rejects further operations.
func (m *Machine) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	if m.audit != nil {
		m.audit.Close()
	}
}

// Snapshot returns a copy of the current session state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySnapshot(m.snap)
}

// Subscribe registers fn to be called synchronously on every transition,
// starting with the current state. fn may invoke machine operations; a
// transition raised from inside a callback is delivered after the current
// one completes. The returned id cancels via Unsubscribe.
func (m *Machine) Subscribe(fn func(Snapshot)) uint64 {
	m.mu.Lock()
	m.nextSubID++
	id := m.nextSubID
	m.subscribers[id] = fn
	snap := copySnapshot(m.snap)
	m.mu.Unlock()

	fn(snap)
	return id
}

// Unsubscribe removes a subscriber. Removing an unknown id is a no-op, so a
// torn-down consumer can always unsubscribe safely.
func (m *Machine) Unsubscribe(id uint64) {
	m.mu.Lock()
	delete(m.subscribers, id)
	m.mu.Unlock()
}

// MetricsSnapshot returns a copy of the machine's counters.
func (m *Machine) MetricsSnapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return m.metrics.Snapshot()
}

// AuditDropped reports audit events discarded due to a full buffer.
func (m *Machine) AuditDropped() uint64 {
	if m == nil {
		return 0
	}
	return m.audit.Dropped()
}

// ClearError resets the error message without otherwise changing state.
func (m *Machine) ClearError() {
	m.mu.Lock()
	if m.snap.Err == "" {
		m.mu.Unlock()
		return
	}
	m.snap.Err = ""
	snap := copySnapshot(m.snap)
	subs := m.subscriberList()
	m.mu.Unlock()

	m.publish(snap, subs)
}

/*
====================================
TRANSITION PLUMBING
====================================
*/

// begin starts an operation: clears the prior error, raises Loading, and
// issues the operation token used for last-writer-wins settlement.
func (m *Machine) begin() (string, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return "", ErrMachineClosed
	}
	op := uuid.NewString()
	m.currentOp = op
	m.snap.Err = ""
	m.snap.Loading = true
	snap := copySnapshot(m.snap)
	subs := m.subscriberList()
	m.mu.Unlock()

	m.publish(snap, subs)
	return op, nil
}

// settle applies fn to the snapshot and lowers Loading, but only when op is
// still the most recently started operation. A stale settlement is dropped.
func (m *Machine) settle(op string, fn func(*Snapshot)) {
	m.mu.Lock()
	if op != m.currentOp {
		m.mu.Unlock()
		m.metrics.Inc(internalmetrics.MetricStaleSettlementDropped)
		return
	}
	fn(&m.snap)
	m.snap.Loading = false
	snap := copySnapshot(m.snap)
	subs := m.subscriberList()
	m.mu.Unlock()

	m.publish(snap, subs)
}

func (m *Machine) subscriberList() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		out = append(out, fn)
	}
	return out
}

// publish delivers a snapshot to subscribers in transition order. Delivery
// is queued: a callback that itself triggers a transition (for example
// calling ClearError from the error banner) enqueues it for the active
// drainer instead of deadlocking on a held lock.
func (m *Machine) publish(snap Snapshot, subs []func(Snapshot)) {
	m.notifyMu.Lock()
	m.notifyQueue = append(m.notifyQueue, delivery{snap: snap, subs: subs})
	if m.notifying {
		m.notifyMu.Unlock()
		return
	}
	m.notifying = true
	for len(m.notifyQueue) > 0 {
		d := m.notifyQueue[0]
		m.notifyQueue = m.notifyQueue[1:]
		m.notifyMu.Unlock()
		for _, fn := range d.subs {
			fn(d.snap)
		}
		m.notifyMu.Lock()
	}
	m.notifying = false
	m.notifyMu.Unlock()
}

func copySnapshot(s Snapshot) Snapshot {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

/*
====================================
FLOW WIRING
====================================
*/

func (m *Machine) buildFlows() internalflows.Service {
	saveUser := func(ctx context.Context, user internalflows.UserRecord) error {
		entry, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return m.store.Save(ctx, entry)
	}
	onCacheError := func(err error) {
		m.metrics.Inc(internalmetrics.MetricCacheWriteFailure)
		m.logger.Warn().Err(err).Msg("session cache operation failed")
	}

	return internalflows.New(internalflows.Deps{
		Login: internalflows.LoginDeps{
			Authenticate: func(ctx context.Context, email, password string) (internalflows.UserRecord, error) {
				user, err := m.svc.Login(ctx, Credentials{Email: email, Password: password})
				if err != nil {
					return internalflows.UserRecord{}, err
				}
				return toRecord(*user), nil
			},
			SaveUser:     saveUser,
			OnCacheError: onCacheError,
		},
		Register: internalflows.RegisterDeps{
			CreateAccount: func(ctx context.Context, data internalflows.RegistrationData) (internalflows.UserRecord, error) {
				user, err := m.svc.Register(ctx, Registration{
					FullName: data.FullName,
					Email:    data.Email,
					Password: data.Password,
					Phone:    data.Phone,
					Language: data.Language,
				})
				if err != nil {
					return internalflows.UserRecord{}, err
				}
				return toRecord(*user), nil
			},
			SaveUser:     saveUser,
			OnCacheError: onCacheError,
		},
		Logout: internalflows.LogoutDeps{
			RemoteLogout: func(ctx context.Context) error {
				return m.svc.Logout(ctx)
			},
			ClearCache: m.store.Clear,
			OnRemoteError: func(err error) {
				m.metrics.Inc(internalmetrics.MetricLogoutRemoteFailure)
				m.logger.Warn().Err(err).Msg("remote logout failed; local session cleared anyway")
			},
			OnCacheError: onCacheError,
		},
		Rehydrate: internalflows.RehydrateDeps{
			LoadCached: func(ctx context.Context) (internalflows.UserRecord, bool, error) {
				entry, err := m.store.Load(ctx)
				if err == cache.ErrNoEntry {
					return internalflows.UserRecord{}, false, nil
				}
				if err != nil {
					return internalflows.UserRecord{}, false, err
				}
				var user internalflows.UserRecord
				if err := json.Unmarshal(entry, &user); err != nil {
					// Corrupt entry: drop it and treat the load as a miss,
					// so the next startup does not re-read the same junk.
					if cerr := m.store.Clear(ctx); cerr != nil {
						m.logger.Warn().Err(cerr).Msg("failed to drop corrupt session cache entry")
					}
					return internalflows.UserRecord{}, false, err
				}
				return user, true, nil
			},
			FetchCurrent: func(ctx context.Context) (internalflows.UserRecord, error) {
				user, err := m.svc.CurrentUser(ctx)
				if err != nil {
					return internalflows.UserRecord{}, err
				}
				return toRecord(*user), nil
			},
			SaveUser:       saveUser,
			ClearCache:     m.store.Clear,
			ClearOnFailure: m.config.Rehydrate.ClearCacheOnFailure,
			OnCacheError:   onCacheError,
		},
		Update: internalflows.UpdateDeps{
			SaveUser:     saveUser,
			OnCacheError: onCacheError,
		},
	})
}

func toRecord(u User) internalflows.UserRecord {
	return internalflows.UserRecord{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Language: u.Language,
	}
}

func fromRecord(r internalflows.UserRecord) *User {
	return &User{
		ID:       r.ID,
		FullName: r.FullName,
		Email:    r.Email,
		Role:     r.Role,
		Language: r.Language,
	}
}

func (m *Machine) emitAudit(ctx context.Context, operation string, success bool, userID, email string, opErr error, metadata map[string]string) {
	if m.audit == nil {
		return
	}
	event := internalaudit.Event{
		Timestamp: time.Now(),
		Operation: operation,
		UserID:    userID,
		Email:     email,
		Success:   success,
		Metadata:  metadata,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	m.audit.Emit(ctx, event)
}
