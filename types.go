package sessionkit

import (
	"context"
	"io"

	internalaudit "github.com/mekdim/sessionkit/internal/audit"
	internalmetrics "github.com/mekdim/sessionkit/internal/metrics"
)

// User is the identity record the machine holds while authenticated.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Language string `json:"language_preference"`
}

// Credentials is the normalized login payload, typically produced by
// validate.Login.
type Credentials struct {
	Email    string
	Password string
}

// Registration is the normalized sign-up payload, typically produced by
// validate.Registration.
type Registration struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Language string
}

// Snapshot is the externally visible session state. Authenticated implies
// User is non-nil; Loading is true while an operation is in flight,
// including the initial rehydration.
type Snapshot struct {
	User          *User
	Authenticated bool
	Loading       bool
	Err           string
}

// AuthService is the network collaborator contract the machine consumes.
// Implementations perform the actual credential verification; failures
// should be *RemoteError values so callers can match on the code.
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (*User, error)
	Register(ctx context.Context, data Registration) (*User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*User, error)
}

// PasswordChanger is an optional collaborator capability. When the
// configured AuthService also implements it, [Machine.ChangePassword]
// becomes available.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

// AuditEvent is a structured audit record emitted by the machine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the machine's dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricsSnapshot is a point-in-time copy of the machine's counters, keyed
// by metric name.
type MetricsSnapshot = internalmetrics.Snapshot
