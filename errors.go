package sessionkit

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials is returned when the collaborator rejects the
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked is returned when the account is locked; the wrapped
	// RemoteError may carry the unlock time.
	ErrAccountLocked = errors.New("account locked")
	// ErrEmailNotVerified is returned when sign-in requires a verified email.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrDuplicateEmail is returned when registration hits an existing email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrRemoteValidation is returned when the collaborator rejects the
	// payload; the wrapped RemoteError carries the field map.
	ErrRemoteValidation = errors.New("remote validation failed")
	// ErrNotAuthenticated is returned by operations that require an
	// authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrMachineClosed is returned by operations on a closed machine.
	ErrMachineClosed = errors.New("session machine closed")
	// ErrPasswordChangeUnsupported is returned when the configured
	// collaborator does not implement PasswordChanger.
	ErrPasswordChangeUnsupported = errors.New("collaborator does not support password change")
)

// ErrorCode is the machine-readable code carried by a RemoteError.
type ErrorCode string

// Codes the calling form is expected to pattern-match on. Any other code is
// opaque and surfaces only through the generic error message.
const (
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeAccountLocked      ErrorCode = "ACCOUNT_LOCKED"
	CodeEmailNotVerified   ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeDuplicateEmail     ErrorCode = "DUPLICATE_EMAIL"
)

// ErrorDetails is the optional structured payload of a RemoteError.
type ErrorDetails struct {
	// LockoutUntil accompanies CodeAccountLocked.
	LockoutUntil *time.Time `json:"lockout_until,omitempty"`
	// Fields accompanies CodeValidationError: field name to messages.
	Fields map[string][]string `json:"fields,omitempty"`
}

// RemoteError is the tagged failure result of a collaborator call. Callers
// match on Code (directly or via errors.Is against the sentinel vars)
// instead of inspecting dynamic properties of an opaque error.
type RemoteError struct {
	Code    ErrorCode
	Message string
	Details ErrorDetails
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return string(e.Code)
	}
	return "remote error"
}

// Is maps known codes onto the package sentinel errors so that
// errors.Is(err, ErrInvalidCredentials) works through wrapping.
func (e *RemoteError) Is(target error) bool {
	switch e.Code {
	case CodeInvalidCredentials:
		return target == ErrInvalidCredentials
	case CodeAccountLocked:
		return target == ErrAccountLocked
	case CodeEmailNotVerified:
		return target == ErrEmailNotVerified
	case CodeValidationError:
		return target == ErrRemoteValidation
	case CodeDuplicateEmail:
		return target == ErrDuplicateEmail
	}
	return false
}

// errorMessage derives the generic human-readable message the machine
// records in its snapshot for passive observers.
func errorMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		if re.Message != "" {
			return re.Message
		}
		switch re.Code {
		case CodeInvalidCredentials:
			return "Invalid email or password."
		case CodeAccountLocked:
			return "Account is temporarily locked."
		case CodeEmailNotVerified:
			return "Email address is not verified."
		case CodeValidationError:
			return "Some fields were rejected."
		case CodeDuplicateEmail:
			return "An account with this email already exists."
		}
	}
	return err.Error()
}
