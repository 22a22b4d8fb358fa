package sessionkit

import (
	"errors"

	"github.com/mekdim/sessionkit/validate"
)

// FieldMessages maps a failed submission onto field-indexed messages for
// form display. It understands local [validate.Violations] and the
// classified remote codes; anything else yields nil, meaning the form
// should fall back to its general error banner.
func FieldMessages(err error) map[string][]string {
	if err == nil {
		return nil
	}

	var violations validate.Violations
	if errors.As(err, &violations) {
		return violations
	}

	var re *RemoteError
	if !errors.As(err, &re) {
		return nil
	}

	switch re.Code {
	case CodeInvalidCredentials:
		// Deliberately ambiguous: name both fields so neither leaks which
		// one was wrong.
		msg := "Invalid email or password."
		return map[string][]string{
			"email":    {msg},
			"password": {msg},
		}
	case CodeAccountLocked:
		msg := "Account is temporarily locked."
		if re.Details.LockoutUntil != nil {
			msg = "Account is locked until " + re.Details.LockoutUntil.Format("15:04:05") + "."
		}
		return map[string][]string{"email": {msg}}
	case CodeEmailNotVerified:
		return map[string][]string{"email": {"Please verify your email address before signing in."}}
	case CodeDuplicateEmail:
		return map[string][]string{"email": {"An account with this email already exists."}}
	case CodeValidationError:
		if len(re.Details.Fields) == 0 {
			return nil
		}
		out := make(map[string][]string, len(re.Details.Fields))
		for field, msgs := range re.Details.Fields {
			out[field] = append([]string(nil), msgs...)
		}
		return out
	}
	return nil
}
