package flows

import "context"

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	Authenticate func(ctx context.Context, email, password string) (UserRecord, error)
	SaveUser     func(ctx context.Context, user UserRecord) error
	OnCacheError func(error)
}

// RunLogin authenticates against the collaborator and, on success, writes
// the session cache entry. A cache write failure does not fail the login:
// the entry is a rehydration hint, not the session of record.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) (UserRecord, error) {
	user, err := deps.Authenticate(ctx, email, password)
	if err != nil {
		return UserRecord{}, err
	}
	if err := deps.SaveUser(ctx, user); err != nil && deps.OnCacheError != nil {
		deps.OnCacheError(err)
	}
	return user, nil
}
