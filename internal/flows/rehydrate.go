package flows

import "context"

// RehydrateStatus describes how startup rehydration settled.
type RehydrateStatus uint8

const (
	// RehydrateMiss: no cached entry; the client starts anonymous.
	RehydrateMiss RehydrateStatus = iota
	// RehydrateConfirmed: the collaborator confirmed the cached hint; the
	// returned user is the server record, not the stale cached one.
	RehydrateConfirmed
	// RehydrateRejected: the collaborator rejected the cached hint or was
	// unreachable; the client falls back to anonymous.
	RehydrateRejected
)

// RehydrateResult is returned by RunRehydrate.
type RehydrateResult struct {
	Status RehydrateStatus
	User   UserRecord
	Err    error
}

// RehydrateDeps captures rehydration flow dependencies.
type RehydrateDeps struct {
	LoadCached   func(ctx context.Context) (UserRecord, bool, error)
	FetchCurrent func(ctx context.Context) (UserRecord, error)
	SaveUser     func(ctx context.Context, user UserRecord) error
	ClearCache   func(ctx context.Context) error
	// ClearOnFailure controls whether a rejected rehydration also clears
	// the cache entry. Note that a plain network failure is treated the
	// same as an explicit rejection here, so a transient outage at startup
	// discards the hint and signs the user out locally.
	ClearOnFailure bool
	OnCacheError   func(error)
}

// RunRehydrate restores the session from the cached hint, subject to
// collaborator confirmation. The cache is only a hint: the collaborator's
// answer always wins, overwriting or clearing the entry.
func RunRehydrate(ctx context.Context, deps RehydrateDeps) RehydrateResult {
	_, ok, err := deps.LoadCached(ctx)
	if err != nil && deps.OnCacheError != nil {
		deps.OnCacheError(err)
	}
	if !ok {
		return RehydrateResult{Status: RehydrateMiss}
	}

	user, err := deps.FetchCurrent(ctx)
	if err != nil {
		if deps.ClearOnFailure {
			if cerr := deps.ClearCache(ctx); cerr != nil && deps.OnCacheError != nil {
				deps.OnCacheError(cerr)
			}
		}
		return RehydrateResult{Status: RehydrateRejected, Err: err}
	}

	if err := deps.SaveUser(ctx, user); err != nil && deps.OnCacheError != nil {
		deps.OnCacheError(err)
	}
	return RehydrateResult{Status: RehydrateConfirmed, User: user}
}
