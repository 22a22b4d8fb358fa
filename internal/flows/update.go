package flows

import "context"

// UpdateDeps captures local user-update flow dependencies.
type UpdateDeps struct {
	SaveUser     func(ctx context.Context, user UserRecord) error
	OnCacheError func(error)
}

// RunUpdate refreshes the cache entry for a locally projected user change.
// No collaborator call is involved.
func RunUpdate(ctx context.Context, user UserRecord, deps UpdateDeps) {
	if err := deps.SaveUser(ctx, user); err != nil && deps.OnCacheError != nil {
		deps.OnCacheError(err)
	}
}
