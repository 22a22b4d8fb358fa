package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	RemoteLogout  func(ctx context.Context) error
	ClearCache    func(ctx context.Context) error
	OnRemoteError func(error)
	OnCacheError  func(error)
}

// RunLogout performs a best-effort remote sign-out and unconditionally
// clears the session cache entry. It never returns an error: a user must
// not stay signed in locally because the sign-out request failed.
func RunLogout(ctx context.Context, deps LogoutDeps) {
	if err := deps.RemoteLogout(ctx); err != nil && deps.OnRemoteError != nil {
		deps.OnRemoteError(err)
	}
	if err := deps.ClearCache(ctx); err != nil && deps.OnCacheError != nil {
		deps.OnCacheError(err)
	}
}
