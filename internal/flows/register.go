package flows

import "context"

// RegistrationData is the normalized registration payload handed to the
// collaborator.
type RegistrationData struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Language string
}

// RegisterDeps captures registration flow dependencies.
type RegisterDeps struct {
	CreateAccount func(ctx context.Context, data RegistrationData) (UserRecord, error)
	SaveUser      func(ctx context.Context, user UserRecord) error
	OnCacheError  func(error)
}

// RunRegister creates the account and, on success, writes the session cache
// entry. Same cache policy as login: a write failure is reported but never
// fails the operation.
func RunRegister(ctx context.Context, data RegistrationData, deps RegisterDeps) (UserRecord, error) {
	user, err := deps.CreateAccount(ctx, data)
	if err != nil {
		return UserRecord{}, err
	}
	if err := deps.SaveUser(ctx, user); err != nil && deps.OnCacheError != nil {
		deps.OnCacheError(err)
	}
	return user, nil
}
