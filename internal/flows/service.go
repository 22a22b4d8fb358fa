package flows

import "context"

// Service is the centralized flow runner built once by the root machine.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Login.Authenticate != nil
}

func (s Service) Login(ctx context.Context, email, password string) (UserRecord, error) {
	return RunLogin(ctx, email, password, s.deps.Login)
}

func (s Service) Register(ctx context.Context, data RegistrationData) (UserRecord, error) {
	return RunRegister(ctx, data, s.deps.Register)
}

func (s Service) Logout(ctx context.Context) {
	RunLogout(ctx, s.deps.Logout)
}

func (s Service) Rehydrate(ctx context.Context) RehydrateResult {
	return RunRehydrate(ctx, s.deps.Rehydrate)
}

func (s Service) Update(ctx context.Context, user UserRecord) {
	RunUpdate(ctx, user, s.deps.Update)
}
