package flows

// UserRecord is the flow-level view of the authenticated user. The root
// package converts between this and its public User type.
type UserRecord struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Language string `json:"language_preference"`
}

// Deps groups flow dependency sets. The root machine builds this once and
// delegates each operation to the matching flow.
type Deps struct {
	Login     LoginDeps
	Register  RegisterDeps
	Logout    LogoutDeps
	Rehydrate RehydrateDeps
	Update    UpdateDeps
}
