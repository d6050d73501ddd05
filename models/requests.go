package models

// ExternalAccountRequest carries the identity assertion produced by an
// OAuth sign-in. Picture is optional; everything else is required.
type ExternalAccountRequest struct {
	Provider    Provider
	ProviderID  string
	DisplayName string
	Email       string
	Picture     *string
}

// RegisterUserRequest carries a local-credential registration.
type RegisterUserRequest struct {
	Email    string
	Name     string
	Password string
}

// VerifyUserRequest carries a local-credential login attempt. Provider
// defaults to EMAIL when left empty.
type VerifyUserRequest struct {
	Email    string
	Password string
	Provider Provider
}

// RegisterUserResult returns only the identifiers of the freshly
// provisioned records, never the user record itself.
type RegisterUserResult struct {
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
}
