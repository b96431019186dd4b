// Package ports defines the outbound contracts of the application layer.
// These interfaces establish contracts between the application services and
// the remote store's API, local credential storage, and the realtime
// tracking channel, enabling dependency inversion and testability.
package ports

import (
	"context"

	"localshop/internal/core/domain/model/identity"
)

// AuthResult is the outcome of a successful login or registration:
// the authenticated user and the bearer token issued for them.
type AuthResult struct {
	User  identity.UserRef
	Token string
}

// RegisterRequest carries the fields a new account is created from.
// Address is only meaningful for customer accounts and may be empty.
type RegisterRequest struct {
	DisplayName string
	Email       string
	Password    string
	Address     string
	Role        identity.Role
}

// AuthAPI defines the authentication contract with the remote store.
type AuthAPI interface {
	// Login exchanges credentials for an authenticated user and token.
	// Returns AuthError when the credentials are rejected.
	Login(ctx context.Context, email, password string) (AuthResult, error)

	// Register creates a new account and signs it in, returning the new
	// user and token in one round trip.
	Register(ctx context.Context, req RegisterRequest) (AuthResult, error)

	// FetchIdentity resolves the current token to its user.
	// Returns AuthError when the token is missing, expired or revoked.
	FetchIdentity(ctx context.Context) (identity.UserRef, error)

	// Logout invalidates the current token on the remote store.
	// The local session is discarded regardless of the outcome.
	Logout(ctx context.Context) error
}
