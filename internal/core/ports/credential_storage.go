package ports

import (
	"context"

	"localshop/internal/core/domain/model/identity"
)

// Credentials is the persisted remainder of an authenticated session:
// the bearer token and the user it was issued to. It is what lets a
// restarted client resume without asking for the password again.
type Credentials struct {
	Token string
	User  identity.UserRef
}

// CredentialStorage persists credentials across client restarts.
type CredentialStorage interface {
	// Load retrieves the stored credentials.
	// Returns ObjectNotFoundError when nothing is stored.
	Load(ctx context.Context) (Credentials, error)

	// Save stores the credentials, replacing any previous ones.
	Save(ctx context.Context, creds Credentials) error

	// Clear removes the stored credentials. Clearing an empty storage is
	// not an error.
	Clear(ctx context.Context) error
}
