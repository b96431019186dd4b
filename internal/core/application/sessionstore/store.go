package sessionstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"localshop/internal/core/domain/model/identity"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v4"
)

// Store holds the client's authentication session and keeps it in sync with
// the remote store and the local credential storage.
//
// The session moves through three states:
//
//	SessionUnknown ──Rehydrate──> SessionAnonymous or SessionAuthenticated
//
// SessionUnknown only exists between construction and the first Rehydrate;
// route gating treats it as "hold, not yet decided". All methods are safe
// for concurrent use.
type Store struct {
	api     ports.AuthAPI
	storage ports.CredentialStorage

	mu      sync.RWMutex
	session identity.Session
}

// NewStore creates a session store over the given auth API and credential
// storage. The session starts in SessionUnknown until Rehydrate runs.
func NewStore(api ports.AuthAPI, storage ports.CredentialStorage) (*Store, error) {
	if api == nil {
		return nil, errs.NewValueIsRequiredError("api")
	}
	if storage == nil {
		return nil, errs.NewValueIsRequiredError("storage")
	}

	return &Store{
		api:     api,
		storage: storage,
		session: identity.Session{Status: identity.SessionUnknown},
	}, nil
}

// Snapshot returns the current session by value.
func (s *Store) Snapshot() identity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the current bearer token, or the empty string while the
// session is not authenticated. Suitable as a token source for the API
// client.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Rehydrate resumes a previous session from credential storage. It loads
// the persisted token, verifies it against the remote store and adopts the
// verified identity.
//
// Outcomes:
//   - nothing stored: the session settles to SessionAnonymous
//   - token rejected by the store: credentials are cleared and the session
//     settles to SessionAnonymous
//   - store unreachable: the persisted identity is adopted optimistically
//     and the transport error returned; a later 401 will invalidate it
func (s *Store) Rehydrate(ctx context.Context) error {
	creds, err := s.storage.Load(ctx)
	if err != nil {
		s.setAnonymous()
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	s.setAuthenticated(creds.User, creds.Token)

	user, err := s.api.FetchIdentity(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrAuth) {
			s.Invalidate(ctx)
			return nil
		}
		return err
	}

	s.setAuthenticated(user, creds.Token)
	return s.storage.Save(ctx, ports.Credentials{Token: creds.Token, User: user})
}

// Login exchanges credentials for an authenticated session and persists it.
func (s *Store) Login(ctx context.Context, email, password string) (identity.UserRef, error) {
	if email == "" {
		return identity.UserRef{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return identity.UserRef{}, errs.NewValueIsRequiredError("password")
	}

	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return identity.UserRef{}, err
	}

	s.setAuthenticated(result.User, result.Token)
	if err := s.storage.Save(ctx, ports.Credentials{Token: result.Token, User: result.User}); err != nil {
		return result.User, err
	}
	return result.User, nil
}

// Register creates a new account, signs it in and persists the session.
func (s *Store) Register(ctx context.Context, req ports.RegisterRequest) (identity.UserRef, error) {
	if err := errors.Join(
		requireField("displayName", req.DisplayName),
		requireField("email", req.Email),
		requireField("password", req.Password),
		req.Role.Validate(),
	); err != nil {
		return identity.UserRef{}, err
	}

	result, err := s.api.Register(ctx, req)
	if err != nil {
		return identity.UserRef{}, err
	}

	s.setAuthenticated(result.User, result.Token)
	if err := s.storage.Save(ctx, ports.Credentials{Token: result.Token, User: result.User}); err != nil {
		return result.User, err
	}
	return result.User, nil
}

// Logout ends the session. The remote logout is best effort: the local
// session and stored credentials are discarded regardless of whether the
// remote store could be reached. Logging out an anonymous session is a
// no-op.
func (s *Store) Logout(ctx context.Context) error {
	if !s.Snapshot().IsAuthenticated() {
		return nil
	}

	_ = s.api.Logout(ctx)

	s.setAnonymous()
	return s.storage.Clear(ctx)
}

// FetchIdentity refreshes the session's user from the remote store and
// persists the refreshed identity. Requires an authenticated session.
func (s *Store) FetchIdentity(ctx context.Context) (identity.UserRef, error) {
	snapshot := s.Snapshot()
	if !snapshot.IsAuthenticated() {
		return identity.UserRef{}, errs.NewAuthError("fetch identity: session is not authenticated")
	}

	user, err := s.api.FetchIdentity(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrAuth) {
			s.Invalidate(ctx)
		}
		return identity.UserRef{}, err
	}

	s.setAuthenticated(user, snapshot.Token)
	if err := s.storage.Save(ctx, ports.Credentials{Token: snapshot.Token, User: user}); err != nil {
		return user, err
	}
	return user, nil
}

// RefreshIfExpired inspects the current token's exp claim and invalidates
// the session when the token has expired. The store issues no refresh
// tokens, so an expired session can only be resumed by logging in again.
//
// Returns true when the session was invalidated. Tokens without a readable
// exp claim are left alone; the remote store rejects them with a 401 on the
// next call, which invalidates the session through the usual path.
func (s *Store) RefreshIfExpired(ctx context.Context, now time.Time) (bool, error) {
	snapshot := s.Snapshot()
	if !snapshot.IsAuthenticated() {
		return false, nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(snapshot.Token, claims); err != nil {
		return false, nil
	}
	if claims.ExpiresAt == nil || now.Before(claims.ExpiresAt.Time) {
		return false, nil
	}

	s.setAnonymous()
	if err := s.storage.Clear(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Invalidate drops the session in response to the remote store rejecting
// the token. It is wired as the API client's unauthorized hook and is
// idempotent.
func (s *Store) Invalidate(ctx context.Context) {
	s.setAnonymous()
	_ = s.storage.Clear(ctx)
}

func (s *Store) setAuthenticated(user identity.UserRef, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = identity.Session{
		Status: identity.SessionAuthenticated,
		User:   &user,
		Token:  token,
	}
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = identity.Session{Status: identity.SessionAnonymous}
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
