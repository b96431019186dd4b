package backendapi

import (
	"context"
	"errors"
	"net/http"

	"localshop/internal/core/domain/model/identity"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"
)

// AuthClient implements ports.AuthAPI against the store's auth endpoints.
type AuthClient struct {
	client *Client
}

// NewAuthClient creates an auth client over the shared store client.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

// authResponseDTO is the wire shape of a successful login or registration.
// These two endpoints answer outside the standard data envelope.
type authResponseDTO struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

func (dto authResponseDTO) toDomain() (ports.AuthResult, error) {
	user, err := dto.User.toDomain()
	if err != nil {
		return ports.AuthResult{}, err
	}
	return ports.AuthResult{User: user, Token: dto.Token}, nil
}

// Login exchanges credentials for an authenticated user and token.
func (c *AuthClient) Login(ctx context.Context, email, password string) (ports.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var dto authResponseDTO
	if err := c.client.do(ctx, http.MethodPost, "/auth/login", body, &dto, false); err != nil {
		return ports.AuthResult{}, wrapAuthErr("login", err)
	}
	return dto.toDomain()
}

// Register creates a new account and signs it in.
func (c *AuthClient) Register(ctx context.Context, req ports.RegisterRequest) (ports.AuthResult, error) {
	body := map[string]string{
		"name":     req.DisplayName,
		"email":    req.Email,
		"password": req.Password,
		"address":  req.Address,
		"role":     req.Role.String(),
	}

	var dto authResponseDTO
	if err := c.client.do(ctx, http.MethodPost, "/auth/register", body, &dto, false); err != nil {
		return ports.AuthResult{}, wrapAuthErr("register", err)
	}
	return dto.toDomain()
}

// FetchIdentity resolves the current token to its user.
func (c *AuthClient) FetchIdentity(ctx context.Context) (identity.UserRef, error) {
	var dto userDTO
	if err := c.client.do(ctx, http.MethodGet, "/users/me", nil, &dto, true); err != nil {
		return identity.UserRef{}, wrapAuthErr("fetch identity", err)
	}
	return dto.toDomain()
}

// Logout invalidates the current token on the store.
func (c *AuthClient) Logout(ctx context.Context) error {
	if err := c.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil, false); err != nil {
		return wrapAuthErr("logout", err)
	}
	return nil
}

// wrapAuthErr turns non-auth failures of auth endpoints into AuthError.
// 401 responses already arrive as AuthError from the shared client.
func wrapAuthErr(op string, err error) error {
	var authErr *errs.AuthError
	if errors.As(err, &authErr) {
		return err
	}
	return errs.NewAuthErrorWithCause(op, err)
}
