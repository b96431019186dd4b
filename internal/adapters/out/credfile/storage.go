// Package credfile persists session credentials as a JSON file so a
// restarted client can resume its session without asking for the password
// again.
package credfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"localshop/internal/core/domain/model/identity"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"
)

// Storage implements ports.CredentialStorage on a single JSON file.
// Writes go through a temp file and rename, so a crash mid-write never
// leaves a torn credentials file behind.
type Storage struct {
	path string
}

// NewStorage creates a storage backed by the file at path. The file and
// its directory are created on first Save.
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		return nil, errs.NewValueIsRequiredError("path")
	}
	return &Storage{path: path}, nil
}

// credentialsDTO is the on-disk shape of stored credentials.
type credentialsDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func fromDomain(creds ports.Credentials) credentialsDTO {
	return credentialsDTO{
		Token: creds.Token,
		User: userDTO{
			ID:      creds.User.ID().String(),
			Role:    creds.User.Role().String(),
			Name:    creds.User.DisplayName(),
			Address: creds.User.Address(),
		},
	}
}

func (dto credentialsDTO) toDomain() (ports.Credentials, error) {
	id, err := kernel.NewID(dto.User.ID)
	if err != nil {
		return ports.Credentials{}, err
	}
	role, err := identity.ParseRole(dto.User.Role)
	if err != nil {
		return ports.Credentials{}, err
	}
	user, err := identity.NewUserRef(id, role, dto.User.Name, dto.User.Address)
	if err != nil {
		return ports.Credentials{}, err
	}
	return ports.Credentials{Token: dto.Token, User: user}, nil
}

// Load retrieves the stored credentials.
func (s *Storage) Load(_ context.Context) (ports.Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ports.Credentials{}, errs.NewObjectNotFoundErrorWithCause("credentials", s.path, err)
		}
		return ports.Credentials{}, err
	}

	var dto credentialsDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		// a corrupt file is as good as no file
		return ports.Credentials{}, errs.NewObjectNotFoundErrorWithCause("credentials", s.path, err)
	}
	return dto.toDomain()
}

// Save stores the credentials, replacing any previous ones.
func (s *Storage) Save(_ context.Context, creds ports.Credentials) error {
	raw, err := json.MarshalIndent(fromDomain(creds), "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Clear removes the stored credentials.
func (s *Storage) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
