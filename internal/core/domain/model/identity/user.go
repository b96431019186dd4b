package identity

import (
	"errors"

	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/pkg/errs"
	"localshop/internal/pkg/guard"
)

// ErrUserRefIsNotConstructed is returned when a UserRef instance was not
// created through the NewUserRef factory method.
var ErrUserRefIsNotConstructed = errors.New("UserRef must be created via NewUserRef constructor")

// UserRef is the client's reference to a user known to the remote store.
// It carries the identity attributes the coordination core branches on:
// the store-assigned id, the immutable role, a display name, and an
// optional address used to prefill delivery details.
//
// UserRef follows these invariants:
//   - Must have a valid store-assigned identifier
//   - Must have a valid role
//   - Display name must not be empty
//   - Can only be created through the NewUserRef constructor
type UserRef struct { //nolint:recvcheck //using for validation
	id          kernel.ID
	role        Role
	displayName string
	address     string

	guard guard.ConstructorGuard
}

// NewUserRef creates a UserRef with validation. The address is optional and
// may be empty.
func NewUserRef(id kernel.ID, role Role, displayName string, address string) (UserRef, error) {
	user := UserRef{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		user.setID(id),
		user.setRole(role),
		user.setDisplayName(displayName),
	); err != nil {
		return UserRef{}, err
	}

	return user, nil
}

// Validate ensures the UserRef was properly constructed through NewUserRef.
func (u UserRef) Validate() error {
	return u.guard.Validate(ErrUserRefIsNotConstructed)
}

// ID returns the store-assigned identifier.
func (u UserRef) ID() kernel.ID {
	return u.id
}

// Role returns the user's role.
func (u UserRef) Role() Role {
	return u.role
}

// DisplayName returns the name shown for the user.
func (u UserRef) DisplayName() string {
	return u.displayName
}

// Address returns the user's address, or the empty string when none is set.
func (u UserRef) Address() string {
	return u.address
}

// IsEqual compares two user references by identifier.
func (u UserRef) IsEqual(other UserRef) bool {
	return u.id.IsEqual(other.id)
}

func (u *UserRef) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *UserRef) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *UserRef) setDisplayName(displayName string) error {
	if displayName == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	u.displayName = displayName
	return nil
}
