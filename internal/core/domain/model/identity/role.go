package identity

import (
	"fmt"

	"localshop/internal/pkg/errs"
)

// Role represents the part a user plays in the storefront. Role is assigned
// at registration and is immutable afterwards; all order lifecycle
// authorization decisions branch on it.
//
// Role is a value object that validates wire values and provides the exact
// string representations used by the remote store.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is a shopper: owns a cart, places orders, tracks them.
	RoleCustomer

	// RoleShop is a storefront operator: manages products and may cancel
	// orders placed against the shop.
	RoleShop

	// RoleDelivery is a delivery agent: advances assigned orders through the
	// delivery lifecycle and publishes live location.
	RoleDelivery

	// RoleAdmin has unrestricted access to every order operation.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their wire representations.
// The strings are part of the remote API contract and must match it exactly.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleCustomer: "customer",
		RoleShop:     "shop",
		RoleDelivery: "delivery",
		RoleAdmin:    "admin",
	}
}

// ParseRole converts a wire string into a Role.
// Returns an error for any string that is not a known role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are: customer, shop, delivery, admin.
// RoleUnknown (0) and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, or "unknown" for invalid values.
// This method implements the fmt.Stringer interface.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// OneOf reports whether the role is a member of the given set.
// An empty set matches nothing.
func (r Role) OneOf(roles []Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
