package kernel

import (
	"strings"

	"localshop/internal/pkg/errs"
)

// ErrIDIsNotConstructed indicates that an ID was not properly initialized
// through the NewID constructor. This error is returned when validating a
// zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID")

// ID is a value object that represents an identifier assigned by the remote
// store. The backend mints identifiers in its own format; the client treats
// them as opaque strings and never fabricates them locally.
//
// The zero value of ID is invalid and must be constructed using NewID.
// ID is immutable and safe for concurrent use.
//
// Example usage:
//
//	orderID, err := kernel.NewID("66a4f21be9c1a2d4c8b11f03")
//	if err != nil {
//	    // handle error
//	}
type ID struct {
	value string
}

// NewID creates an ID from its backend string representation.
// The string must be non-empty and must not contain whitespace.
// Returns an error if the string is not a usable identifier.
func NewID(value string) (ID, error) {
	if value == "" {
		return ID{}, errs.NewValueIsRequiredError("id")
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return ID{}, errs.NewValueIsInvalidError("id")
	}
	return ID{value: value}, nil
}

// String returns the backend string representation of the identifier.
// For a zero value ID this returns the empty string.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the ID is the invalid zero value.
func (id ID) IsZero() bool {
	return id.value == ""
}

// IsEqual compares two IDs for equality.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

// Validate checks if the ID is properly constructed.
// Returns ErrIDIsNotConstructed for the zero value.
func (id ID) Validate() error {
	if id.value == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}
