package identity_test

import (
	"fmt"
	"testing"

	"localshop/internal/core/domain/model/identity"
	"localshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(identity.RoleUnknown))
		assert.Equal(t, 1, int(identity.RoleCustomer))
		assert.Equal(t, 2, int(identity.RoleShop))
		assert.Equal(t, 3, int(identity.RoleDelivery))
		assert.Equal(t, 4, int(identity.RoleAdmin))
	})
}

func TestParseRole(t *testing.T) {
	t.Run("should parse wire strings", func(t *testing.T) {
		testCases := []struct {
			wire     string
			expected identity.Role
		}{
			{"customer", identity.RoleCustomer},
			{"shop", identity.RoleShop},
			{"delivery", identity.RoleDelivery},
			{"admin", identity.RoleAdmin},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("should parse %q", tc.wire), func(t *testing.T) {
				role, err := identity.ParseRole(tc.wire)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, role)
			})
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, bad := range []string{"", "Customer", "superadmin", "courier"} {
			role, err := identity.ParseRole(bad)

			require.Error(t, err)
			assert.Equal(t, identity.RoleUnknown, role)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestRole_Validate(t *testing.T) {
	t.Run("should validate known roles", func(t *testing.T) {
		validRoles := []identity.Role{
			identity.RoleCustomer,
			identity.RoleShop,
			identity.RoleDelivery,
			identity.RoleAdmin,
		}

		for _, role := range validRoles {
			require.NoError(t, role.Validate())
		}
	})

	t.Run("should reject RoleUnknown and out-of-range values", func(t *testing.T) {
		invalidRoles := []identity.Role{
			identity.RoleUnknown,
			identity.Role(-1),
			identity.Role(5),
			identity.Role(100),
		}

		for _, role := range invalidRoles {
			err := role.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestRole_String(t *testing.T) {
	t.Run("should return wire string for valid roles", func(t *testing.T) {
		assert.Equal(t, "customer", identity.RoleCustomer.String())
		assert.Equal(t, "shop", identity.RoleShop.String())
		assert.Equal(t, "delivery", identity.RoleDelivery.String())
		assert.Equal(t, "admin", identity.RoleAdmin.String())
	})

	t.Run("should return unknown for invalid roles", func(t *testing.T) {
		assert.Equal(t, "unknown", identity.RoleUnknown.String())
		assert.Equal(t, "unknown", identity.Role(42).String())
	})

	t.Run("should round trip through ParseRole", func(t *testing.T) {
		for _, role := range []identity.Role{
			identity.RoleCustomer, identity.RoleShop, identity.RoleDelivery, identity.RoleAdmin,
		} {
			parsed, err := identity.ParseRole(role.String())
			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		}
	})
}

func TestRole_OneOf(t *testing.T) {
	t.Run("should report membership", func(t *testing.T) {
		allowed := []identity.Role{identity.RoleDelivery, identity.RoleAdmin}

		assert.True(t, identity.RoleDelivery.OneOf(allowed))
		assert.True(t, identity.RoleAdmin.OneOf(allowed))
		assert.False(t, identity.RoleCustomer.OneOf(allowed))
	})

	t.Run("should match nothing against empty set", func(t *testing.T) {
		assert.False(t, identity.RoleCustomer.OneOf(nil))
		assert.False(t, identity.RoleCustomer.OneOf([]identity.Role{}))
	})
}
