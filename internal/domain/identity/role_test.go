package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Test Helpers
// ============================================

func createTestRole(t *testing.T) *Role {
	t.Helper()

	role, err := NewRole(RoleCodeSalesman, "Salesman")
	require.NoError(t, err)
	require.NotNil(t, role)

	return role
}

func createTestSuperrole(t *testing.T) *Role {
	t.Helper()

	role, err := NewSuperrole(RoleCodeAdmin, "Administrator")
	require.NoError(t, err)
	require.NotNil(t, role)

	return role
}

// ============================================
// Role Creation Tests
// ============================================

func TestNewRole(t *testing.T) {
	t.Run("creates role with normalized code", func(t *testing.T) {
		role, err := NewRole("  salesman  ", "Salesman")

		require.NoError(t, err)
		assert.Equal(t, "SALESMAN", role.Code)
		assert.Equal(t, "Salesman", role.Name)
		assert.False(t, role.IsSuperrole)
		assert.NotEqual(t, uuid.Nil, role.ID)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewRole("", "Salesman")
		assert.Error(t, err)
	})

	t.Run("rejects code with spaces", func(t *testing.T) {
		_, err := NewRole("SALES MAN", "Salesman")
		assert.Error(t, err)
	})

	t.Run("rejects code starting with a digit", func(t *testing.T) {
		_, err := NewRole("1ADMIN", "Administrator")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewRole(RoleCodeSalesman, "   ")
		assert.Error(t, err)
	})

	t.Run("superrole constructor sets the flag", func(t *testing.T) {
		role := createTestSuperrole(t)
		assert.True(t, role.IsSuperrole)
	})
}

func TestRoleSetDescription(t *testing.T) {
	role := createTestRole(t)

	err := role.SetDescription("Handles daily billing")
	require.NoError(t, err)
	assert.Equal(t, "Handles daily billing", role.Description)

	longDescription := make([]byte, 501)
	for i := range longDescription {
		longDescription[i] = 'x'
	}
	err = role.SetDescription(string(longDescription))
	assert.Error(t, err)
}

// ============================================
// Permission Catalog Tests
// ============================================

func TestNewPermission(t *testing.T) {
	t.Run("creates permission with normalized code", func(t *testing.T) {
		permission, err := NewPermission("  VIEW_BILLS  ", "View Bills", CategoryBills)

		require.NoError(t, err)
		assert.Equal(t, "view_bills", permission.Code)
		assert.Equal(t, "View Bills", permission.Name)
		assert.Equal(t, CategoryBills, permission.Category)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewPermission("view-bills", "View Bills", CategoryBills)
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewPermission(PermViewBills, "", CategoryBills)
		assert.Error(t, err)
	})

	t.Run("rejects empty category", func(t *testing.T) {
		_, err := NewPermission(PermViewBills, "View Bills", "")
		assert.Error(t, err)
	})
}

func TestPermissionCatalog(t *testing.T) {
	catalog := PermissionCatalog()

	assert.Len(t, catalog, 17)

	seen := make(map[string]bool, len(catalog))
	for _, entry := range catalog {
		assert.False(t, seen[entry.Code], "duplicate catalog code %s", entry.Code)
		seen[entry.Code] = true
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Category)
	}

	assert.True(t, seen[PermAuthorizeBill])
	assert.True(t, seen[PermManagePermissions])
	assert.True(t, seen[PermDeleteVendor])
}

func TestRoleCatalog(t *testing.T) {
	catalog := RoleCatalog()

	require.Len(t, catalog, 4)

	t.Run("admin is the only superrole", func(t *testing.T) {
		for _, seed := range catalog {
			assert.Equal(t, seed.Code == RoleCodeAdmin, seed.IsSuperrole, "role %s", seed.Code)
		}
	})

	t.Run("sort orders are distinct and admin sorts first", func(t *testing.T) {
		seen := make(map[int]bool, len(catalog))
		for _, seed := range catalog {
			assert.False(t, seen[seed.SortOrder], "duplicate sort order %d", seed.SortOrder)
			seen[seed.SortOrder] = true
		}
		assert.Equal(t, RoleCodeAdmin, catalog[0].Code)
		assert.Equal(t, 1, catalog[0].SortOrder)
	})

	t.Run("every seed passes role validation", func(t *testing.T) {
		for _, seed := range catalog {
			role, err := NewRole(seed.Code, seed.Name)
			require.NoError(t, err)
			require.NoError(t, role.SetDescription(seed.Description))
		}
	})
}

func TestDefaultRoleGrants(t *testing.T) {
	grants := DefaultRoleGrants()

	t.Run("admin has no grant rows", func(t *testing.T) {
		_, ok := grants[RoleCodeAdmin]
		assert.False(t, ok)
	})

	t.Run("every granted code exists in the catalog", func(t *testing.T) {
		catalogCodes := make(map[string]bool)
		for _, entry := range PermissionCatalog() {
			catalogCodes[entry.Code] = true
		}

		for roleCode, codes := range grants {
			for _, code := range codes {
				assert.True(t, catalogCodes[code], "role %s granted unknown code %s", roleCode, code)
			}
		}
	})

	t.Run("organiser is read only", func(t *testing.T) {
		assert.ElementsMatch(t, []string{PermViewBills, PermViewReports}, grants[RoleCodeOrganiser])
	})

	t.Run("salesman cannot authorize or cancel bills", func(t *testing.T) {
		for _, code := range grants[RoleCodeSalesman] {
			assert.NotEqual(t, PermAuthorizeBill, code)
			assert.NotEqual(t, PermCancelBill, code)
			assert.NotEqual(t, PermManagePermissions, code)
		}
	})

	t.Run("delivery can see and update deliveries", func(t *testing.T) {
		assert.Contains(t, grants[RoleCodeDelivery], PermViewDeliveries)
		assert.Contains(t, grants[RoleCodeDelivery], PermUpdateDelivery)
	})
}

// ============================================
// RolePermission Tests
// ============================================

func TestNewRolePermission(t *testing.T) {
	roleID := uuid.New()
	permissionID := uuid.New()

	t.Run("creates grant record", func(t *testing.T) {
		grant, err := NewRolePermission(roleID, permissionID, true)

		require.NoError(t, err)
		assert.Equal(t, roleID, grant.RoleID)
		assert.Equal(t, permissionID, grant.PermissionID)
		assert.True(t, grant.Granted)
		assert.NotEqual(t, uuid.Nil, grant.ID)
	})

	t.Run("rejects empty role ID", func(t *testing.T) {
		_, err := NewRolePermission(uuid.Nil, permissionID, true)
		assert.Error(t, err)
	})

	t.Run("rejects empty permission ID", func(t *testing.T) {
		_, err := NewRolePermission(roleID, uuid.Nil, true)
		assert.Error(t, err)
	})

	t.Run("SetGranted flips the flag", func(t *testing.T) {
		grant, err := NewRolePermission(roleID, permissionID, true)
		require.NoError(t, err)

		grant.SetGranted(false)
		assert.False(t, grant.Granted)

		grant.SetGranted(true)
		assert.True(t, grant.Granted)
	})
}

// ============================================
// Role Event Tests
// ============================================

func TestRoleEvents(t *testing.T) {
	role := createTestRole(t)

	events := role.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeRoleCreated, events[0].EventType())

	created, ok := events[0].(*RoleCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "SALESMAN", created.Code)
	assert.False(t, created.IsSuperrole)
	assert.Equal(t, uuid.Nil, created.TenantID())
}
