package identity

import (
	"context"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// UserFilter defines filtering options for user queries
type UserFilter struct {
	shared.Filter
	RoleCode *string
	Status   *UserStatus
}

// TenantRepository defines the persistence contract for tenants
type TenantRepository interface {
	// FindByID retrieves a tenant by ID. Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByCode retrieves a tenant by its code.
	// Returns shared.ErrNotFound when absent.
	FindByCode(ctx context.Context, code string) (*Tenant, error)

	// Save persists a tenant (insert or update)
	Save(ctx context.Context, tenant *Tenant) error
}

// UserRepository defines the persistence contract for users
type UserRepository interface {
	// FindByIDForTenant retrieves a user by ID within a tenant.
	// Returns shared.ErrNotFound when absent.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByUsername retrieves a user by username within a tenant.
	// Returns shared.ErrNotFound when absent.
	FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*User, error)

	// FindAllForTenant retrieves users matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter UserFilter) ([]*User, error)

	// CountForTenant counts users matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter UserFilter) (int64, error)

	// Save persists a user (insert or update)
	Save(ctx context.Context, user *User) error

	// ExistsByUsername checks whether a username is taken within a tenant
	ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error)

	// CountByRoleForTenant counts the tenant's users holding the given role,
	// restricted to the statuses passed in. An empty status list counts all.
	CountByRoleForTenant(ctx context.Context, tenantID uuid.UUID, roleCode string, statuses ...UserStatus) (int64, error)
}

// RoleRepository defines the persistence contract for the global role catalog
type RoleRepository interface {
	// FindByID retrieves a role by ID. Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByCode retrieves a role by code. Returns shared.ErrNotFound when absent.
	FindByCode(ctx context.Context, code string) (*Role, error)

	// FindAll retrieves all roles ordered by sort order
	FindAll(ctx context.Context) ([]*Role, error)

	// Save persists a role (insert or update)
	Save(ctx context.Context, role *Role) error
}

// PermissionRepository defines the persistence contract for the permission catalog
type PermissionRepository interface {
	// FindByID retrieves a permission by ID. Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Permission, error)

	// FindByCode retrieves a permission by code. Returns shared.ErrNotFound when absent.
	FindByCode(ctx context.Context, code string) (*Permission, error)

	// FindAll retrieves the full catalog ordered by category and name
	FindAll(ctx context.Context) ([]*Permission, error)

	// FindByCodes retrieves permissions for the given codes
	FindByCodes(ctx context.Context, codes []string) ([]*Permission, error)

	// Save persists a permission (insert or update)
	Save(ctx context.Context, permission *Permission) error
}

// RolePermissionRepository defines the persistence contract for grant records
type RolePermissionRepository interface {
	// FindByRole retrieves all grant records for a role
	FindByRole(ctx context.Context, roleID uuid.UUID) ([]*RolePermission, error)

	// FindByRoleAndPermission retrieves one grant record.
	// Returns shared.ErrNotFound when absent.
	FindByRoleAndPermission(ctx context.Context, roleID, permissionID uuid.UUID) (*RolePermission, error)

	// Save persists a grant record (insert or update)
	Save(ctx context.Context, grant *RolePermission) error

	// SaveBatch persists multiple grant records in one transaction
	SaveBatch(ctx context.Context, grants []*RolePermission) error
}
