package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeder installs the baseline records a fresh ledger database needs
// before the first login: the global role and permission catalog, the
// default grant matrix, and a tenant with its first administrator.
//
// Seeding is additive. Rows that already exist are left untouched, so
// re-running after an administrator has edited grants or renamed a role
// does not undo their changes.
type Seeder struct {
	tenants     identity.TenantRepository
	users       identity.UserRepository
	roles       identity.RoleRepository
	permissions identity.PermissionRepository
	grants      identity.RolePermissionRepository
	logger      *zap.Logger
}

// NewSeeder creates a Seeder over the identity repositories
func NewSeeder(
	tenants identity.TenantRepository,
	users identity.UserRepository,
	roles identity.RoleRepository,
	permissions identity.PermissionRepository,
	grants identity.RolePermissionRepository,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		tenants:     tenants,
		users:       users,
		roles:       roles,
		permissions: permissions,
		grants:      grants,
		logger:      logger,
	}
}

// SeedCatalog inserts the roles, permissions and default grants that are
// missing from the database. Safe to run on every deploy; codes added to
// the catalog in a release are picked up by the next run.
func (s *Seeder) SeedCatalog(ctx context.Context) error {
	rolesCreated, err := s.seedRoles(ctx)
	if err != nil {
		return err
	}

	permissionsCreated, err := s.seedPermissions(ctx)
	if err != nil {
		return err
	}

	grantsCreated, err := s.seedDefaultGrants(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("Catalog seeded",
		zap.Int("roles_created", rolesCreated),
		zap.Int("permissions_created", permissionsCreated),
		zap.Int("grants_created", grantsCreated),
	)

	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range identity.RoleCatalog() {
		_, err := s.roles.FindByCode(ctx, seed.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return created, fmt.Errorf("failed to look up role %s: %w", seed.Code, err)
		}

		var role *identity.Role
		if seed.IsSuperrole {
			role, err = identity.NewSuperrole(seed.Code, seed.Name)
		} else {
			role, err = identity.NewRole(seed.Code, seed.Name)
		}
		if err != nil {
			return created, fmt.Errorf("failed to build role %s: %w", seed.Code, err)
		}
		if err := role.SetDescription(seed.Description); err != nil {
			return created, fmt.Errorf("failed to build role %s: %w", seed.Code, err)
		}
		role.SetSortOrder(seed.SortOrder)

		if err := s.roles.Save(ctx, role); err != nil {
			return created, fmt.Errorf("failed to save role %s: %w", seed.Code, err)
		}
		created++
	}
	return created, nil
}

func (s *Seeder) seedPermissions(ctx context.Context) (int, error) {
	created := 0
	for _, entry := range identity.PermissionCatalog() {
		_, err := s.permissions.FindByCode(ctx, entry.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return created, fmt.Errorf("failed to look up permission %s: %w", entry.Code, err)
		}

		permission, err := identity.NewPermission(entry.Code, entry.Name, entry.Category)
		if err != nil {
			return created, fmt.Errorf("failed to build permission %s: %w", entry.Code, err)
		}
		if err := s.permissions.Save(ctx, permission); err != nil {
			return created, fmt.Errorf("failed to save permission %s: %w", entry.Code, err)
		}
		created++
	}
	return created, nil
}

// seedDefaultGrants inserts grant rows for role/permission pairs that
// have none yet. Pairs that already have a row keep their Granted flag,
// whichever way an administrator has toggled it.
func (s *Seeder) seedDefaultGrants(ctx context.Context) (int, error) {
	defaults := identity.DefaultRoleGrants()
	created := 0

	// Walk the role catalog rather than the map so runs are deterministic
	for _, seed := range identity.RoleCatalog() {
		permissionCodes, ok := defaults[seed.Code]
		if !ok {
			continue
		}

		role, err := s.roles.FindByCode(ctx, seed.Code)
		if err != nil {
			return created, fmt.Errorf("failed to look up role %s: %w", seed.Code, err)
		}

		missing := make([]*identity.RolePermission, 0, len(permissionCodes))
		for _, code := range permissionCodes {
			permission, err := s.permissions.FindByCode(ctx, code)
			if err != nil {
				return created, fmt.Errorf("failed to look up permission %s: %w", code, err)
			}

			_, err = s.grants.FindByRoleAndPermission(ctx, role.ID, permission.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, shared.ErrNotFound) {
				return created, fmt.Errorf("failed to look up grant %s/%s: %w", seed.Code, code, err)
			}

			grant, err := identity.NewRolePermission(role.ID, permission.ID, true)
			if err != nil {
				return created, fmt.Errorf("failed to build grant %s/%s: %w", seed.Code, code, err)
			}
			missing = append(missing, grant)
		}

		if len(missing) > 0 {
			if err := s.grants.SaveBatch(ctx, missing); err != nil {
				return created, fmt.Errorf("failed to save grants for role %s: %w", seed.Code, err)
			}
			created += len(missing)
		}
	}

	return created, nil
}

// SeedTenant ensures a tenant with the given code exists and returns it
func (s *Seeder) SeedTenant(ctx context.Context, code, name string) (*identity.Tenant, error) {
	tenant, err := s.tenants.FindByCode(ctx, code)
	if err == nil {
		s.logger.Info("Tenant already exists", zap.String("code", tenant.Code))
		return tenant, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up tenant %s: %w", code, err)
	}

	tenant, err = identity.NewTenant(code, name)
	if err != nil {
		return nil, fmt.Errorf("failed to build tenant %s: %w", code, err)
	}
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant %s: %w", code, err)
	}

	s.logger.Info("Tenant created",
		zap.String("code", tenant.Code),
		zap.String("tenant_id", tenant.ID.String()),
	)
	return tenant, nil
}

// SeedAdmin ensures the tenant has a user with the given username. A new
// user is created with the ADMIN role and the supplied password; an
// existing user is returned as is, password and role untouched.
func (s *Seeder) SeedAdmin(ctx context.Context, tenantID uuid.UUID, username, password string) (*identity.User, error) {
	user, err := s.users.FindByUsername(ctx, tenantID, username)
	if err == nil {
		s.logger.Info("Admin user already exists", zap.String("username", user.Username))
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	user, err = identity.NewUser(tenantID, username, password, identity.RoleCodeAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to build admin user: %w", err)
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save admin user: %w", err)
	}

	s.logger.Info("Admin user created",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()),
	)
	return user, nil
}
