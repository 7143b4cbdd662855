package authz

import (
	"context"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/google/uuid"
)

// RepositoryGrantSource resolves grant sets straight from the store. It
// is the source of record; the redis cache decorates it in deployments
// that carry one.
type RepositoryGrantSource struct {
	rolePermRepo identity.RolePermissionRepository
	permRepo     identity.PermissionRepository
}

// NewRepositoryGrantSource creates a store-backed grant source
func NewRepositoryGrantSource(rolePermRepo identity.RolePermissionRepository, permRepo identity.PermissionRepository) *RepositoryGrantSource {
	return &RepositoryGrantSource{
		rolePermRepo: rolePermRepo,
		permRepo:     permRepo,
	}
}

// GrantsForRole reads the role's grant rows and maps them onto catalog
// permission codes. Rows referencing permissions that left the catalog
// are skipped.
func (s *RepositoryGrantSource) GrantsForRole(ctx context.Context, roleID uuid.UUID) (identity.GrantSet, error) {
	records, err := s.rolePermRepo.FindByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	permissions, err := s.permRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	codeByID := make(map[string]string, len(permissions))
	for _, permission := range permissions {
		codeByID[permission.ID.String()] = permission.Code
	}

	return identity.ResolveGrants(records, codeByID), nil
}

var _ GrantSource = (*RepositoryGrantSource)(nil)
