package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// GrantCacheInvalidator drops a role's cached grant set after its rows
// change. The redis cache implements it; a nil invalidator means grants
// are read straight from the store. Invalidation is best-effort once the
// rows are committed, so implementations log their own failures.
type GrantCacheInvalidator interface {
	InvalidateRole(ctx context.Context, roleID uuid.UUID)
}

// PermissionService serves the permission catalog and manages per-role
// grants. Superrole grants are immutable: the role already passes every
// check, so there are no rows worth editing.
type PermissionService struct {
	roleRepo     identity.RoleRepository
	permRepo     identity.PermissionRepository
	rolePermRepo identity.RolePermissionRepository
	engine       *identity.PermissionEngine
	invalidator  GrantCacheInvalidator
	recorder     audit.Recorder
	txManager    shared.TxManager
}

// NewPermissionService creates a new PermissionService. The invalidator
// may be nil when no grant cache is configured.
func NewPermissionService(
	roleRepo identity.RoleRepository,
	permRepo identity.PermissionRepository,
	rolePermRepo identity.RolePermissionRepository,
	invalidator GrantCacheInvalidator,
	recorder audit.Recorder,
	txManager shared.TxManager,
) *PermissionService {
	return &PermissionService{
		roleRepo:     roleRepo,
		permRepo:     permRepo,
		rolePermRepo: rolePermRepo,
		engine:       identity.NewPermissionEngine(),
		invalidator:  invalidator,
		recorder:     recorder,
		txManager:    txManager,
	}
}

// ListCatalog returns the permission catalog grouped by category, in the
// catalog's display order
func (s *PermissionService) ListCatalog(ctx context.Context) ([]PermissionGroupResponse, error) {
	stored, err := s.permRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*identity.Permission, len(stored))
	for _, permission := range stored {
		byCode[permission.Code] = permission
	}

	groups := []PermissionGroupResponse{}
	indexByCategory := make(map[string]int)
	for _, entry := range identity.PermissionCatalog() {
		permission, ok := byCode[entry.Code]
		if !ok {
			// Catalog rows arrive with the seed; a missing row means the
			// seed has not run for this code yet.
			continue
		}
		idx, ok := indexByCategory[entry.Category]
		if !ok {
			groups = append(groups, PermissionGroupResponse{Category: entry.Category})
			idx = len(groups) - 1
			indexByCategory[entry.Category] = idx
		}
		groups[idx].Permissions = append(groups[idx].Permissions, PermissionResponse{
			ID:          permission.ID,
			Code:        permission.Code,
			Name:        permission.Name,
			Category:    permission.Category,
			Description: permission.Description,
		})
	}
	return groups, nil
}

// ListRoles returns the role catalog in display order
func (s *PermissionService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]RoleResponse, len(roles))
	for i, role := range roles {
		responses[i] = ToRoleResponse(role)
	}
	return responses, nil
}

// GetRoleGrants lists every catalog permission with its granted flag for
// one role
func (s *PermissionService) GetRoleGrants(ctx context.Context, roleID uuid.UUID) (*RoleGrantsResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return s.buildRoleGrants(ctx, role)
}

// UpdateRoleGrants applies grant toggles to a role and answers with the
// full grant listing. The rows and the audit entry commit together; the
// grant cache is invalidated after the commit so no request sees the old
// set once the new one is durable.
func (s *PermissionService) UpdateRoleGrants(ctx context.Context, actor authz.Principal, roleID uuid.UUID, req UpdateRoleGrantsRequest) (*RoleGrantsResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.EnsureGrantsMutable(role); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.Grants))
	codes := make([]string, 0, len(req.Grants))
	for _, grant := range req.Grants {
		if _, dup := seen[grant.PermissionCode]; dup {
			return nil, shared.NewValidationError(fmt.Sprintf("Duplicate permission code %s in request", grant.PermissionCode))
		}
		seen[grant.PermissionCode] = struct{}{}
		codes = append(codes, grant.PermissionCode)
	}

	permissions, err := s.permRepo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	permByCode := make(map[string]*identity.Permission, len(permissions))
	for _, permission := range permissions {
		permByCode[permission.Code] = permission
	}
	for _, code := range codes {
		if _, ok := permByCode[code]; !ok {
			return nil, shared.NewValidationError(fmt.Sprintf("Unknown permission code %s", code))
		}
	}

	batch := make([]*identity.RolePermission, 0, len(req.Grants))
	changes := make([]map[string]any, 0, len(req.Grants))
	for _, grant := range req.Grants {
		permission := permByCode[grant.PermissionCode]
		record, err := s.rolePermRepo.FindByRoleAndPermission(ctx, role.ID, permission.ID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			record, err = identity.NewRolePermission(role.ID, permission.ID, grant.Granted)
			if err != nil {
				return nil, err
			}
		} else {
			record.SetGranted(grant.Granted)
		}
		batch = append(batch, record)
		changes = append(changes, map[string]any{"code": grant.PermissionCode, "granted": grant.Granted})
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.rolePermRepo.SaveBatch(ctx, batch); err != nil {
			return err
		}
		entry, err := audit.NewCatalogAuditLog(actor.TenantID, actor.UserID, audit.ActionUpdatePermissions, audit.EntityPermissions)
		if err != nil {
			return err
		}
		entry.WithUsername(actor.Username).WithIPAddress(actor.ClientIP).WithDetails(grantDetailsJSON(role.Code, changes))
		return s.recorder.Record(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateRole(ctx, role.ID)
	}

	return s.buildRoleGrants(ctx, role)
}

// buildRoleGrants assembles the grant listing for a role in catalog
// order. Superroles skip the store read; the engine reports every flag
// as granted.
func (s *PermissionService) buildRoleGrants(ctx context.Context, role *identity.Role) (*RoleGrantsResponse, error) {
	grants := identity.GrantSet{}
	if !role.IsSuperrole {
		records, err := s.rolePermRepo.FindByRole(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		stored, err := s.permRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		codeByID := make(map[string]string, len(stored))
		for _, permission := range stored {
			codeByID[permission.ID.String()] = permission.Code
		}
		grants = identity.ResolveGrants(records, codeByID)
	}

	catalog := identity.PermissionCatalog()
	response := &RoleGrantsResponse{
		Role:   ToRoleResponse(role),
		Grants: make([]GrantResponse, 0, len(catalog)),
	}
	for _, entry := range catalog {
		response.Grants = append(response.Grants, GrantResponse{
			PermissionCode: entry.Code,
			PermissionName: entry.Name,
			Category:       entry.Category,
			Granted:        s.engine.Allows(role, grants, entry.Code),
		})
	}
	return response, nil
}

// grantDetailsJSON renders the audit payload for a grant update. A
// payload that cannot marshal degrades to empty details rather than
// failing the mutation.
func grantDetailsJSON(roleCode string, changes []map[string]any) string {
	b, err := json.Marshal(map[string]any{"role": roleCode, "changes": changes})
	if err != nil {
		return ""
	}
	return string(b)
}
