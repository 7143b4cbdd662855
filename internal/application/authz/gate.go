package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// GrantSource resolves the grant set for a role. The redis-backed cache
// implements it in production; tests hand in a stub.
type GrantSource interface {
	GrantsForRole(ctx context.Context, roleID uuid.UUID) (identity.GrantSet, error)
}

// Gate performs the capability check in front of every operation. It
// fails closed: unknown roles, missing grants, and grant-source errors
// all deny.
type Gate struct {
	roleRepo    identity.RoleRepository
	grantSource GrantSource
	engine      *identity.PermissionEngine
}

// NewGate creates an authorization gate
func NewGate(roleRepo identity.RoleRepository, grantSource GrantSource) *Gate {
	return &Gate{
		roleRepo:    roleRepo,
		grantSource: grantSource,
		engine:      identity.NewPermissionEngine(),
	}
}

// Require checks that the principal's role holds the permission.
// Returns a FORBIDDEN error otherwise.
func (g *Gate) Require(ctx context.Context, principal Principal, permissionCode string) error {
	role, err := g.roleRepo.FindByCode(ctx, principal.RoleCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewForbiddenError(fmt.Sprintf("Unknown role %s", principal.RoleCode))
		}
		return err
	}

	if role.IsSuperrole {
		return nil
	}

	grants, err := g.grantSource.GrantsForRole(ctx, role.ID)
	if err != nil {
		return err
	}

	return g.engine.Require(role, grants, permissionCode)
}

// Allows reports whether the principal's role holds the permission
func (g *Gate) Allows(ctx context.Context, principal Principal, permissionCode string) bool {
	return g.Require(ctx, principal, permissionCode) == nil
}

// SeesOnlyAuthorizedBills reports whether bill reads for this principal
// must be restricted to authorized bills. A direct fetch of an
// unauthorized bill then fails as NotFound, never Forbidden, so the
// restricted role cannot probe for existence.
func (g *Gate) SeesOnlyAuthorizedBills(principal Principal) bool {
	return principal.RoleCode == identity.RoleCodeOrganiser
}

// SeesOnlyOwnDeliveries reports whether delivery reads for this
// principal are restricted to orders assigned to them.
func (g *Gate) SeesOnlyOwnDeliveries(principal Principal) bool {
	return principal.RoleCode == identity.RoleCodeDelivery
}
