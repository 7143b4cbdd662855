package identity

import (
	"fmt"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
)

// PermissionEngine decides whether a role may perform an operation.
// It is pure: grants are handed in as a resolved set, storage and
// caching live elsewhere.
type PermissionEngine struct{}

// NewPermissionEngine creates a permission engine
func NewPermissionEngine() *PermissionEngine {
	return &PermissionEngine{}
}

// GrantSet maps permission codes to their granted flag for one role
type GrantSet map[string]bool

// Allows reports whether the role holds the permission. Superroles
// pass every check; everyone else needs an explicit grant. Unknown
// codes and missing grants both deny.
func (e *PermissionEngine) Allows(role *Role, grants GrantSet, permissionCode string) bool {
	if role == nil {
		return false
	}
	if role.IsSuperrole {
		return true
	}
	return grants[permissionCode]
}

// Require returns a FORBIDDEN error when the role lacks the permission
func (e *PermissionEngine) Require(role *Role, grants GrantSet, permissionCode string) error {
	if e.Allows(role, grants, permissionCode) {
		return nil
	}
	return shared.NewForbiddenError(fmt.Sprintf("Permission denied: %s", permissionCode))
}

// EnsureGrantsMutable returns an error when the role's grant set
// cannot be edited. Superrole grants are fixed: the role already
// passes every check, so toggling rows would only mislead.
func (e *PermissionEngine) EnsureGrantsMutable(role *Role) error {
	if role == nil {
		return shared.NewValidationError("Role cannot be nil")
	}
	if role.IsSuperrole {
		return shared.NewForbiddenError(fmt.Sprintf("Permissions for role %s cannot be modified", role.Code))
	}
	return nil
}

// ResolveGrants builds a grant set from grant records keyed by
// permission code. Rows with Granted false are kept as explicit
// denials so listings can show toggled-off permissions.
func ResolveGrants(records []*RolePermission, codeByPermissionID map[string]string) GrantSet {
	grants := make(GrantSet, len(records))
	for _, record := range records {
		code, ok := codeByPermissionID[record.PermissionID.String()]
		if !ok {
			continue
		}
		grants[code] = record.Granted
	}
	return grants
}
