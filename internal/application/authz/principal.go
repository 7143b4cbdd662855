package authz

import (
	"github.com/google/uuid"
)

// Principal identifies the caller of an operation. The authentication
// layer resolves it from the request token; everything below trusts it.
type Principal struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Username string
	RoleCode string
	ClientIP string
}
