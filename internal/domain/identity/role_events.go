package identity

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants for role events
const (
	EventTypeRoleCreated       = "RoleCreated"
	EventTypeRoleGrantsUpdated = "RoleGrantsUpdated"
)

// AggregateTypeRole is the aggregate type for role events
const AggregateTypeRole = "Role"

// RoleCreatedEvent is raised when a role is created. Roles are global,
// so the tenant on the event is always empty.
type RoleCreatedEvent struct {
	shared.BaseDomainEvent
	Code        string
	Name        string
	IsSuperrole bool
}

// NewRoleCreatedEvent creates a new RoleCreatedEvent
func NewRoleCreatedEvent(role *Role) *RoleCreatedEvent {
	return &RoleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleCreated, AggregateTypeRole, role.ID, uuid.Nil),
		Code:            role.Code,
		Name:            role.Name,
		IsSuperrole:     role.IsSuperrole,
	}
}

// RoleGrantsUpdatedEvent is raised when a role's permission grants change
type RoleGrantsUpdatedEvent struct {
	shared.BaseDomainEvent
	Code    string
	Granted []string
	Revoked []string
}

// NewRoleGrantsUpdatedEvent creates a new RoleGrantsUpdatedEvent
func NewRoleGrantsUpdatedEvent(role *Role, granted, revoked []string) *RoleGrantsUpdatedEvent {
	return &RoleGrantsUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleGrantsUpdated, AggregateTypeRole, role.ID, uuid.Nil),
		Code:            role.Code,
		Granted:         granted,
		Revoked:         revoked,
	}
}
