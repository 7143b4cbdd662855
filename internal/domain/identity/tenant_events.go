package identity

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
)

// EventTypeTenantCreated is raised when a new tenant is provisioned
const EventTypeTenantCreated = "TenantCreated"

// AggregateTypeTenant is the aggregate type for tenant events
const AggregateTypeTenant = "Tenant"

// TenantCreatedEvent is raised when a new tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Code string
	Name string
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(tenant *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Code:            tenant.Code,
		Name:            tenant.Name,
	}
}
