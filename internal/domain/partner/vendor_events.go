package partner

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Vendor
const AggregateTypeVendor = "Vendor"

// Event type constants for Vendor
const (
	EventTypeVendorCreated            = "VendorCreated"
	EventTypeVendorUpdated            = "VendorUpdated"
	EventTypeVendorStatusChanged      = "VendorStatusChanged"
	EventTypeVendorCreditTermsChanged = "VendorCreditTermsChanged"
	EventTypeVendorDeleted            = "VendorDeleted"
)

// VendorCreatedEvent is published when a new vendor is created
type VendorCreatedEvent struct {
	shared.BaseDomainEvent
	VendorID     uuid.UUID  `json:"vendor_id"`
	Name         string     `json:"name"`
	CustomerCode string     `json:"customer_code,omitempty"`
	Type         VendorType `json:"type"`
}

// NewVendorCreatedEvent creates a new VendorCreatedEvent
func NewVendorCreatedEvent(vendor *Vendor) *VendorCreatedEvent {
	return &VendorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorCreated, AggregateTypeVendor, vendor.ID, vendor.TenantID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
		CustomerCode:    vendor.CustomerCode,
		Type:            vendor.Type,
	}
}

// VendorUpdatedEvent is published when a vendor's details change
type VendorUpdatedEvent struct {
	shared.BaseDomainEvent
	VendorID uuid.UUID `json:"vendor_id"`
	Name     string    `json:"name"`
}

// NewVendorUpdatedEvent creates a new VendorUpdatedEvent
func NewVendorUpdatedEvent(vendor *Vendor) *VendorUpdatedEvent {
	return &VendorUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorUpdated, AggregateTypeVendor, vendor.ID, vendor.TenantID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
	}
}

// VendorStatusChangedEvent is published when a vendor's status changes
type VendorStatusChangedEvent struct {
	shared.BaseDomainEvent
	VendorID  uuid.UUID    `json:"vendor_id"`
	OldStatus VendorStatus `json:"old_status"`
	NewStatus VendorStatus `json:"new_status"`
}

// NewVendorStatusChangedEvent creates a new VendorStatusChangedEvent
func NewVendorStatusChangedEvent(vendor *Vendor, oldStatus, newStatus VendorStatus) *VendorStatusChangedEvent {
	return &VendorStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorStatusChanged, AggregateTypeVendor, vendor.ID, vendor.TenantID),
		VendorID:        vendor.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// VendorCreditTermsChangedEvent is published when credit terms change
type VendorCreditTermsChangedEvent struct {
	shared.BaseDomainEvent
	VendorID uuid.UUID       `json:"vendor_id"`
	OldLimit decimal.Decimal `json:"old_limit"`
	NewLimit decimal.Decimal `json:"new_limit"`
}

// NewVendorCreditTermsChangedEvent creates a new VendorCreditTermsChangedEvent
func NewVendorCreditTermsChangedEvent(vendor *Vendor, oldLimit, newLimit decimal.Decimal) *VendorCreditTermsChangedEvent {
	return &VendorCreditTermsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorCreditTermsChanged, AggregateTypeVendor, vendor.ID, vendor.TenantID),
		VendorID:        vendor.ID,
		OldLimit:        oldLimit,
		NewLimit:        newLimit,
	}
}

// VendorDeletedEvent is published when a vendor is deleted
type VendorDeletedEvent struct {
	shared.BaseDomainEvent
	VendorID uuid.UUID `json:"vendor_id"`
	Name     string    `json:"name"`
}

// NewVendorDeletedEvent creates a new VendorDeletedEvent
func NewVendorDeletedEvent(vendor *Vendor) *VendorDeletedEvent {
	return &VendorDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorDeleted, AggregateTypeVendor, vendor.ID, vendor.TenantID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
	}
}
