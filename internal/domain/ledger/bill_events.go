package ledger

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillCreatedEvent is raised when a new bill is created
type BillCreatedEvent struct {
	shared.BaseDomainEvent
	BillID      uuid.UUID       `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	VendorName  string          `json:"vendor_name"`
	BillType    BillType        `json:"bill_type"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// EventType returns the event type name
func (e *BillCreatedEvent) EventType() string {
	return "BillCreated"
}

// NewBillCreatedEvent creates a new BillCreatedEvent
func NewBillCreatedEvent(b *Bill) *BillCreatedEvent {
	return &BillCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillCreated", "Bill", b.ID, b.TenantID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		VendorID:        b.VendorID,
		VendorName:      b.VendorName,
		BillType:        b.BillType,
		Subtotal:        b.Subtotal,
		TaxAmount:       b.TaxAmount,
		TotalAmount:     b.TotalAmount,
		ItemCount:       len(b.Items),
	}
}

// BillConfirmedEvent is raised when a bill transitions to CONFIRMED
type BillConfirmedEvent struct {
	shared.BaseDomainEvent
	BillID      uuid.UUID       `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// EventType returns the event type name
func (e *BillConfirmedEvent) EventType() string {
	return "BillConfirmed"
}

// NewBillConfirmedEvent creates a new BillConfirmedEvent
func NewBillConfirmedEvent(b *Bill) *BillConfirmedEvent {
	return &BillConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillConfirmed", "Bill", b.ID, b.TenantID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		VendorID:        b.VendorID,
		TotalAmount:     b.TotalAmount,
	}
}

// BillCancelledEvent is raised when a bill transitions to CANCELLED
type BillCancelledEvent struct {
	shared.BaseDomainEvent
	BillID     uuid.UUID `json:"bill_id"`
	BillNumber string    `json:"bill_number"`
	Reason     string    `json:"reason,omitempty"`
}

// EventType returns the event type name
func (e *BillCancelledEvent) EventType() string {
	return "BillCancelled"
}

// NewBillCancelledEvent creates a new BillCancelledEvent
func NewBillCancelledEvent(b *Bill, reason string) *BillCancelledEvent {
	return &BillCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillCancelled", "Bill", b.ID, b.TenantID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		Reason:          reason,
	}
}

// BillAuthorizedEvent is raised when a bill is made visible to the organiser role
type BillAuthorizedEvent struct {
	shared.BaseDomainEvent
	BillID       uuid.UUID `json:"bill_id"`
	BillNumber   string    `json:"bill_number"`
	AuthorizedBy uuid.UUID `json:"authorized_by"`
}

// EventType returns the event type name
func (e *BillAuthorizedEvent) EventType() string {
	return "BillAuthorized"
}

// NewBillAuthorizedEvent creates a new BillAuthorizedEvent
func NewBillAuthorizedEvent(b *Bill, by uuid.UUID) *BillAuthorizedEvent {
	return &BillAuthorizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillAuthorized", "Bill", b.ID, b.TenantID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		AuthorizedBy:    by,
	}
}

// BillUnauthorizedEvent is raised when organiser visibility is withdrawn
type BillUnauthorizedEvent struct {
	shared.BaseDomainEvent
	BillID     uuid.UUID `json:"bill_id"`
	BillNumber string    `json:"bill_number"`
}

// EventType returns the event type name
func (e *BillUnauthorizedEvent) EventType() string {
	return "BillUnauthorized"
}

// NewBillUnauthorizedEvent creates a new BillUnauthorizedEvent
func NewBillUnauthorizedEvent(b *Bill) *BillUnauthorizedEvent {
	return &BillUnauthorizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillUnauthorized", "Bill", b.ID, b.TenantID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
	}
}

// BillSplitEvent is raised when a bill is split into proxy bills
type BillSplitEvent struct {
	shared.BaseDomainEvent
	BillID     uuid.UUID   `json:"bill_id"`
	BillNumber string      `json:"bill_number"`
	ProxyIDs   []uuid.UUID `json:"proxy_ids"`
}

// EventType returns the event type name
func (e *BillSplitEvent) EventType() string {
	return "BillSplit"
}

// NewBillSplitEvent creates a new BillSplitEvent
func NewBillSplitEvent(b *Bill, proxyIDs []uuid.UUID) *BillSplitEvent {
	return &BillSplitEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillSplit", "Bill", b.ID, b.TenantID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		ProxyIDs:        proxyIDs,
	}
}
