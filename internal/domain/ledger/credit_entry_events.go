package ledger

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditEntryCreatedEvent is raised when a monetary event is recorded
type CreditEntryCreatedEvent struct {
	shared.BaseDomainEvent
	CreditEntryID uuid.UUID        `json:"credit_entry_id"`
	VendorID      uuid.UUID        `json:"vendor_id"`
	BillID        *uuid.UUID       `json:"bill_id,omitempty"`
	ProxyBillID   *uuid.UUID       `json:"proxy_bill_id,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	Direction     PaymentDirection `json:"direction"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
}

// EventType returns the event type name
func (e *CreditEntryCreatedEvent) EventType() string {
	return "CreditEntryCreated"
}

// NewCreditEntryCreatedEvent creates a new CreditEntryCreatedEvent
func NewCreditEntryCreatedEvent(c *CreditEntry) *CreditEntryCreatedEvent {
	return &CreditEntryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CreditEntryCreated", "CreditEntry", c.ID, c.TenantID),
		CreditEntryID:   c.ID,
		VendorID:        c.VendorID,
		BillID:          c.BillID,
		ProxyBillID:     c.ProxyBillID,
		Amount:          c.Amount,
		Direction:       c.Direction,
		PaymentMethod:   c.PaymentMethod,
	}
}

// CreditEntryUpdatedEvent is raised when an entry goes through the explicit edit operation
type CreditEntryUpdatedEvent struct {
	shared.BaseDomainEvent
	CreditEntryID uuid.UUID        `json:"credit_entry_id"`
	VendorID      uuid.UUID        `json:"vendor_id"`
	Amount        decimal.Decimal  `json:"amount"`
	Direction     PaymentDirection `json:"direction"`
}

// EventType returns the event type name
func (e *CreditEntryUpdatedEvent) EventType() string {
	return "CreditEntryUpdated"
}

// NewCreditEntryUpdatedEvent creates a new CreditEntryUpdatedEvent
func NewCreditEntryUpdatedEvent(c *CreditEntry) *CreditEntryUpdatedEvent {
	return &CreditEntryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CreditEntryUpdated", "CreditEntry", c.ID, c.TenantID),
		CreditEntryID:   c.ID,
		VendorID:        c.VendorID,
		Amount:          c.Amount,
		Direction:       c.Direction,
	}
}
