package ledger

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProxyBillCreatedEvent is raised when a new proxy bill is created
type ProxyBillCreatedEvent struct {
	shared.BaseDomainEvent
	ProxyBillID  uuid.UUID       `json:"proxy_bill_id"`
	ProxyNumber  string          `json:"proxy_number"`
	ParentBillID uuid.UUID       `json:"parent_bill_id"`
	VendorID     uuid.UUID       `json:"vendor_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ItemCount    int             `json:"item_count"`
}

// EventType returns the event type name
func (e *ProxyBillCreatedEvent) EventType() string {
	return "ProxyBillCreated"
}

// NewProxyBillCreatedEvent creates a new ProxyBillCreatedEvent
func NewProxyBillCreatedEvent(p *ProxyBill) *ProxyBillCreatedEvent {
	return &ProxyBillCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProxyBillCreated", "ProxyBill", p.ID, p.TenantID),
		ProxyBillID:     p.ID,
		ProxyNumber:     p.ProxyNumber,
		ParentBillID:    p.ParentBillID,
		VendorID:        p.VendorID,
		TotalAmount:     p.TotalAmount,
		ItemCount:       len(p.Items),
	}
}

// ProxyBillConfirmedEvent is raised when a proxy bill transitions to CONFIRMED
type ProxyBillConfirmedEvent struct {
	shared.BaseDomainEvent
	ProxyBillID uuid.UUID       `json:"proxy_bill_id"`
	ProxyNumber string          `json:"proxy_number"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// EventType returns the event type name
func (e *ProxyBillConfirmedEvent) EventType() string {
	return "ProxyBillConfirmed"
}

// NewProxyBillConfirmedEvent creates a new ProxyBillConfirmedEvent
func NewProxyBillConfirmedEvent(p *ProxyBill) *ProxyBillConfirmedEvent {
	return &ProxyBillConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProxyBillConfirmed", "ProxyBill", p.ID, p.TenantID),
		ProxyBillID:     p.ID,
		ProxyNumber:     p.ProxyNumber,
		VendorID:        p.VendorID,
		TotalAmount:     p.TotalAmount,
	}
}

// ProxyBillCancelledEvent is raised when a proxy bill transitions to CANCELLED
type ProxyBillCancelledEvent struct {
	shared.BaseDomainEvent
	ProxyBillID uuid.UUID `json:"proxy_bill_id"`
	ProxyNumber string    `json:"proxy_number"`
	Reason      string    `json:"reason,omitempty"`
}

// EventType returns the event type name
func (e *ProxyBillCancelledEvent) EventType() string {
	return "ProxyBillCancelled"
}

// NewProxyBillCancelledEvent creates a new ProxyBillCancelledEvent
func NewProxyBillCancelledEvent(p *ProxyBill, reason string) *ProxyBillCancelledEvent {
	return &ProxyBillCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProxyBillCancelled", "ProxyBill", p.ID, p.TenantID),
		ProxyBillID:     p.ID,
		ProxyNumber:     p.ProxyNumber,
		Reason:          reason,
	}
}
