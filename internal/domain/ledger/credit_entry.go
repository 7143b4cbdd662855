package ledger

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDirection indicates which way money moved
type PaymentDirection string

const (
	DirectionIncoming PaymentDirection = "INCOMING" // Money received by the tenant
	DirectionOutgoing PaymentDirection = "OUTGOING" // Money paid out by the tenant
)

// IsValid checks if the direction is valid
func (d PaymentDirection) IsValid() bool {
	return d == DirectionIncoming || d == DirectionOutgoing
}

// String returns the string representation of PaymentDirection
func (d PaymentDirection) String() string {
	return string(d)
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheque, PaymentMethodBankTransfer,
		PaymentMethodUPI, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// AllPaymentMethods lists the valid payment methods for catalogs and forms
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentMethodCash,
		PaymentMethodCheque,
		PaymentMethodBankTransfer,
		PaymentMethodUPI,
		PaymentMethodOther,
	}
}

// CreditEntry is a recorded monetary event, the only source of truth for
// money actually moved. Every entry belongs to a vendor; it is additionally
// linked to at most one container - a Bill or a ProxyBill, never both. An
// entry with no container link is a bare vendor entry and still participates
// in the vendor outstanding formula.
type CreditEntry struct {
	shared.TenantAggregateRoot
	VendorID        uuid.UUID
	VendorName      string
	BillID          *uuid.UUID
	ProxyBillID     *uuid.UUID
	Amount          decimal.Decimal
	Direction       PaymentDirection
	PaymentMethod   PaymentMethod
	PaymentDate     time.Time
	ReferenceNumber string
	Notes           string
}

// NewCreditEntry records a monetary event. The amount must be strictly
// positive; sign semantics live in Direction, never in the amount.
func NewCreditEntry(
	tenantID uuid.UUID,
	vendorID uuid.UUID,
	vendorName string,
	amount valueobject.Money,
	direction PaymentDirection,
	method PaymentMethod,
	paymentDate time.Time,
) (*CreditEntry, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewValidationError("Vendor name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Credit entry amount must be positive")
	}
	if !direction.IsValid() {
		return nil, shared.NewValidationError("Payment direction must be INCOMING or OUTGOING")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("Payment method is not valid")
	}
	if paymentDate.IsZero() {
		return nil, shared.NewValidationError("Payment date cannot be empty")
	}

	entry := &CreditEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		VendorID:            vendorID,
		VendorName:          vendorName,
		Amount:              amount.Amount(),
		Direction:           direction,
		PaymentMethod:       method,
		PaymentDate:         paymentDate,
	}

	entry.AddDomainEvent(NewCreditEntryCreatedEvent(entry))

	return entry, nil
}

// LinkToBill associates the entry with a bill. An entry links to at most one
// container; linking to a bill clears nothing silently - a conflicting link
// is rejected.
func (e *CreditEntry) LinkToBill(billID uuid.UUID) error {
	if billID == uuid.Nil {
		return shared.NewValidationError("Bill ID cannot be empty")
	}
	if e.ProxyBillID != nil {
		return shared.NewValidationError("Credit entry is already linked to a proxy bill")
	}
	e.BillID = &billID
	return nil
}

// LinkToProxyBill associates the entry with a proxy bill
func (e *CreditEntry) LinkToProxyBill(proxyBillID uuid.UUID) error {
	if proxyBillID == uuid.Nil {
		return shared.NewValidationError("Proxy bill ID cannot be empty")
	}
	if e.BillID != nil {
		return shared.NewValidationError("Credit entry is already linked to a bill")
	}
	e.ProxyBillID = &proxyBillID
	return nil
}

// IsBareVendorEntry returns true when the entry has no container link
func (e *CreditEntry) IsBareVendorEntry() bool {
	return e.BillID == nil && e.ProxyBillID == nil
}

// CreditEntryUpdate carries the fields an explicit edit may change. Tenant
// and vendor are deliberately absent: an edit never moves an entry across
// tenants or vendors.
type CreditEntryUpdate struct {
	Amount          valueobject.Money
	Direction       PaymentDirection
	PaymentMethod   PaymentMethod
	PaymentDate     time.Time
	ReferenceNumber string
	Notes           string
	BillID          *uuid.UUID
	ProxyBillID     *uuid.UUID
}

// Update applies an explicit edit. This is the only sanctioned mutation of a
// credit entry after creation; callers that relink the entry to a container
// must re-validate the payment-exceeds-remaining rule before saving.
func (e *CreditEntry) Update(u CreditEntryUpdate) error {
	if !u.Amount.IsPositive() {
		return shared.NewValidationError("Credit entry amount must be positive")
	}
	if !u.Direction.IsValid() {
		return shared.NewValidationError("Payment direction must be INCOMING or OUTGOING")
	}
	if !u.PaymentMethod.IsValid() {
		return shared.NewValidationError("Payment method is not valid")
	}
	if u.PaymentDate.IsZero() {
		return shared.NewValidationError("Payment date cannot be empty")
	}
	if u.BillID != nil && u.ProxyBillID != nil {
		return shared.NewValidationError("Credit entry cannot be linked to both a bill and a proxy bill")
	}

	e.Amount = u.Amount.Amount()
	e.Direction = u.Direction
	e.PaymentMethod = u.PaymentMethod
	e.PaymentDate = u.PaymentDate
	e.ReferenceNumber = u.ReferenceNumber
	e.Notes = u.Notes
	e.BillID = u.BillID
	e.ProxyBillID = u.ProxyBillID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewCreditEntryUpdatedEvent(e))

	return nil
}
