package ledger

import (
	"fmt"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus represents the lifecycle status of a bill or proxy bill
type BillStatus string

const (
	BillStatusDraft     BillStatus = "DRAFT"     // Editable, not yet part of vendor outstanding
	BillStatusConfirmed BillStatus = "CONFIRMED" // Counted in vendor outstanding, items frozen
	BillStatusCancelled BillStatus = "CANCELLED" // Void; accepts no items, splits or payments
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusDraft, BillStatusConfirmed, BillStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the item set can no longer change.
// CONFIRMED and CANCELLED are both one-way with respect to DRAFT.
func (s BillStatus) IsTerminal() bool {
	return s == BillStatusConfirmed || s == BillStatusCancelled
}

// CanAcceptPayment returns true if payments may be recorded in this status
func (s BillStatus) CanAcceptPayment() bool {
	return s != BillStatusCancelled
}

// BillType distinguishes purchase invoices from sale invoices
type BillType string

const (
	BillTypePurchase BillType = "PURCHASE"
	BillTypeSale     BillType = "SALE"
)

// IsValid checks if the bill type is valid
func (t BillType) IsValid() bool {
	return t == BillTypePurchase || t == BillTypeSale
}

// String returns the string representation of BillType
func (t BillType) String() string {
	return string(t)
}

// BillItem is a line on a bill: amount is always quantity times unit price
type BillItem struct {
	ID          uuid.UUID
	BillID      uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBillItem creates a bill line and derives its amount
func NewBillItem(description string, quantity, unitPrice decimal.Decimal) (*BillItem, error) {
	if description == "" {
		return nil, shared.NewValidationError("Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Item quantity must be positive")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Item unit price must be positive")
	}

	now := time.Now()
	return &BillItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Bill represents a vendor invoice aggregate root.
//
// Monetary invariant: TotalAmount == Subtotal + TaxAmount, and Subtotal equals
// the sum of item amounts. Both hold from construction onward; payments never
// touch these fields (paid/remaining are derived from credit entries by the
// reconciliation service).
//
// IsAuthorized is orthogonal to Status: it gates visibility for the restricted
// organiser role and says nothing about lifecycle.
type Bill struct {
	shared.TenantAggregateRoot
	BillNumber   string
	VendorID     uuid.UUID
	VendorName   string
	BillType     BillType
	BillDate     time.Time
	Items        []BillItem
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	TotalAmount  decimal.Decimal
	Status       BillStatus
	IsAuthorized bool
	AuthorizedBy *uuid.UUID
	AuthorizedAt *time.Time
	Notes        string
	ConfirmedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// NewBill creates a bill in DRAFT status. The subtotal is derived from the
// items, tax from the given rate, and the total from both.
func NewBill(
	tenantID uuid.UUID,
	billNumber string,
	vendorID uuid.UUID,
	vendorName string,
	billType BillType,
	billDate time.Time,
	items []BillItem,
	taxRate decimal.Decimal,
) (*Bill, error) {
	if billNumber == "" {
		return nil, shared.NewValidationError("Bill number cannot be empty")
	}
	if len(billNumber) > 50 {
		return nil, shared.NewValidationError("Bill number cannot exceed 50 characters")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewValidationError("Vendor name cannot be empty")
	}
	if !billType.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Bill type %q is not valid", billType))
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Bill must have at least one item")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewValidationError("Tax rate cannot be negative")
	}

	subtotal := decimal.Zero
	for i := range items {
		if items[i].Quantity.LessThanOrEqual(decimal.Zero) || items[i].UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("Item quantity and unit price must be positive")
		}
		subtotal = subtotal.Add(items[i].Amount)
	}

	tax := subtotal.Mul(taxRate).Round(2)

	bill := &Bill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BillNumber:          billNumber,
		VendorID:            vendorID,
		VendorName:          vendorName,
		BillType:            billType,
		BillDate:            billDate,
		Items:               items,
		Subtotal:            subtotal,
		TaxAmount:           tax,
		TotalAmount:         subtotal.Add(tax),
		Status:              BillStatusDraft,
	}
	for i := range bill.Items {
		bill.Items[i].BillID = bill.ID
	}

	bill.AddDomainEvent(NewBillCreatedEvent(bill))

	return bill, nil
}

// ItemsTotal returns the sum of all item amounts
func (b *Bill) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range b.Items {
		total = total.Add(b.Items[i].Amount)
	}
	return total
}

// CheckMonetaryInvariant verifies total = subtotal + tax and that items sum
// to the subtotal. A failure here is a bug signal, not a business rejection.
func (b *Bill) CheckMonetaryInvariant() error {
	if !b.TotalAmount.Equal(b.Subtotal.Add(b.TaxAmount)) {
		return shared.NewInvariantViolationError(fmt.Sprintf(
			"Bill %s total %s does not equal subtotal %s plus tax %s",
			b.BillNumber, b.TotalAmount, b.Subtotal, b.TaxAmount))
	}
	if len(b.Items) > 0 && !b.ItemsTotal().Equal(b.Subtotal) {
		return shared.NewInvariantViolationError(fmt.Sprintf(
			"Bill %s items sum %s does not equal subtotal %s",
			b.BillNumber, b.ItemsTotal(), b.Subtotal))
	}
	return nil
}

// Confirm transitions the bill from DRAFT to CONFIRMED
func (b *Bill) Confirm() error {
	if b.Status != BillStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot confirm bill in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BillStatusConfirmed
	b.ConfirmedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBillConfirmedEvent(b))

	return nil
}

// Cancel transitions the bill to CANCELLED. Both DRAFT and CONFIRMED bills
// may be cancelled; a cancelled bill stays cancelled.
func (b *Bill) Cancel(reason string) error {
	if b.Status == BillStatusCancelled {
		return shared.NewDomainError(shared.CodeInvalidState, "Bill is already cancelled")
	}

	now := time.Now()
	b.Status = BillStatusCancelled
	b.CancelledAt = &now
	b.CancelReason = reason
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBillCancelledEvent(b, reason))

	return nil
}

// Authorize marks the bill visible to the restricted organiser role.
// Authorization is independent of lifecycle status.
func (b *Bill) Authorize(by uuid.UUID) error {
	if by == uuid.Nil {
		return shared.NewValidationError("Authorizing user ID cannot be empty")
	}

	now := time.Now()
	b.IsAuthorized = true
	b.AuthorizedBy = &by
	b.AuthorizedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBillAuthorizedEvent(b, by))

	return nil
}

// Unauthorize withdraws organiser visibility and clears the authorization
// audit fields together, keeping the flag and its metadata consistent.
func (b *Bill) Unauthorize() {
	b.IsAuthorized = false
	b.AuthorizedBy = nil
	b.AuthorizedAt = nil
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBillUnauthorizedEvent(b))
}

// CanAcceptPayment returns true if payments may be recorded against the bill
func (b *Bill) CanAcceptPayment() bool {
	return b.Status.CanAcceptPayment()
}

// CanSplit returns true if the bill may be split into proxy bills.
// Cancelled bills accept no new proxies; draft and confirmed bills split.
func (b *Bill) CanSplit() bool {
	return b.Status != BillStatusCancelled
}
