package ledger

import (
	"fmt"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProxyBillItem is a line on a proxy bill, mirroring BillItem
type ProxyBillItem struct {
	ID          uuid.UUID
	ProxyBillID uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProxyBillItem creates a proxy bill line and derives its amount
func NewProxyBillItem(description string, quantity, unitPrice decimal.Decimal) (*ProxyBillItem, error) {
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
	return &ProxyBillItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ProxyBill is a sub-invoice split off from a parent bill. It references
// exactly one parent Bill and one Vendor, which may differ from the parent's
// vendor. Its lifecycle runs independently of the parent's, and its total is
// the sum of its own item amounts (no separate tax line).
type ProxyBill struct {
	shared.TenantAggregateRoot
	ProxyNumber  string
	ParentBillID uuid.UUID
	VendorID     uuid.UUID
	VendorName   string
	Items        []ProxyBillItem
	TotalAmount  decimal.Decimal
	Status       BillStatus
	Notes        string
	ConfirmedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// NewProxyBill creates a proxy bill in DRAFT status. The total is derived
// from the items.
func NewProxyBill(
	tenantID uuid.UUID,
	proxyNumber string,
	parentBillID uuid.UUID,
	vendorID uuid.UUID,
	vendorName string,
	items []ProxyBillItem,
) (*ProxyBill, error) {
	if proxyNumber == "" {
		return nil, shared.NewValidationError("Proxy number cannot be empty")
	}
	if len(proxyNumber) > 50 {
		return nil, shared.NewValidationError("Proxy number cannot exceed 50 characters")
	}
	if parentBillID == uuid.Nil {
		return nil, shared.NewValidationError("Parent bill ID cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewValidationError("Vendor name cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Proxy bill must have at least one item")
	}

	total := decimal.Zero
	for i := range items {
		if items[i].Quantity.LessThanOrEqual(decimal.Zero) || items[i].UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("Item quantity and unit price must be positive")
		}
		total = total.Add(items[i].Amount)
	}

	proxy := &ProxyBill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProxyNumber:         proxyNumber,
		ParentBillID:        parentBillID,
		VendorID:            vendorID,
		VendorName:          vendorName,
		Items:               items,
		TotalAmount:         total,
		Status:              BillStatusDraft,
	}
	for i := range proxy.Items {
		proxy.Items[i].ProxyBillID = proxy.ID
	}

	proxy.AddDomainEvent(NewProxyBillCreatedEvent(proxy))

	return proxy, nil
}

// ItemsTotal returns the sum of all item amounts
func (p *ProxyBill) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Items {
		total = total.Add(p.Items[i].Amount)
	}
	return total
}

// CheckMonetaryInvariant verifies items sum to the declared total
func (p *ProxyBill) CheckMonetaryInvariant() error {
	if len(p.Items) > 0 && !p.ItemsTotal().Equal(p.TotalAmount) {
		return shared.NewInvariantViolationError(fmt.Sprintf(
			"Proxy bill %s items sum %s does not equal total %s",
			p.ProxyNumber, p.ItemsTotal(), p.TotalAmount))
	}
	return nil
}

// ReassignVendor moves the proxy to a different vendor than the parent's.
// Only draft proxies may be reassigned.
func (p *ProxyBill) ReassignVendor(vendorID uuid.UUID, vendorName string) error {
	if p.Status != BillStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot reassign vendor of proxy bill in %s status", p.Status))
	}
	if vendorID == uuid.Nil {
		return shared.NewValidationError("Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return shared.NewValidationError("Vendor name cannot be empty")
	}

	p.VendorID = vendorID
	p.VendorName = vendorName
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Confirm transitions the proxy bill from DRAFT to CONFIRMED
func (p *ProxyBill) Confirm() error {
	if p.Status != BillStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot confirm proxy bill in %s status", p.Status))
	}

	now := time.Now()
	p.Status = BillStatusConfirmed
	p.ConfirmedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProxyBillConfirmedEvent(p))

	return nil
}

// Cancel transitions the proxy bill to CANCELLED
func (p *ProxyBill) Cancel(reason string) error {
	if p.Status == BillStatusCancelled {
		return shared.NewDomainError(shared.CodeInvalidState, "Proxy bill is already cancelled")
	}

	now := time.Now()
	p.Status = BillStatusCancelled
	p.CancelledAt = &now
	p.CancelReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProxyBillCancelledEvent(p, reason))

	return nil
}

// CanAcceptPayment returns true if payments may be recorded against the proxy
func (p *ProxyBill) CanAcceptPayment() bool {
	return p.Status.CanAcceptPayment()
}
