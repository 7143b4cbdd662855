package ledger

import (
	"fmt"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from the credit entries against a container.
// It is never stored; the reconciliation service computes it on demand.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "UNPAID"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusFullyPaid     PaymentStatus = "FULLY_PAID"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// ContainerKind identifies which ledger entity a payment container is
type ContainerKind string

const (
	ContainerKindBill      ContainerKind = "BILL"
	ContainerKindProxyBill ContainerKind = "PROXY_BILL"
)

// PaymentContainer is the reconciliation view of a bill-like entity: anything
// with a total that incoming payments are capped against.
type PaymentContainer interface {
	GetID() uuid.UUID
	ContainerKind() ContainerKind
	ContainerTenantID() uuid.UUID
	ContainerVendor() (uuid.UUID, string)
	ContainerTotal() decimal.Decimal
	CanAcceptPayment() bool
	AttachPayment(entry *CreditEntry) error
}

// ContainerKind identifies the bill as a payment container
func (b *Bill) ContainerKind() ContainerKind { return ContainerKindBill }

// ContainerTenantID returns the owning tenant
func (b *Bill) ContainerTenantID() uuid.UUID { return b.TenantID }

// ContainerVendor returns the vendor the bill belongs to
func (b *Bill) ContainerVendor() (uuid.UUID, string) { return b.VendorID, b.VendorName }

// ContainerTotal returns the amount payments are capped against
func (b *Bill) ContainerTotal() decimal.Decimal { return b.TotalAmount }

// AttachPayment links a credit entry to the bill
func (b *Bill) AttachPayment(entry *CreditEntry) error { return entry.LinkToBill(b.ID) }

// ContainerKind identifies the proxy bill as a payment container
func (p *ProxyBill) ContainerKind() ContainerKind { return ContainerKindProxyBill }

// ContainerTenantID returns the owning tenant
func (p *ProxyBill) ContainerTenantID() uuid.UUID { return p.TenantID }

// ContainerVendor returns the vendor the proxy bill belongs to
func (p *ProxyBill) ContainerVendor() (uuid.UUID, string) { return p.VendorID, p.VendorName }

// ContainerTotal returns the amount payments are capped against
func (p *ProxyBill) ContainerTotal() decimal.Decimal { return p.TotalAmount }

// AttachPayment links a credit entry to the proxy bill
func (p *ProxyBill) AttachPayment(entry *CreditEntry) error { return entry.LinkToProxyBill(p.ID) }

var (
	_ PaymentContainer = (*Bill)(nil)
	_ PaymentContainer = (*ProxyBill)(nil)
)

// ReconciliationService derives payment state from the ledger's current
// snapshot. All methods are pure computations over their inputs; callers are
// responsible for reading a consistent snapshot (the accept-payment path
// holds a row lock on the container while it reads the paid total).
type ReconciliationService struct{}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService() *ReconciliationService {
	return &ReconciliationService{}
}

// TotalPaid sums the INCOMING credit entries of a container. Returns zero,
// not null, when no entries exist. OUTGOING entries never reduce the figure:
// refunds are vendor-level events, not negative payments.
func (s *ReconciliationService) TotalPaid(entries []CreditEntry) decimal.Decimal {
	total := decimal.Zero
	for i := range entries {
		if entries[i].Direction == DirectionIncoming {
			total = total.Add(entries[i].Amount)
		}
	}
	return total
}

// Remaining computes what is still owed on a container. A negative result
// cannot be produced through the accept-payment path; observing one means
// the store was mutated outside the reconciliation boundary and is reported
// as an invariant violation, never clamped.
func (s *ReconciliationService) Remaining(totalAmount, totalPaid decimal.Decimal) (decimal.Decimal, error) {
	remaining := totalAmount.Sub(totalPaid)
	if remaining.IsNegative() {
		return remaining, shared.NewInvariantViolationError(fmt.Sprintf(
			"Paid total %s exceeds container total %s", totalPaid, totalAmount))
	}
	return remaining, nil
}

// PaymentStatusFor derives the payment status: zero paid is UNPAID, paid at
// or above the total is FULLY_PAID, anything between is PARTIALLY_PAID.
// Equality counts as fully paid even with a sub-paisa remainder.
func (s *ReconciliationService) PaymentStatusFor(totalPaid, totalAmount decimal.Decimal) PaymentStatus {
	switch {
	case totalPaid.LessThanOrEqual(decimal.Zero):
		return PaymentStatusUnpaid
	case totalPaid.GreaterThanOrEqual(totalAmount):
		return PaymentStatusFullyPaid
	default:
		return PaymentStatusPartiallyPaid
	}
}

// VendorOutstanding computes the net unsettled amount for a vendor:
//
//	sum of CONFIRMED bill totals - incoming entries + outgoing entries
//
// Outgoing payments increase outstanding (the vendor's counter-claim against
// the tenant); incoming payments decrease it. Bare vendor entries count the
// same as container-linked ones.
func (s *ReconciliationService) VendorOutstanding(confirmedBillTotal, incomingTotal, outgoingTotal decimal.Decimal) decimal.Decimal {
	return confirmedBillTotal.Sub(incomingTotal).Add(outgoingTotal)
}

// PaymentSpec describes a payment to record against a container
type PaymentSpec struct {
	Direction       PaymentDirection
	Method          PaymentMethod
	Date            time.Time
	ReferenceNumber string
	Notes           string
}

// AcceptPayment validates a payment against the container's consistent paid
// snapshot and builds the credit entry to append. This is the only path that
// enforces the payment cap; repositories persist entries without checking it.
//
// For INCOMING payments the amount must not exceed remaining; breaching the
// cap is rejected as an invariant violation and nothing is persisted.
func (s *ReconciliationService) AcceptPayment(
	container PaymentContainer,
	totalPaid decimal.Decimal,
	amount valueobject.Money,
	spec PaymentSpec,
) (*CreditEntry, error) {
	if !container.CanAcceptPayment() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Container does not accept payments in its current status")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if !spec.Direction.IsValid() {
		return nil, shared.NewValidationError("Payment direction must be INCOMING or OUTGOING")
	}

	if spec.Direction == DirectionIncoming {
		remaining, err := s.Remaining(container.ContainerTotal(), totalPaid)
		if err != nil {
			return nil, err
		}
		if amount.Amount().GreaterThan(remaining) {
			return nil, shared.NewInvariantViolationError(fmt.Sprintf(
				"Payment %s exceeds remaining %s on %s",
				amount.Amount(), remaining, container.ContainerKind()))
		}
	}

	vendorID, vendorName := container.ContainerVendor()
	entry, err := NewCreditEntry(
		container.ContainerTenantID(),
		vendorID,
		vendorName,
		amount,
		spec.Direction,
		spec.Method,
		spec.Date,
	)
	if err != nil {
		return nil, err
	}
	entry.ReferenceNumber = spec.ReferenceNumber
	entry.Notes = spec.Notes

	if err := container.AttachPayment(entry); err != nil {
		return nil, err
	}

	return entry, nil
}
