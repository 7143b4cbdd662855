package delivery

import (
	"fmt"
	"strings"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryStatus represents the status of a delivery order
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusCancelled DeliveryStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s DeliveryStatus) String() string {
	return string(s)
}

// IsTerminal checks if the status is terminal
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	switch s {
	case DeliveryStatusPending:
		return target == DeliveryStatusInTransit || target == DeliveryStatusCancelled
	case DeliveryStatusInTransit:
		return target == DeliveryStatusDelivered || target == DeliveryStatusCancelled
	case DeliveryStatusDelivered, DeliveryStatusCancelled:
		return false // Terminal states
	}
	return false
}

// DeliveryOrder tracks the dispatch of one bill or one proxy bill to a
// vendor address. Exactly one container link is set; the vendor is
// carried redundantly so listings avoid a join.
type DeliveryOrder struct {
	shared.TenantAggregateRoot
	OrderNumber   string
	BillID        *uuid.UUID
	ProxyBillID   *uuid.UUID
	VendorID      uuid.UUID
	AssignedTo    *uuid.UUID // Delivery user responsible for the run
	Status        DeliveryStatus
	Address       string
	ContactPhone  string
	ScheduledDate *time.Time
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time
	Remarks       string
}

// NewDeliveryOrder creates a pending delivery order for a bill or a proxy bill
func NewDeliveryOrder(tenantID uuid.UUID, orderNumber string, vendorID uuid.UUID, billID, proxyBillID *uuid.UUID, address string) (*DeliveryOrder, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewValidationError("Delivery order number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("Vendor ID cannot be empty")
	}
	if err := validateContainerLink(billID, proxyBillID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewValidationError("Delivery address cannot be empty")
	}

	order := &DeliveryOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         strings.TrimSpace(orderNumber),
		BillID:              billID,
		ProxyBillID:         proxyBillID,
		VendorID:            vendorID,
		Status:              DeliveryStatusPending,
		Address:             strings.TrimSpace(address),
	}

	order.AddDomainEvent(NewDeliveryOrderCreatedEvent(order))

	return order, nil
}

// Assign hands the order to a delivery user. Allowed until the order
// reaches a terminal status.
func (d *DeliveryOrder) Assign(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewValidationError("Assignee cannot be empty")
	}
	if d.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot assign delivery in %s status", d.Status))
	}

	d.AssignedTo = &userID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDeliveryOrderAssignedEvent(d, userID))

	return nil
}

// IsAssignedTo reports whether the order belongs to the given delivery user
func (d *DeliveryOrder) IsAssignedTo(userID uuid.UUID) bool {
	return d.AssignedTo != nil && *d.AssignedTo == userID
}

// SetContactPhone sets the contact phone for the delivery
func (d *DeliveryOrder) SetContactPhone(phone string) error {
	if len(phone) > 20 {
		return shared.NewValidationError("Contact phone cannot exceed 20 characters")
	}

	d.ContactPhone = strings.TrimSpace(phone)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetScheduledDate sets the planned delivery date
func (d *DeliveryOrder) SetScheduledDate(date time.Time) {
	d.ScheduledDate = &date
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// SetRemarks sets free-form remarks on the order
func (d *DeliveryOrder) SetRemarks(remarks string) error {
	if len(remarks) > 1000 {
		return shared.NewValidationError("Remarks cannot exceed 1000 characters")
	}

	d.Remarks = strings.TrimSpace(remarks)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// MarkInTransit marks the order as dispatched. Requires an assignee.
func (d *DeliveryOrder) MarkInTransit() error {
	if !d.Status.CanTransitionTo(DeliveryStatusInTransit) {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot dispatch delivery in %s status", d.Status))
	}
	if d.AssignedTo == nil {
		return shared.NewDomainError(shared.CodeInvalidState, "Delivery must be assigned before dispatch")
	}

	now := time.Now()
	oldStatus := d.Status
	d.Status = DeliveryStatusInTransit
	d.DispatchedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDeliveryOrderStatusChangedEvent(d, oldStatus, DeliveryStatusInTransit))

	return nil
}

// MarkDelivered marks the order as delivered
func (d *DeliveryOrder) MarkDelivered() error {
	if !d.Status.CanTransitionTo(DeliveryStatusDelivered) {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot complete delivery in %s status", d.Status))
	}

	now := time.Now()
	oldStatus := d.Status
	d.Status = DeliveryStatusDelivered
	d.DeliveredAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDeliveryOrderStatusChangedEvent(d, oldStatus, DeliveryStatusDelivered))

	return nil
}

// Cancel cancels the delivery order
func (d *DeliveryOrder) Cancel(reason string) error {
	if !d.Status.CanTransitionTo(DeliveryStatusCancelled) {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot cancel delivery in %s status", d.Status))
	}

	oldStatus := d.Status
	d.Status = DeliveryStatusCancelled
	if reason != "" {
		d.Remarks = strings.TrimSpace(reason)
	}
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDeliveryOrderStatusChangedEvent(d, oldStatus, DeliveryStatusCancelled))

	return nil
}

// TransitionTo applies a status change by target status. Used by the
// status endpoint where the caller names the target.
func (d *DeliveryOrder) TransitionTo(target DeliveryStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid delivery status: %s", target))
	}

	switch target {
	case DeliveryStatusInTransit:
		return d.MarkInTransit()
	case DeliveryStatusDelivered:
		return d.MarkDelivered()
	case DeliveryStatusCancelled:
		return d.Cancel("")
	default:
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot transition delivery to %s", target))
	}
}

// IsForProxyBill reports whether the order dispatches a proxy bill
func (d *DeliveryOrder) IsForProxyBill() bool {
	return d.ProxyBillID != nil
}

func validateContainerLink(billID, proxyBillID *uuid.UUID) error {
	if billID == nil && proxyBillID == nil {
		return shared.NewValidationError("Delivery must reference a bill or a proxy bill")
	}
	if billID != nil && proxyBillID != nil {
		return shared.NewValidationError("Delivery cannot reference both a bill and a proxy bill")
	}
	if billID != nil && *billID == uuid.Nil {
		return shared.NewValidationError("Bill ID cannot be empty")
	}
	if proxyBillID != nil && *proxyBillID == uuid.Nil {
		return shared.NewValidationError("Proxy bill ID cannot be empty")
	}
	return nil
}
