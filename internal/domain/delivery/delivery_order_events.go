package delivery

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants for delivery order events
const (
	EventTypeDeliveryOrderCreated       = "DeliveryOrderCreated"
	EventTypeDeliveryOrderAssigned      = "DeliveryOrderAssigned"
	EventTypeDeliveryOrderStatusChanged = "DeliveryOrderStatusChanged"
)

// AggregateTypeDeliveryOrder is the aggregate type for delivery order events
const AggregateTypeDeliveryOrder = "DeliveryOrder"

// DeliveryOrderCreatedEvent is raised when a delivery order is created
type DeliveryOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string
	VendorID    uuid.UUID
	BillID      *uuid.UUID
	ProxyBillID *uuid.UUID
}

// NewDeliveryOrderCreatedEvent creates a new DeliveryOrderCreatedEvent
func NewDeliveryOrderCreatedEvent(order *DeliveryOrder) *DeliveryOrderCreatedEvent {
	return &DeliveryOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryOrderCreated, AggregateTypeDeliveryOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		VendorID:        order.VendorID,
		BillID:          order.BillID,
		ProxyBillID:     order.ProxyBillID,
	}
}

// DeliveryOrderAssignedEvent is raised when a delivery order is assigned
type DeliveryOrderAssignedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string
	AssignedTo  uuid.UUID
}

// NewDeliveryOrderAssignedEvent creates a new DeliveryOrderAssignedEvent
func NewDeliveryOrderAssignedEvent(order *DeliveryOrder, assignedTo uuid.UUID) *DeliveryOrderAssignedEvent {
	return &DeliveryOrderAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryOrderAssigned, AggregateTypeDeliveryOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		AssignedTo:      assignedTo,
	}
}

// DeliveryOrderStatusChangedEvent is raised when a delivery order changes status
type DeliveryOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string
	OldStatus   DeliveryStatus
	NewStatus   DeliveryStatus
}

// NewDeliveryOrderStatusChangedEvent creates a new DeliveryOrderStatusChangedEvent
func NewDeliveryOrderStatusChangedEvent(order *DeliveryOrder, oldStatus, newStatus DeliveryStatus) *DeliveryOrderStatusChangedEvent {
	return &DeliveryOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryOrderStatusChanged, AggregateTypeDeliveryOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
