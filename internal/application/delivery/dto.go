package delivery

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/delivery"
	"github.com/google/uuid"
)

// CreateDeliveryRequest creates a pending delivery order for a bill or a
// proxy bill. Exactly one of BillID and ProxyBillID must be set; the
// vendor is derived from the referenced container.
type CreateDeliveryRequest struct {
	OrderNumber   string     `json:"order_number" binding:"required,min=1,max=50"`
	BillID        *uuid.UUID `json:"bill_id"`
	ProxyBillID   *uuid.UUID `json:"proxy_bill_id"`
	AssignedTo    uuid.UUID  `json:"assigned_to" binding:"required"`
	Address       string     `json:"address" binding:"required,max=500"`
	ContactPhone  string     `json:"contact_phone" binding:"max=20"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Remarks       string     `json:"remarks" binding:"max=1000"`
}

// UpdateDeliveryStatusRequest moves an order to the named status. Reason
// is recorded in the remarks when the target is CANCELLED.
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// DeliveryOrderResponse represents a delivery order in API responses
type DeliveryOrderResponse struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	OrderNumber   string     `json:"order_number"`
	BillID        *uuid.UUID `json:"bill_id,omitempty"`
	ProxyBillID   *uuid.UUID `json:"proxy_bill_id,omitempty"`
	VendorID      uuid.UUID  `json:"vendor_id"`
	AssignedTo    *uuid.UUID `json:"assigned_to,omitempty"`
	Status        string     `json:"status"`
	Address       string     `json:"address"`
	ContactPhone  string     `json:"contact_phone"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	DispatchedAt  *time.Time `json:"dispatched_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
	Remarks       string     `json:"remarks"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Version       int        `json:"version"`
}

// DeliveryListFilter represents filter options for the delivery list.
// Search matches the delivery address.
type DeliveryListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status" binding:"omitempty,oneof=PENDING IN_TRANSIT DELIVERED CANCELLED"`
	AssignedTo  *uuid.UUID `form:"assigned_to"`
	VendorID    *uuid.UUID `form:"vendor_id"`
	BillID      *uuid.UUID `form:"bill_id"`
	ProxyBillID *uuid.UUID `form:"proxy_bill_id"`
	FromDate    *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate      *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"min=0"`
	PageSize    int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDeliveryOrderResponse converts a domain DeliveryOrder
func ToDeliveryOrderResponse(d *delivery.DeliveryOrder) DeliveryOrderResponse {
	return DeliveryOrderResponse{
		ID:            d.ID,
		TenantID:      d.TenantID,
		OrderNumber:   d.OrderNumber,
		BillID:        d.BillID,
		ProxyBillID:   d.ProxyBillID,
		VendorID:      d.VendorID,
		AssignedTo:    d.AssignedTo,
		Status:        string(d.Status),
		Address:       d.Address,
		ContactPhone:  d.ContactPhone,
		ScheduledDate: d.ScheduledDate,
		DispatchedAt:  d.DispatchedAt,
		DeliveredAt:   d.DeliveredAt,
		Remarks:       d.Remarks,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Version:       d.Version,
	}
}

// ToDeliveryOrderResponses converts a slice of domain DeliveryOrders
func ToDeliveryOrderResponses(orders []*delivery.DeliveryOrder) []DeliveryOrderResponse {
	responses := make([]DeliveryOrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = ToDeliveryOrderResponse(order)
	}
	return responses
}
