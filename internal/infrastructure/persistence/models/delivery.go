package models

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/delivery"
	"github.com/google/uuid"
)

// DeliveryOrderModel is the persistence model for the DeliveryOrder aggregate root.
type DeliveryOrderModel struct {
	TenantAggregateModel
	OrderNumber   string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_delivery_order_tenant_number,priority:2"`
	BillID        *uuid.UUID              `gorm:"type:uuid;index"`
	ProxyBillID   *uuid.UUID              `gorm:"type:uuid;index"`
	VendorID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	AssignedTo    *uuid.UUID              `gorm:"type:uuid;index"`
	Status        delivery.DeliveryStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Address       string                  `gorm:"type:text;not null"`
	ContactPhone  string                  `gorm:"type:varchar(50)"`
	ScheduledDate *time.Time              `gorm:"index"`
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time
	Remarks       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DeliveryOrderModel) TableName() string {
	return "delivery_orders"
}

// ToDomain converts the persistence model to a domain DeliveryOrder entity.
func (m *DeliveryOrderModel) ToDomain() *delivery.DeliveryOrder {
	order := &delivery.DeliveryOrder{
		OrderNumber:   m.OrderNumber,
		BillID:        m.BillID,
		ProxyBillID:   m.ProxyBillID,
		VendorID:      m.VendorID,
		AssignedTo:    m.AssignedTo,
		Status:        m.Status,
		Address:       m.Address,
		ContactPhone:  m.ContactPhone,
		ScheduledDate: m.ScheduledDate,
		DispatchedAt:  m.DispatchedAt,
		DeliveredAt:   m.DeliveredAt,
		Remarks:       m.Remarks,
	}
	m.PopulateTenantAggregateRoot(&order.TenantAggregateRoot)
	return order
}

// FromDomain populates the persistence model from a domain DeliveryOrder entity.
func (m *DeliveryOrderModel) FromDomain(o *delivery.DeliveryOrder) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.BillID = o.BillID
	m.ProxyBillID = o.ProxyBillID
	m.VendorID = o.VendorID
	m.AssignedTo = o.AssignedTo
	m.Status = o.Status
	m.Address = o.Address
	m.ContactPhone = o.ContactPhone
	m.ScheduledDate = o.ScheduledDate
	m.DispatchedAt = o.DispatchedAt
	m.DeliveredAt = o.DeliveredAt
	m.Remarks = o.Remarks
}

// DeliveryOrderModelFromDomain creates a new persistence model from a domain DeliveryOrder entity.
func DeliveryOrderModelFromDomain(o *delivery.DeliveryOrder) *DeliveryOrderModel {
	m := &DeliveryOrderModel{}
	m.FromDomain(o)
	return m
}
