package models

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill aggregate root.
type BillModel struct {
	TenantAggregateModel
	BillNumber   string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_bill_tenant_number,priority:2"`
	VendorID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	VendorName   string            `gorm:"type:varchar(200);not null"`
	BillType     ledger.BillType   `gorm:"type:varchar(20);not null;default:'PURCHASE'"`
	BillDate     time.Time         `gorm:"not null;index"`
	Items        []BillItemModel   `gorm:"foreignKey:BillID;references:ID"`
	Subtotal     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount    decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount  decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Status       ledger.BillStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	IsAuthorized bool              `gorm:"not null;default:false;index"`
	AuthorizedBy *uuid.UUID        `gorm:"type:uuid"`
	AuthorizedAt *time.Time
	Notes        string `gorm:"type:text"`
	ConfirmedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill entity.
func (m *BillModel) ToDomain() *ledger.Bill {
	bill := &ledger.Bill{
		BillNumber:   m.BillNumber,
		VendorID:     m.VendorID,
		VendorName:   m.VendorName,
		BillType:     m.BillType,
		BillDate:     m.BillDate,
		Subtotal:     m.Subtotal,
		TaxAmount:    m.TaxAmount,
		TotalAmount:  m.TotalAmount,
		Status:       m.Status,
		IsAuthorized: m.IsAuthorized,
		AuthorizedBy: m.AuthorizedBy,
		AuthorizedAt: m.AuthorizedAt,
		Notes:        m.Notes,
		ConfirmedAt:  m.ConfirmedAt,
		CancelledAt:  m.CancelledAt,
		CancelReason: m.CancelReason,
		Items:        make([]ledger.BillItem, len(m.Items)),
	}
	m.PopulateTenantAggregateRoot(&bill.TenantAggregateRoot)
	for i, item := range m.Items {
		bill.Items[i] = *item.ToDomain()
	}
	return bill
}

// FromDomain populates the persistence model from a domain Bill entity.
func (m *BillModel) FromDomain(b *ledger.Bill) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.BillNumber = b.BillNumber
	m.VendorID = b.VendorID
	m.VendorName = b.VendorName
	m.BillType = b.BillType
	m.BillDate = b.BillDate
	m.Subtotal = b.Subtotal
	m.TaxAmount = b.TaxAmount
	m.TotalAmount = b.TotalAmount
	m.Status = b.Status
	m.IsAuthorized = b.IsAuthorized
	m.AuthorizedBy = b.AuthorizedBy
	m.AuthorizedAt = b.AuthorizedAt
	m.Notes = b.Notes
	m.ConfirmedAt = b.ConfirmedAt
	m.CancelledAt = b.CancelledAt
	m.CancelReason = b.CancelReason
	m.Items = make([]BillItemModel, len(b.Items))
	for i, item := range b.Items {
		m.Items[i] = *BillItemModelFromDomain(&item)
	}
}

// BillModelFromDomain creates a new persistence model from a domain Bill entity.
func BillModelFromDomain(b *ledger.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// BillItemModel is the persistence model for a bill line item.
type BillItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// ToDomain converts the persistence model to a domain BillItem entity.
func (m *BillItemModel) ToDomain() *ledger.BillItem {
	return &ledger.BillItem{
		ID:          m.ID,
		BillID:      m.BillID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain BillItem entity.
func (m *BillItemModel) FromDomain(i *ledger.BillItem) {
	m.ID = i.ID
	m.BillID = i.BillID
	m.Description = i.Description
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.Amount = i.Amount
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// BillItemModelFromDomain creates a new persistence model from a domain BillItem entity.
func BillItemModelFromDomain(i *ledger.BillItem) *BillItemModel {
	m := &BillItemModel{}
	m.FromDomain(i)
	return m
}

// ProxyBillModel is the persistence model for the ProxyBill aggregate root.
type ProxyBillModel struct {
	TenantAggregateModel
	ProxyNumber  string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_proxy_bill_tenant_number,priority:2"`
	ParentBillID uuid.UUID            `gorm:"type:uuid;not null;index"`
	VendorID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	VendorName   string               `gorm:"type:varchar(200);not null"`
	Items        []ProxyBillItemModel `gorm:"foreignKey:ProxyBillID;references:ID"`
	TotalAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status       ledger.BillStatus    `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Notes        string               `gorm:"type:text"`
	ConfirmedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ProxyBillModel) TableName() string {
	return "proxy_bills"
}

// ToDomain converts the persistence model to a domain ProxyBill entity.
func (m *ProxyBillModel) ToDomain() *ledger.ProxyBill {
	proxy := &ledger.ProxyBill{
		ProxyNumber:  m.ProxyNumber,
		ParentBillID: m.ParentBillID,
		VendorID:     m.VendorID,
		VendorName:   m.VendorName,
		TotalAmount:  m.TotalAmount,
		Status:       m.Status,
		Notes:        m.Notes,
		ConfirmedAt:  m.ConfirmedAt,
		CancelledAt:  m.CancelledAt,
		CancelReason: m.CancelReason,
		Items:        make([]ledger.ProxyBillItem, len(m.Items)),
	}
	m.PopulateTenantAggregateRoot(&proxy.TenantAggregateRoot)
	for i, item := range m.Items {
		proxy.Items[i] = *item.ToDomain()
	}
	return proxy
}

// FromDomain populates the persistence model from a domain ProxyBill entity.
func (m *ProxyBillModel) FromDomain(p *ledger.ProxyBill) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.ProxyNumber = p.ProxyNumber
	m.ParentBillID = p.ParentBillID
	m.VendorID = p.VendorID
	m.VendorName = p.VendorName
	m.TotalAmount = p.TotalAmount
	m.Status = p.Status
	m.Notes = p.Notes
	m.ConfirmedAt = p.ConfirmedAt
	m.CancelledAt = p.CancelledAt
	m.CancelReason = p.CancelReason
	m.Items = make([]ProxyBillItemModel, len(p.Items))
	for i, item := range p.Items {
		m.Items[i] = *ProxyBillItemModelFromDomain(&item)
	}
}

// ProxyBillModelFromDomain creates a new persistence model from a domain ProxyBill entity.
func ProxyBillModelFromDomain(p *ledger.ProxyBill) *ProxyBillModel {
	m := &ProxyBillModel{}
	m.FromDomain(p)
	return m
}

// ProxyBillItemModel is the persistence model for a proxy bill line item.
type ProxyBillItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProxyBillID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProxyBillItemModel) TableName() string {
	return "proxy_bill_items"
}

// ToDomain converts the persistence model to a domain ProxyBillItem entity.
func (m *ProxyBillItemModel) ToDomain() *ledger.ProxyBillItem {
	return &ledger.ProxyBillItem{
		ID:          m.ID,
		ProxyBillID: m.ProxyBillID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain ProxyBillItem entity.
func (m *ProxyBillItemModel) FromDomain(i *ledger.ProxyBillItem) {
	m.ID = i.ID
	m.ProxyBillID = i.ProxyBillID
	m.Description = i.Description
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.Amount = i.Amount
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// ProxyBillItemModelFromDomain creates a new persistence model from a domain ProxyBillItem entity.
func ProxyBillItemModelFromDomain(i *ledger.ProxyBillItem) *ProxyBillItemModel {
	m := &ProxyBillItemModel{}
	m.FromDomain(i)
	return m
}

// CreditEntryModel is the persistence model for the CreditEntry aggregate root.
// BillID and ProxyBillID are both nullable; at most one is set, and a bare
// vendor entry leaves both empty.
type CreditEntryModel struct {
	TenantAggregateModel
	VendorID        uuid.UUID               `gorm:"type:uuid;not null;index"`
	VendorName      string                  `gorm:"type:varchar(200);not null"`
	BillID          *uuid.UUID              `gorm:"type:uuid;index"`
	ProxyBillID     *uuid.UUID              `gorm:"type:uuid;index"`
	Amount          decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Direction       ledger.PaymentDirection `gorm:"type:varchar(10);not null;index"`
	PaymentMethod   ledger.PaymentMethod    `gorm:"type:varchar(20);not null"`
	PaymentDate     time.Time               `gorm:"not null;index"`
	ReferenceNumber string                  `gorm:"type:varchar(100)"`
	Notes           string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CreditEntryModel) TableName() string {
	return "credit_entries"
}

// ToDomain converts the persistence model to a domain CreditEntry entity.
func (m *CreditEntryModel) ToDomain() *ledger.CreditEntry {
	entry := &ledger.CreditEntry{
		VendorID:        m.VendorID,
		VendorName:      m.VendorName,
		BillID:          m.BillID,
		ProxyBillID:     m.ProxyBillID,
		Amount:          m.Amount,
		Direction:       m.Direction,
		PaymentMethod:   m.PaymentMethod,
		PaymentDate:     m.PaymentDate,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
	}
	m.PopulateTenantAggregateRoot(&entry.TenantAggregateRoot)
	return entry
}

// FromDomain populates the persistence model from a domain CreditEntry entity.
func (m *CreditEntryModel) FromDomain(e *ledger.CreditEntry) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.VendorID = e.VendorID
	m.VendorName = e.VendorName
	m.BillID = e.BillID
	m.ProxyBillID = e.ProxyBillID
	m.Amount = e.Amount
	m.Direction = e.Direction
	m.PaymentMethod = e.PaymentMethod
	m.PaymentDate = e.PaymentDate
	m.ReferenceNumber = e.ReferenceNumber
	m.Notes = e.Notes
}

// CreditEntryModelFromDomain creates a new persistence model from a domain CreditEntry entity.
func CreditEntryModelFromDomain(e *ledger.CreditEntry) *CreditEntryModel {
	m := &CreditEntryModel{}
	m.FromDomain(e)
	return m
}
