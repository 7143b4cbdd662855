package models

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// VendorModel is the persistence model for the Vendor aggregate root.
// CustomerCode and GSTNumber are optional, so their per-tenant uniqueness
// is enforced by the services and a partial index in the migrations rather
// than a plain unique index that empty values would collide on.
type VendorModel struct {
	TenantAggregateModel
	Name            string               `gorm:"type:varchar(200);not null;index"`
	CustomerCode    string               `gorm:"type:varchar(50);index"`
	Type            partner.VendorType   `gorm:"type:varchar(20);not null;default:'SUPPLIER'"`
	Status          partner.VendorStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	IsBlocked       bool                 `gorm:"not null;default:false"`
	ContactPerson   string               `gorm:"type:varchar(100)"`
	ContactPhone    string               `gorm:"type:varchar(50)"`
	Email           string               `gorm:"type:varchar(200)"`
	Address         string               `gorm:"type:text"`
	BillingAddress  string               `gorm:"type:text"`
	ShippingAddress string               `gorm:"type:text"`
	City            string               `gorm:"type:varchar(100)"`
	State           string               `gorm:"type:varchar(100)"`
	Country         string               `gorm:"type:varchar(100)"`
	Pincode         string               `gorm:"type:varchar(20)"`
	GSTNumber       string               `gorm:"column:gst_number;type:varchar(20);index"`
	PAN             string               `gorm:"column:pan;type:varchar(20)"`
	AlternateName   string               `gorm:"type:varchar(200)"`
	AlternateMobile string               `gorm:"type:varchar(50)"`
	WhatsappNumber  string               `gorm:"type:varchar(50)"`
	CreditLimit     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	CreditDays      int                  `gorm:"not null;default:0"`
	Notes           string               `gorm:"type:text"`
	AdditionalData  string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *partner.Vendor {
	vendor := &partner.Vendor{
		Name:            m.Name,
		CustomerCode:    m.CustomerCode,
		Type:            m.Type,
		Status:          m.Status,
		IsBlocked:       m.IsBlocked,
		ContactPerson:   m.ContactPerson,
		ContactPhone:    m.ContactPhone,
		Email:           m.Email,
		Address:         m.Address,
		BillingAddress:  m.BillingAddress,
		ShippingAddress: m.ShippingAddress,
		City:            m.City,
		State:           m.State,
		Country:         m.Country,
		Pincode:         m.Pincode,
		GSTNumber:       m.GSTNumber,
		PAN:             m.PAN,
		AlternateName:   m.AlternateName,
		AlternateMobile: m.AlternateMobile,
		WhatsappNumber:  m.WhatsappNumber,
		CreditLimit:     m.CreditLimit,
		CreditDays:      m.CreditDays,
		Notes:           m.Notes,
		AdditionalData:  m.AdditionalData,
	}
	m.PopulateTenantAggregateRoot(&vendor.TenantAggregateRoot)
	return vendor
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	m.Name = v.Name
	m.CustomerCode = v.CustomerCode
	m.Type = v.Type
	m.Status = v.Status
	m.IsBlocked = v.IsBlocked
	m.ContactPerson = v.ContactPerson
	m.ContactPhone = v.ContactPhone
	m.Email = v.Email
	m.Address = v.Address
	m.BillingAddress = v.BillingAddress
	m.ShippingAddress = v.ShippingAddress
	m.City = v.City
	m.State = v.State
	m.Country = v.Country
	m.Pincode = v.Pincode
	m.GSTNumber = v.GSTNumber
	m.PAN = v.PAN
	m.AlternateName = v.AlternateName
	m.AlternateMobile = v.AlternateMobile
	m.WhatsappNumber = v.WhatsappNumber
	m.CreditLimit = v.CreditLimit
	m.CreditDays = v.CreditDays
	m.Notes = v.Notes
	m.AdditionalData = v.AdditionalData
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor entity.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
