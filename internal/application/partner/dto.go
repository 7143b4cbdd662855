package partner

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest represents a request to create a new vendor
type CreateVendorRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Type            string           `json:"type" binding:"required,oneof=SUPPLIER CUSTOMER BOTH"`
	CustomerCode    string           `json:"customer_code" binding:"max=50"`
	ContactPerson   string           `json:"contact_person" binding:"max=100"`
	ContactPhone    string           `json:"contact_phone" binding:"max=50"`
	Email           string           `json:"email" binding:"omitempty,email,max=200"`
	Address         string           `json:"address" binding:"max=500"`
	BillingAddress  string           `json:"billing_address" binding:"max=500"`
	ShippingAddress string           `json:"shipping_address" binding:"max=500"`
	City            string           `json:"city" binding:"max=100"`
	State           string           `json:"state" binding:"max=100"`
	Country         string           `json:"country" binding:"max=100"`
	Pincode         string           `json:"pincode" binding:"max=20"`
	GSTNumber       string           `json:"gst_number" binding:"max=20"`
	PAN             string           `json:"pan" binding:"max=20"`
	AlternateName   string           `json:"alternate_name" binding:"max=200"`
	AlternateMobile string           `json:"alternate_mobile" binding:"max=50"`
	WhatsappNumber  string           `json:"whatsapp_number" binding:"max=50"`
	CreditLimit     *decimal.Decimal `json:"credit_limit"`
	CreditDays      *int             `json:"credit_days" binding:"omitempty,min=0,max=365"`
	Notes           string           `json:"notes" binding:"max=1000"`
	AdditionalData  string           `json:"additional_data"`
}

// UpdateVendorRequest represents a request to update a vendor.
// Only non-nil fields are applied.
type UpdateVendorRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Type            *string          `json:"type" binding:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
	Status          *string          `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	IsBlocked       *bool            `json:"is_blocked"`
	CustomerCode    *string          `json:"customer_code" binding:"omitempty,max=50"`
	ContactPerson   *string          `json:"contact_person" binding:"omitempty,max=100"`
	ContactPhone    *string          `json:"contact_phone" binding:"omitempty,max=50"`
	Email           *string          `json:"email" binding:"omitempty,max=200"`
	Address         *string          `json:"address" binding:"omitempty,max=500"`
	BillingAddress  *string          `json:"billing_address" binding:"omitempty,max=500"`
	ShippingAddress *string          `json:"shipping_address" binding:"omitempty,max=500"`
	City            *string          `json:"city" binding:"omitempty,max=100"`
	State           *string          `json:"state" binding:"omitempty,max=100"`
	Country         *string          `json:"country" binding:"omitempty,max=100"`
	Pincode         *string          `json:"pincode" binding:"omitempty,max=20"`
	GSTNumber       *string          `json:"gst_number" binding:"omitempty,max=20"`
	PAN             *string          `json:"pan" binding:"omitempty,max=20"`
	AlternateName   *string          `json:"alternate_name" binding:"omitempty,max=200"`
	AlternateMobile *string          `json:"alternate_mobile" binding:"omitempty,max=50"`
	WhatsappNumber  *string          `json:"whatsapp_number" binding:"omitempty,max=50"`
	CreditLimit     *decimal.Decimal `json:"credit_limit"`
	CreditDays      *int             `json:"credit_days" binding:"omitempty,min=0,max=365"`
	Notes           *string          `json:"notes" binding:"omitempty,max=1000"`
	AdditionalData  *string          `json:"additional_data"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Name            string          `json:"name"`
	CustomerCode    string          `json:"customer_code,omitempty"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	IsBlocked       bool            `json:"is_blocked"`
	ContactPerson   string          `json:"contact_person,omitempty"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Address         string          `json:"address,omitempty"`
	BillingAddress  string          `json:"billing_address,omitempty"`
	ShippingAddress string          `json:"shipping_address,omitempty"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	Country         string          `json:"country,omitempty"`
	Pincode         string          `json:"pincode,omitempty"`
	GSTNumber       string          `json:"gst_number,omitempty"`
	PAN             string          `json:"pan,omitempty"`
	AlternateName   string          `json:"alternate_name,omitempty"`
	AlternateMobile string          `json:"alternate_mobile,omitempty"`
	WhatsappNumber  string          `json:"whatsapp_number,omitempty"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CreditDays      int             `json:"credit_days"`
	Notes           string          `json:"notes,omitempty"`
	AdditionalData  string          `json:"additional_data,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// VendorListResponse represents a list item for vendors
type VendorListResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CustomerCode string          `json:"customer_code,omitempty"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	IsBlocked    bool            `json:"is_blocked"`
	ContactPhone string          `json:"contact_phone,omitempty"`
	Email        string          `json:"email,omitempty"`
	City         string          `json:"city,omitempty"`
	GSTNumber    string          `json:"gst_number,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	CreatedAt    time.Time       `json:"created_at"`
}

// VendorListFilter represents filter options for the vendor list
type VendorListFilter struct {
	Search         string           `form:"search"`
	Type           string           `form:"type" binding:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
	Status         string           `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	IsBlocked      *bool            `form:"is_blocked"`
	City           *string          `form:"city"`
	State          *string          `form:"state"`
	CreditLimitMin *decimal.Decimal `form:"credit_limit_min"`
	CreditLimitMax *decimal.Decimal `form:"credit_limit_max"`
	Page           int              `form:"page" binding:"min=0"`
	PageSize       int              `form:"page_size" binding:"min=0,max=100"`
	OrderBy        string           `form:"order_by"`
	OrderDir       string           `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// VendorImportRow is one vendor in a bulk import request. Rows arrive
// already parsed; file handling and column mapping happen outside this API.
type VendorImportRow struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	CustomerCode    string           `json:"customer_code" binding:"max=50"`
	Type            string           `json:"type" binding:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
	Status          string           `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	IsBlocked       bool             `json:"is_blocked"`
	ContactPerson   string           `json:"contact_person"`
	ContactPhone    string           `json:"contact_phone"`
	Email           string           `json:"email"`
	Address         string           `json:"address"`
	BillingAddress  string           `json:"billing_address"`
	ShippingAddress string           `json:"shipping_address"`
	City            string           `json:"city"`
	State           string           `json:"state"`
	Country         string           `json:"country"`
	Pincode         string           `json:"pincode"`
	GSTNumber       string           `json:"gst_number"`
	PAN             string           `json:"pan"`
	AlternateName   string           `json:"alternate_name"`
	AlternateMobile string           `json:"alternate_mobile"`
	WhatsappNumber  string           `json:"whatsapp_number"`
	CreditLimit     *decimal.Decimal `json:"credit_limit"`
	CreditDays      *int             `json:"credit_days"`
	Notes           string           `json:"notes"`
	AdditionalData  string           `json:"additional_data"`
}

// BulkImportRequest represents a bulk vendor import
type BulkImportRequest struct {
	Vendors []VendorImportRow `json:"vendors" binding:"required,min=1,dive"`
}

// ImportRowError reports why one import row was skipped
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// BulkImportResponse summarizes a bulk import. Valid rows are saved even
// when others are skipped; Errors carries one entry per skipped row.
type BulkImportResponse struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Skipped   int              `json:"skipped"`
	Errors    []ImportRowError `json:"errors"`
}

// ToVendorResponse converts a vendor domain object to a response DTO
func ToVendorResponse(vendor *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:              vendor.ID,
		TenantID:        vendor.TenantID,
		Name:            vendor.Name,
		CustomerCode:    vendor.CustomerCode,
		Type:            string(vendor.Type),
		Status:          string(vendor.Status),
		IsBlocked:       vendor.IsBlocked,
		ContactPerson:   vendor.ContactPerson,
		ContactPhone:    vendor.ContactPhone,
		Email:           vendor.Email,
		Address:         vendor.Address,
		BillingAddress:  vendor.BillingAddress,
		ShippingAddress: vendor.ShippingAddress,
		City:            vendor.City,
		State:           vendor.State,
		Country:         vendor.Country,
		Pincode:         vendor.Pincode,
		GSTNumber:       vendor.GSTNumber,
		PAN:             vendor.PAN,
		AlternateName:   vendor.AlternateName,
		AlternateMobile: vendor.AlternateMobile,
		WhatsappNumber:  vendor.WhatsappNumber,
		CreditLimit:     vendor.CreditLimit,
		CreditDays:      vendor.CreditDays,
		Notes:           vendor.Notes,
		AdditionalData:  vendor.AdditionalData,
		CreatedAt:       vendor.CreatedAt,
		UpdatedAt:       vendor.UpdatedAt,
		Version:         vendor.Version,
	}
}

// ToVendorListResponse converts a vendor to a list item DTO
func ToVendorListResponse(vendor *partner.Vendor) VendorListResponse {
	return VendorListResponse{
		ID:           vendor.ID,
		Name:         vendor.Name,
		CustomerCode: vendor.CustomerCode,
		Type:         string(vendor.Type),
		Status:       string(vendor.Status),
		IsBlocked:    vendor.IsBlocked,
		ContactPhone: vendor.ContactPhone,
		Email:        vendor.Email,
		City:         vendor.City,
		GSTNumber:    vendor.GSTNumber,
		CreditLimit:  vendor.CreditLimit,
		CreatedAt:    vendor.CreatedAt,
	}
}

// ToVendorListResponses converts a slice of vendors to list item DTOs
func ToVendorListResponses(vendors []partner.Vendor) []VendorListResponse {
	responses := make([]VendorListResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorListResponse(&vendors[i])
	}
	return responses
}
