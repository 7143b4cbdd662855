package ledger

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Bill DTOs
// =============================================================================

// BillItemInput represents one free-form line on a bill or split part
type BillItemInput struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// ImmediatePaymentInput records a payment in the same transaction that
// creates the bill. FULL pays the bill total; PARTIAL pays Amount.
type ImmediatePaymentInput struct {
	Type            string           `json:"type" binding:"required,oneof=FULL PARTIAL"`
	Amount          *decimal.Decimal `json:"amount"`
	Method          string           `json:"method" binding:"omitempty,oneof=CASH CHEQUE BANK_TRANSFER UPI OTHER"`
	ReferenceNumber string           `json:"reference_number" binding:"max=100"`
	Date            *time.Time       `json:"date"`
}

// CreateBillRequest represents a request to create a new bill
type CreateBillRequest struct {
	BillNumber       string                 `json:"bill_number" binding:"required,min=1,max=50"`
	VendorID         uuid.UUID              `json:"vendor_id" binding:"required"`
	BillType         string                 `json:"bill_type" binding:"required,oneof=PURCHASE SALE"`
	BillDate         time.Time              `json:"bill_date" binding:"required"`
	Items            []BillItemInput        `json:"items" binding:"required,min=1,dive"`
	Notes            string                 `json:"notes" binding:"max=1000"`
	ImmediatePayment *ImmediatePaymentInput `json:"immediate_payment"`
}

// CancelBillRequest carries the optional cancellation reason
type CancelBillRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// AcceptPaymentRequest records a payment against a bill or proxy bill.
// FULL uses the container total as the amount; PARTIAL requires Amount.
type AcceptPaymentRequest struct {
	Type            string           `json:"type" binding:"required,oneof=FULL PARTIAL"`
	Amount          *decimal.Decimal `json:"amount"`
	Direction       string           `json:"direction" binding:"omitempty,oneof=INCOMING OUTGOING"`
	Method          string           `json:"method" binding:"omitempty,oneof=CASH CHEQUE BANK_TRANSFER UPI OTHER"`
	ReferenceNumber string           `json:"reference_number" binding:"max=100"`
	Date            *time.Time       `json:"date"`
	Notes           string           `json:"notes" binding:"max=1000"`
}

// SplitPartInput describes one proxy bill to carve out of a parent bill
type SplitPartInput struct {
	ProxyNumber string          `json:"proxy_number" binding:"required,min=1,max=50"`
	VendorID    *uuid.UUID      `json:"vendor_id"` // Defaults to the parent bill's vendor
	Items       []BillItemInput `json:"items" binding:"required,min=1,dive"`
	Notes       string          `json:"notes" binding:"max=1000"`
}

// SplitBillRequest represents an atomic N-way split of a bill
type SplitBillRequest struct {
	Splits []SplitPartInput `json:"splits" binding:"required,min=1,dive"`
}

// BillItemResponse represents a bill line in API responses
type BillItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReconciliationResponse is the derived payment state of a container
type ReconciliationResponse struct {
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Remaining     decimal.Decimal `json:"remaining"`
	PaymentStatus string          `json:"payment_status"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID             uuid.UUID               `json:"id"`
	TenantID       uuid.UUID               `json:"tenant_id"`
	BillNumber     string                  `json:"bill_number"`
	VendorID       uuid.UUID               `json:"vendor_id"`
	VendorName     string                  `json:"vendor_name"`
	BillType       string                  `json:"bill_type"`
	BillDate       time.Time               `json:"bill_date"`
	Items          []BillItemResponse      `json:"items"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
	TaxAmount      decimal.Decimal         `json:"tax_amount"`
	TotalAmount    decimal.Decimal         `json:"total_amount"`
	Status         string                  `json:"status"`
	IsAuthorized   bool                    `json:"is_authorized"`
	AuthorizedBy   *uuid.UUID              `json:"authorized_by,omitempty"`
	AuthorizedAt   *time.Time              `json:"authorized_at,omitempty"`
	Notes          string                  `json:"notes"`
	ConfirmedAt    *time.Time              `json:"confirmed_at,omitempty"`
	CancelledAt    *time.Time              `json:"cancelled_at,omitempty"`
	CancelReason   string                  `json:"cancel_reason,omitempty"`
	Reconciliation *ReconciliationResponse `json:"reconciliation,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
	Version        int                     `json:"version"`
}

// BillListResponse represents a list item for bills
type BillListResponse struct {
	ID           uuid.UUID       `json:"id"`
	BillNumber   string          `json:"bill_number"`
	VendorID     uuid.UUID       `json:"vendor_id"`
	VendorName   string          `json:"vendor_name"`
	BillType     string          `json:"bill_type"`
	BillDate     time.Time       `json:"bill_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	IsAuthorized bool            `json:"is_authorized"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BillListFilter represents filter options for the bill list
type BillListFilter struct {
	Search        string           `form:"search"`
	VendorID      *uuid.UUID       `form:"vendor_id"`
	Status        string           `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED CANCELLED"`
	BillType      string           `form:"bill_type" binding:"omitempty,oneof=PURCHASE SALE"`
	PaymentStatus string           `form:"payment_status" binding:"omitempty,oneof=UNPAID PARTIALLY_PAID FULLY_PAID"`
	FromDate      *time.Time       `form:"from_date" time_format:"2006-01-02"`
	ToDate        *time.Time       `form:"to_date" time_format:"2006-01-02"`
	MinAmount     *decimal.Decimal `form:"min_amount"`
	MaxAmount     *decimal.Decimal `form:"max_amount"`
	Page          int              `form:"page" binding:"min=0"`
	PageSize      int              `form:"page_size" binding:"min=0,max=100"`
	OrderBy       string           `form:"order_by"`
	OrderDir      string           `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	// AuthorizedOnly is set by the authorization gate for restricted
	// roles, never bound from the request.
	AuthorizedOnly bool `form:"-"`
}

// SplitBillResponse reports the outcome of an atomic split
type SplitBillResponse struct {
	ParentBillID uuid.UUID           `json:"parent_bill_id"`
	Created      []ProxyBillResponse `json:"created"`
}

// =============================================================================
// Proxy Bill DTOs
// =============================================================================

// CreateProxyBillRequest represents a request to create a single proxy bill
type CreateProxyBillRequest struct {
	ProxyNumber  string          `json:"proxy_number" binding:"required,min=1,max=50"`
	ParentBillID uuid.UUID       `json:"parent_bill_id" binding:"required"`
	VendorID     *uuid.UUID      `json:"vendor_id"` // Defaults to the parent bill's vendor
	Items        []BillItemInput `json:"items" binding:"required,min=1,dive"`
	Notes        string          `json:"notes" binding:"max=1000"`
}

// ReassignProxyVendorRequest moves a draft proxy bill to another vendor
type ReassignProxyVendorRequest struct {
	VendorID uuid.UUID `json:"vendor_id" binding:"required"`
}

// ProxyBillResponse represents a proxy bill in API responses
type ProxyBillResponse struct {
	ID             uuid.UUID               `json:"id"`
	TenantID       uuid.UUID               `json:"tenant_id"`
	ProxyNumber    string                  `json:"proxy_number"`
	ParentBillID   uuid.UUID               `json:"parent_bill_id"`
	VendorID       uuid.UUID               `json:"vendor_id"`
	VendorName     string                  `json:"vendor_name"`
	Items          []BillItemResponse      `json:"items"`
	TotalAmount    decimal.Decimal         `json:"total_amount"`
	Status         string                  `json:"status"`
	Notes          string                  `json:"notes"`
	ConfirmedAt    *time.Time              `json:"confirmed_at,omitempty"`
	CancelledAt    *time.Time              `json:"cancelled_at,omitempty"`
	CancelReason   string                  `json:"cancel_reason,omitempty"`
	Reconciliation *ReconciliationResponse `json:"reconciliation,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
	Version        int                     `json:"version"`
}

// ProxyBillListFilter represents filter options for the proxy bill list
type ProxyBillListFilter struct {
	Search       string     `form:"search"`
	ParentBillID *uuid.UUID `form:"parent_bill_id"`
	VendorID     *uuid.UUID `form:"vendor_id"`
	Status       string     `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED CANCELLED"`
	FromDate     *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate       *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page         int        `form:"page" binding:"min=0"`
	PageSize     int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// =============================================================================
// Credit Entry DTOs
// =============================================================================

// CreateCreditEntryRequest records a vendor-level monetary event. Entries
// against a bill or proxy bill go through the payment endpoints instead;
// this request rejects container links.
type CreateCreditEntryRequest struct {
	VendorID        uuid.UUID       `json:"vendor_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Direction       string          `json:"direction" binding:"required,oneof=INCOMING OUTGOING"`
	Method          string          `json:"method" binding:"required,oneof=CASH CHEQUE BANK_TRANSFER UPI OTHER"`
	Date            time.Time       `json:"date" binding:"required"`
	ReferenceNumber string          `json:"reference_number" binding:"max=100"`
	Notes           string          `json:"notes" binding:"max=1000"`
}

// UpdateCreditEntryRequest represents an explicit edit of a credit entry
type UpdateCreditEntryRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Direction       string          `json:"direction" binding:"required,oneof=INCOMING OUTGOING"`
	Method          string          `json:"method" binding:"required,oneof=CASH CHEQUE BANK_TRANSFER UPI OTHER"`
	Date            time.Time       `json:"date" binding:"required"`
	ReferenceNumber string          `json:"reference_number" binding:"max=100"`
	Notes           string          `json:"notes" binding:"max=1000"`
	BillID          *uuid.UUID      `json:"bill_id"`
	ProxyBillID     *uuid.UUID      `json:"proxy_bill_id"`
}

// CreditEntryResponse represents a credit entry in API responses
type CreditEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	VendorID        uuid.UUID       `json:"vendor_id"`
	VendorName      string          `json:"vendor_name"`
	BillID          *uuid.UUID      `json:"bill_id,omitempty"`
	ProxyBillID     *uuid.UUID      `json:"proxy_bill_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Direction       string          `json:"direction"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentDate     time.Time       `json:"payment_date"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CreditEntryListFilter represents filter options for the credit entry list
type CreditEntryListFilter struct {
	Search      string           `form:"search"`
	VendorID    *uuid.UUID       `form:"vendor_id"`
	BillID      *uuid.UUID       `form:"bill_id"`
	ProxyBillID *uuid.UUID       `form:"proxy_bill_id"`
	Direction   string           `form:"direction" binding:"omitempty,oneof=INCOMING OUTGOING"`
	Method      string           `form:"method" binding:"omitempty,oneof=CASH CHEQUE BANK_TRANSFER UPI OTHER"`
	FromDate    *time.Time       `form:"from_date" time_format:"2006-01-02"`
	ToDate      *time.Time       `form:"to_date" time_format:"2006-01-02"`
	MinAmount   *decimal.Decimal `form:"min_amount"`
	MaxAmount   *decimal.Decimal `form:"max_amount"`
	Page        int              `form:"page" binding:"min=0"`
	PageSize    int              `form:"page_size" binding:"min=0,max=100"`
	OrderBy     string           `form:"order_by"`
	OrderDir    string           `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// =============================================================================
// Mappers
// =============================================================================

// ToBillItemResponses converts domain bill items
func ToBillItemResponses(items []ledger.BillItem) []BillItemResponse {
	responses := make([]BillItemResponse, len(items))
	for i, item := range items {
		responses[i] = BillItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return responses
}

// ToProxyItemResponses converts domain proxy bill items
func ToProxyItemResponses(items []ledger.ProxyBillItem) []BillItemResponse {
	responses := make([]BillItemResponse, len(items))
	for i, item := range items {
		responses[i] = BillItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return responses
}

// ToBillResponse converts a domain Bill to BillResponse
func ToBillResponse(b *ledger.Bill) BillResponse {
	return BillResponse{
		ID:           b.ID,
		TenantID:     b.TenantID,
		BillNumber:   b.BillNumber,
		VendorID:     b.VendorID,
		VendorName:   b.VendorName,
		BillType:     string(b.BillType),
		BillDate:     b.BillDate,
		Items:        ToBillItemResponses(b.Items),
		Subtotal:     b.Subtotal,
		TaxAmount:    b.TaxAmount,
		TotalAmount:  b.TotalAmount,
		Status:       string(b.Status),
		IsAuthorized: b.IsAuthorized,
		AuthorizedBy: b.AuthorizedBy,
		AuthorizedAt: b.AuthorizedAt,
		Notes:        b.Notes,
		ConfirmedAt:  b.ConfirmedAt,
		CancelledAt:  b.CancelledAt,
		CancelReason: b.CancelReason,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		Version:      b.Version,
	}
}

// ToBillListResponse converts a domain Bill to BillListResponse
func ToBillListResponse(b *ledger.Bill) BillListResponse {
	return BillListResponse{
		ID:           b.ID,
		BillNumber:   b.BillNumber,
		VendorID:     b.VendorID,
		VendorName:   b.VendorName,
		BillType:     string(b.BillType),
		BillDate:     b.BillDate,
		TotalAmount:  b.TotalAmount,
		Status:       string(b.Status),
		IsAuthorized: b.IsAuthorized,
		CreatedAt:    b.CreatedAt,
	}
}

// ToBillListResponses converts a slice of domain Bills
func ToBillListResponses(bills []ledger.Bill) []BillListResponse {
	responses := make([]BillListResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillListResponse(&bills[i])
	}
	return responses
}

// ToProxyBillResponse converts a domain ProxyBill to ProxyBillResponse
func ToProxyBillResponse(p *ledger.ProxyBill) ProxyBillResponse {
	return ProxyBillResponse{
		ID:           p.ID,
		TenantID:     p.TenantID,
		ProxyNumber:  p.ProxyNumber,
		ParentBillID: p.ParentBillID,
		VendorID:     p.VendorID,
		VendorName:   p.VendorName,
		Items:        ToProxyItemResponses(p.Items),
		TotalAmount:  p.TotalAmount,
		Status:       string(p.Status),
		Notes:        p.Notes,
		ConfirmedAt:  p.ConfirmedAt,
		CancelledAt:  p.CancelledAt,
		CancelReason: p.CancelReason,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// ToProxyBillResponses converts a slice of domain ProxyBills
func ToProxyBillResponses(proxies []ledger.ProxyBill) []ProxyBillResponse {
	responses := make([]ProxyBillResponse, len(proxies))
	for i := range proxies {
		responses[i] = ToProxyBillResponse(&proxies[i])
	}
	return responses
}

// ToCreditEntryResponse converts a domain CreditEntry to CreditEntryResponse
func ToCreditEntryResponse(e *ledger.CreditEntry) CreditEntryResponse {
	return CreditEntryResponse{
		ID:              e.ID,
		TenantID:        e.TenantID,
		VendorID:        e.VendorID,
		VendorName:      e.VendorName,
		BillID:          e.BillID,
		ProxyBillID:     e.ProxyBillID,
		Amount:          e.Amount,
		Direction:       string(e.Direction),
		PaymentMethod:   string(e.PaymentMethod),
		PaymentDate:     e.PaymentDate,
		ReferenceNumber: e.ReferenceNumber,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}

// ToCreditEntryResponses converts a slice of domain CreditEntries
func ToCreditEntryResponses(entries []ledger.CreditEntry) []CreditEntryResponse {
	responses := make([]CreditEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToCreditEntryResponse(&entries[i])
	}
	return responses
}

// toDomainBillItems builds domain bill items from inputs
func toDomainBillItems(inputs []BillItemInput) ([]ledger.BillItem, error) {
	items := make([]ledger.BillItem, 0, len(inputs))
	for _, input := range inputs {
		item, err := ledger.NewBillItem(input.Description, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// toDomainProxyItems builds domain proxy bill items from inputs
func toDomainProxyItems(inputs []BillItemInput) ([]ledger.ProxyBillItem, error) {
	items := make([]ledger.ProxyBillItem, 0, len(inputs))
	for _, input := range inputs {
		item, err := ledger.NewProxyBillItem(input.Description, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}
