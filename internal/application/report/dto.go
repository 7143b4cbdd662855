package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardResponse carries the landing-page totals
type DashboardResponse struct {
	VendorCount int64           `json:"vendor_count"`
	BillCount   int64           `json:"bill_count"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// VendorOutstandingResponse is one row of the per-vendor outstanding
// report. The credit limit is surfaced next to the net figure for
// operators to eyeball; nothing enforces it.
type VendorOutstandingResponse struct {
	VendorID      uuid.UUID       `json:"vendor_id"`
	VendorName    string          `json:"vendor_name"`
	CustomerCode  string          `json:"customer_code,omitempty"`
	TotalBilled   decimal.Decimal `json:"total_billed"`
	TotalIncoming decimal.Decimal `json:"total_incoming"`
	TotalOutgoing decimal.Decimal `json:"total_outgoing"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
}

// CollectionsRequest bounds the collections summary. Both dates are
// inclusive.
type CollectionsRequest struct {
	FromDate time.Time `form:"from_date" time_format:"2006-01-02" binding:"required"`
	ToDate   time.Time `form:"to_date" time_format:"2006-01-02" binding:"required"`
}

// CollectionsResponse summarizes money movement over a date range
type CollectionsResponse struct {
	FromDate      time.Time       `json:"from_date"`
	ToDate        time.Time       `json:"to_date"`
	TotalIncoming decimal.Decimal `json:"total_incoming"`
	TotalOutgoing decimal.Decimal `json:"total_outgoing"`
	Net           decimal.Decimal `json:"net"`
}

// DeliveryStatusReportResponse counts delivery orders per status
type DeliveryStatusReportResponse struct {
	Pending   int64 `json:"pending"`
	InTransit int64 `json:"in_transit"`
	Delivered int64 `json:"delivered"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}
