package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"customer_code": true,
	"type":          true,
	"status":        true,
	"city":          true,
	"state":         true,
	"credit_limit":  true,
	"credit_days":   true,
}

// BillSortFields contains allowed sort fields for bills
var BillSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"bill_number":   true,
	"vendor_id":     true,
	"vendor_name":   true,
	"bill_type":     true,
	"bill_date":     true,
	"subtotal":      true,
	"tax_amount":    true,
	"total_amount":  true,
	"status":        true,
	"is_authorized": true,
	"confirmed_at":  true,
}

// ProxyBillSortFields contains allowed sort fields for proxy bills
var ProxyBillSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"proxy_number":   true,
	"parent_bill_id": true,
	"vendor_id":      true,
	"vendor_name":    true,
	"total_amount":   true,
	"status":         true,
	"confirmed_at":   true,
}

// CreditEntrySortFields contains allowed sort fields for credit entries
var CreditEntrySortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"vendor_id":        true,
	"vendor_name":      true,
	"amount":           true,
	"direction":        true,
	"payment_method":   true,
	"payment_date":     true,
	"reference_number": true,
}

// DeliveryOrderSortFields contains allowed sort fields for delivery orders
var DeliveryOrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_number":   true,
	"vendor_id":      true,
	"status":         true,
	"scheduled_date": true,
	"dispatched_at":  true,
	"delivered_at":   true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"display_name":  true,
	"role_code":     true,
	"status":        true,
	"last_login_at": true,
}

// AuditLogSortFields contains allowed sort fields for audit log entries
var AuditLogSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"user_id":     true,
	"username":    true,
	"action":      true,
	"entity_type": true,
}
