package audit

import (
	"strings"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// Audit actions. Verb-first, matching the wording operators see in the
// activity trail. The set only grows; renaming breaks historic rows.
const (
	ActionCreateBill      = "CREATE_BILL"
	ActionConfirmBill     = "CONFIRM_BILL"
	ActionCancelBill      = "CANCEL_BILL"
	ActionAuthorizeBill   = "AUTHORIZE_BILL"
	ActionUnauthorizeBill = "UNAUTHORIZE_BILL"
	ActionMarkBillPaid    = "MARK_BILL_PAID"

	ActionCreateProxySplits   = "CREATE_PROXY_SPLITS"
	ActionCreateProxyBill     = "CREATE_PROXY_BILL"
	ActionConfirmProxyBill    = "CONFIRM_PROXY_BILL"
	ActionCancelProxyBill     = "CANCEL_PROXY_BILL"
	ActionReassignProxyVendor = "REASSIGN_PROXY_VENDOR"

	ActionCreateCredit = "CREATE_CREDIT"
	ActionUpdateCredit = "UPDATE_CREDIT"

	ActionCreateVendor      = "CREATE_VENDOR"
	ActionUpdateVendor      = "UPDATE_VENDOR"
	ActionDeleteVendor      = "DELETE_VENDOR"
	ActionBulkImportVendors = "BULK_IMPORT_VENDORS"

	ActionCreateDelivery       = "CREATE_DELIVERY"
	ActionUpdateDeliveryStatus = "UPDATE_DELIVERY_STATUS"

	ActionUpdatePermissions = "UPDATE_PERMISSIONS"
)

// Entity types recorded in the trail
const (
	EntityBill          = "BILL"
	EntityProxyBill     = "PROXY_BILL"
	EntityCreditEntry   = "CREDIT_ENTRY"
	EntityVendor        = "VENDOR"
	EntityDeliveryOrder = "DELIVERY_ORDER"
	EntityPermissions   = "PERMISSIONS"
)

// AuditLog is one write-once row in the activity trail. Entries are
// never updated or deleted; there are no mutator methods.
type AuditLog struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	UserID     uuid.UUID
	Username   string
	Action     string
	EntityType string
	EntityID   *uuid.UUID // Nil for catalog-wide actions such as UPDATE_PERMISSIONS
	Details    string     // Optional JSON payload with action specifics
	IPAddress  string
	CreatedAt  time.Time
}

// NewAuditLog creates an audit entry for an action on a specific entity
func NewAuditLog(tenantID, userID uuid.UUID, action, entityType string, entityID uuid.UUID) (*AuditLog, error) {
	entry, err := newAuditLog(tenantID, userID, action, entityType)
	if err != nil {
		return nil, err
	}
	if entityID == uuid.Nil {
		return nil, shared.NewValidationError("Entity ID cannot be empty")
	}

	entry.EntityID = &entityID
	return entry, nil
}

// NewCatalogAuditLog creates an audit entry for an action without a
// single target entity, such as a permission matrix update.
func NewCatalogAuditLog(tenantID, userID uuid.UUID, action, entityType string) (*AuditLog, error) {
	return newAuditLog(tenantID, userID, action, entityType)
}

func newAuditLog(tenantID, userID uuid.UUID, action, entityType string) (*AuditLog, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if strings.TrimSpace(action) == "" {
		return nil, shared.NewValidationError("Audit action cannot be empty")
	}
	if strings.TrimSpace(entityType) == "" {
		return nil, shared.NewValidationError("Audit entity type cannot be empty")
	}

	return &AuditLog{
		ID:         uuid.New(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     strings.TrimSpace(action),
		EntityType: strings.TrimSpace(entityType),
		CreatedAt:  time.Now(),
	}, nil
}

// WithUsername records the actor's username alongside the ID so the
// trail stays readable after the user is renamed or removed.
func (a *AuditLog) WithUsername(username string) *AuditLog {
	a.Username = username
	return a
}

// WithDetails attaches a JSON payload with action specifics
func (a *AuditLog) WithDetails(details string) *AuditLog {
	a.Details = details
	return a
}

// WithIPAddress records the caller's IP address
func (a *AuditLog) WithIPAddress(ip string) *AuditLog {
	a.IPAddress = ip
	return a
}
