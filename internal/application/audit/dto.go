package audit

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditLogResponse represents one activity trail entry in API responses
type AuditLogResponse struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	UserID     uuid.UUID  `json:"user_id"`
	Username   string     `json:"username"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Details    string     `json:"details,omitempty"`
	IPAddress  string     `json:"ip_address"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AuditLogListFilter represents filter options for reading the trail.
// Dates bound the entry's recorded time, both ends inclusive.
type AuditLogListFilter struct {
	UserID     *uuid.UUID `form:"user_id"`
	Action     string     `form:"action"`
	EntityType string     `form:"entity_type"`
	EntityID   *uuid.UUID `form:"entity_id"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"min=0"`
	PageSize   int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToAuditLogResponse converts a domain AuditLog
func ToAuditLogResponse(entry *audit.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         entry.ID,
		TenantID:   entry.TenantID,
		UserID:     entry.UserID,
		Username:   entry.Username,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    entry.Details,
		IPAddress:  entry.IPAddress,
		CreatedAt:  entry.CreatedAt,
	}
}

// ToAuditLogResponses converts a slice of domain AuditLogs
func ToAuditLogResponses(entries []*audit.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToAuditLogResponse(entry)
	}
	return responses
}
