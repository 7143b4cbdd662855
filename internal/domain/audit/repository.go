package audit

import (
	"context"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// Recorder appends entries to the activity trail. Services call it
// inside the same transaction as the mutation it describes; a failed
// append fails the whole operation.
type Recorder interface {
	Record(ctx context.Context, entry *AuditLog) error
}

// AuditLogFilter defines filtering options for reading the trail
type AuditLogFilter struct {
	shared.Filter
	UserID     *uuid.UUID
	Action     *string
	EntityType *string
	EntityID   *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
}

// AuditLogRepository is the read surface over the trail plus the
// Recorder append. Reads serve the admin activity endpoint only; the
// core never consults past entries.
type AuditLogRepository interface {
	Recorder

	// FindAllForTenant retrieves entries matching the filter, newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter AuditLogFilter) ([]*AuditLog, error)

	// CountForTenant counts entries matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter AuditLogFilter) (int64, error)
}
