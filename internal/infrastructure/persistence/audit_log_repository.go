package persistence

import (
	"context"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements audit.AuditLogRepository using GORM.
// Entries are insert-only; there is no update or delete path.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Record appends an entry to the trail. When the context carries a
// transaction the entry commits or rolls back with the mutation it describes.
func (r *GormAuditLogRepository) Record(ctx context.Context, entry *audit.AuditLog) error {
	model := models.AuditLogModelFromDomain(entry)
	return dbForContext(ctx, r.db).Create(model).Error
}

// FindAllForTenant lists trail entries for a tenant, newest first
func (r *GormAuditLogRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter audit.AuditLogFilter) ([]*audit.AuditLog, error) {
	var logModels []models.AuditLogModel
	query := r.applyFilter(
		dbForContext(ctx, r.db).Model(&models.AuditLogModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]*audit.AuditLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToDomain()
	}
	return logs, nil
}

// CountForTenant counts trail entries matching the filter
func (r *GormAuditLogRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter audit.AuditLogFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		dbForContext(ctx, r.db).Model(&models.AuditLogModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies conditions, ordering and pagination. The default
// order is created_at DESC so the latest activity reads first.
func (r *GormAuditLogRepository) applyFilter(query *gorm.DB, filter audit.AuditLogFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, AuditLogSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyConditions applies filter conditions without ordering or pagination
func (r *GormAuditLogRepository) applyConditions(query *gorm.DB, filter audit.AuditLogFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR action ILIKE ?",
			searchPattern, searchPattern)
	}

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	return query
}

// Ensure GormAuditLogRepository implements AuditLogRepository
var _ audit.AuditLogRepository = (*GormAuditLogRepository)(nil)
