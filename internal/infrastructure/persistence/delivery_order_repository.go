package persistence

import (
	"context"
	"errors"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/delivery"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryOrderRepository implements delivery.DeliveryOrderRepository using GORM
type GormDeliveryOrderRepository struct {
	db *gorm.DB
}

// NewGormDeliveryOrderRepository creates a new GormDeliveryOrderRepository
func NewGormDeliveryOrderRepository(db *gorm.DB) *GormDeliveryOrderRepository {
	return &GormDeliveryOrderRepository{db: db}
}

// FindByIDForTenant finds a delivery order by ID within a tenant
func (r *GormDeliveryOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*delivery.DeliveryOrder, error) {
	var model models.DeliveryOrderModel
	if err := dbForContext(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists delivery orders for a tenant with filtering
func (r *GormDeliveryOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter delivery.DeliveryOrderFilter) ([]*delivery.DeliveryOrder, error) {
	var orderModels []models.DeliveryOrderModel
	query := r.applyFilter(
		dbForContext(ctx, r.db).Model(&models.DeliveryOrderModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*delivery.DeliveryOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// CountForTenant counts delivery orders matching the filter
func (r *GormDeliveryOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter delivery.DeliveryOrderFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		dbForContext(ctx, r.db).Model(&models.DeliveryOrderModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a delivery order
func (r *GormDeliveryOrderRepository) Save(ctx context.Context, order *delivery.DeliveryOrder) error {
	model := models.DeliveryOrderModelFromDomain(order)
	return dbForContext(ctx, r.db).Save(model).Error
}

// ExistsByOrderNumber checks whether an order number is already used within a tenant
func (r *GormDeliveryOrderRepository) ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	var count int64
	if err := dbForContext(ctx, r.db).
		Model(&models.DeliveryOrderModel{}).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatusForTenant returns order counts grouped by status
func (r *GormDeliveryOrderRepository) CountByStatusForTenant(ctx context.Context, tenantID uuid.UUID) (map[delivery.DeliveryStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := dbForContext(ctx, r.db).
		Model(&models.DeliveryOrderModel{}).
		Select("status, count(*) as count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[delivery.DeliveryStatus]int64, len(rows))
	for _, row := range rows {
		counts[delivery.DeliveryStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// applyFilter applies conditions, ordering and pagination to the query
func (r *GormDeliveryOrderRepository) applyFilter(query *gorm.DB, filter delivery.DeliveryOrderFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, DeliveryOrderSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyConditions applies filter conditions without ordering or pagination
func (r *GormDeliveryOrderRepository) applyConditions(query *gorm.DB, filter delivery.DeliveryOrderFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR address ILIKE ?",
			searchPattern, searchPattern)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.BillID != nil {
		query = query.Where("bill_id = ?", *filter.BillID)
	}
	if filter.ProxyBillID != nil {
		query = query.Where("proxy_bill_id = ?", *filter.ProxyBillID)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	return query
}

// Ensure GormDeliveryOrderRepository implements DeliveryOrderRepository
var _ delivery.DeliveryOrderRepository = (*GormDeliveryOrderRepository)(nil)
