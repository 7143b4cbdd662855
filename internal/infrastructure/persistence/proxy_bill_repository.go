package persistence

import (
	"context"
	"errors"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProxyBillRepository implements ledger.ProxyBillRepository using GORM
type GormProxyBillRepository struct {
	db *gorm.DB
}

// NewGormProxyBillRepository creates a new GormProxyBillRepository
func NewGormProxyBillRepository(db *gorm.DB) *GormProxyBillRepository {
	return &GormProxyBillRepository{db: db}
}

// FindByIDForTenant finds a proxy bill with its items within a tenant
func (r *GormProxyBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.ProxyBill, error) {
	var model models.ProxyBillModel
	if err := dbForContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenantForUpdate locks the proxy bill row until the
// surrounding transaction completes
func (r *GormProxyBillRepository) FindByIDForTenantForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*ledger.ProxyBill, error) {
	var model models.ProxyBillModel
	if err := dbForContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists proxy bills for a tenant with filtering
func (r *GormProxyBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.ProxyBillFilter) ([]ledger.ProxyBill, error) {
	var proxyModels []models.ProxyBillModel
	query := r.applyFilter(
		dbForContext(ctx, r.db).Model(&models.ProxyBillModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Preload("Items").Find(&proxyModels).Error; err != nil {
		return nil, err
	}

	proxies := make([]ledger.ProxyBill, len(proxyModels))
	for i := range proxyModels {
		proxies[i] = *proxyModels[i].ToDomain()
	}
	return proxies, nil
}

// CountForTenant counts proxy bills matching the filter
func (r *GormProxyBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.ProxyBillFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		dbForContext(ctx, r.db).Model(&models.ProxyBillModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByParentBill lists the proxy bills split off a bill, oldest first
// so the split order is stable
func (r *GormProxyBillRepository) FindByParentBill(ctx context.Context, tenantID, parentBillID uuid.UUID) ([]ledger.ProxyBill, error) {
	var proxyModels []models.ProxyBillModel
	if err := dbForContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND parent_bill_id = ?", tenantID, parentBillID).
		Order("created_at ASC").
		Find(&proxyModels).Error; err != nil {
		return nil, err
	}

	proxies := make([]ledger.ProxyBill, len(proxyModels))
	for i := range proxyModels {
		proxies[i] = *proxyModels[i].ToDomain()
	}
	return proxies, nil
}

// Save creates or updates a proxy bill together with its items
func (r *GormProxyBillRepository) Save(ctx context.Context, proxy *ledger.ProxyBill) error {
	return dbForContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return saveProxyBill(tx, proxy)
	})
}

// SaveAll persists a batch of proxy bills inside one transaction so an
// N-way split lands entirely or not at all
func (r *GormProxyBillRepository) SaveAll(ctx context.Context, proxies []*ledger.ProxyBill) error {
	if len(proxies) == 0 {
		return nil
	}
	return dbForContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, proxy := range proxies {
			if err := saveProxyBill(tx, proxy); err != nil {
				return err
			}
		}
		return nil
	})
}

// saveProxyBill writes one proxy bill and reconciles its item rows
func saveProxyBill(tx *gorm.DB, proxy *ledger.ProxyBill) error {
	model := models.ProxyBillModelFromDomain(proxy)
	if err := tx.Omit("Items").Save(model).Error; err != nil {
		return err
	}

	itemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		itemIDs[i] = item.ID
	}

	if len(itemIDs) > 0 {
		if err := tx.Where("proxy_bill_id = ? AND id NOT IN ?", model.ID, itemIDs).
			Delete(&models.ProxyBillItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("proxy_bill_id = ?", model.ID).
			Delete(&models.ProxyBillItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].ProxyBillID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ExistsByProxyNumber checks tenant-scoped proxy number uniqueness
func (r *GormProxyBillRepository) ExistsByProxyNumber(ctx context.Context, tenantID uuid.UUID, proxyNumber string) (bool, error) {
	var count int64
	if err := dbForContext(ctx, r.db).
		Model(&models.ProxyBillModel{}).
		Where("tenant_id = ? AND proxy_number = ?", tenantID, proxyNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByVendor counts proxy bills referencing a vendor in any status
func (r *GormProxyBillRepository) CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	var count int64
	if err := dbForContext(ctx, r.db).
		Model(&models.ProxyBillModel{}).
		Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies conditions, ordering and pagination to the query
func (r *GormProxyBillRepository) applyFilter(query *gorm.DB, filter ledger.ProxyBillFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ProxyBillSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyConditions applies filter conditions without ordering or pagination
func (r *GormProxyBillRepository) applyConditions(query *gorm.DB, filter ledger.ProxyBillFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("proxy_number ILIKE ? OR vendor_name ILIKE ?",
			searchPattern, searchPattern)
	}

	if filter.ParentBillID != nil {
		query = query.Where("parent_bill_id = ?", *filter.ParentBillID)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	return query
}

// Ensure GormProxyBillRepository implements ProxyBillRepository
var _ ledger.ProxyBillRepository = (*GormProxyBillRepository)(nil)
