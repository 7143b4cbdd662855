package persistence

import (
	"context"
	"errors"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/partner"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVendorRepository implements partner.VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByIDForTenant finds a vendor by ID within a tenant
func (r *GormVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
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

// FindByCustomerCode finds a vendor by its external ledger code
func (r *GormVendorRepository) FindByCustomerCode(ctx context.Context, tenantID uuid.UUID, customerCode string) (*partner.Vendor, error) {
	var model models.VendorModel
	if err := dbForContext(ctx, r.db).
		Where("tenant_id = ? AND customer_code = ?", tenantID, customerCode).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds vendors for a tenant matching the filter.
// A zero PageSize returns the full result set; the outstanding report
// walks every vendor that way.
func (r *GormVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.VendorFilter) ([]partner.Vendor, error) {
	var vendorModels []models.VendorModel
	query := r.applyFilter(
		dbForContext(ctx, r.db).Model(&models.VendorModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, err
	}

	vendors := make([]partner.Vendor, len(vendorModels))
	for i := range vendorModels {
		vendors[i] = *vendorModels[i].ToDomain()
	}
	return vendors, nil
}

// FindByIDs finds multiple vendors by their IDs
func (r *GormVendorRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Vendor, error) {
	if len(ids) == 0 {
		return []partner.Vendor{}, nil
	}

	var vendorModels []models.VendorModel
	if err := dbForContext(ctx, r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&vendorModels).Error; err != nil {
		return nil, err
	}

	vendors := make([]partner.Vendor, len(vendorModels))
	for i := range vendorModels {
		vendors[i] = *vendorModels[i].ToDomain()
	}
	return vendors, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	return dbForContext(ctx, r.db).Save(model).Error
}

// SaveBatch creates or updates multiple vendors in one round trip
func (r *GormVendorRepository) SaveBatch(ctx context.Context, vendors []*partner.Vendor) error {
	if len(vendors) == 0 {
		return nil
	}

	vendorModels := make([]*models.VendorModel, len(vendors))
	for i, v := range vendors {
		vendorModels[i] = models.VendorModelFromDomain(v)
	}
	return dbForContext(ctx, r.db).Save(vendorModels).Error
}

// DeleteForTenant deletes a vendor within a tenant
func (r *GormVendorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbForContext(ctx, r.db).
		Delete(&models.VendorModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts vendors for a tenant matching the filter
func (r *GormVendorRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.VendorFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		dbForContext(ctx, r.db).Model(&models.VendorModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCustomerCode checks if a vendor with the code exists in the tenant
func (r *GormVendorRepository) ExistsByCustomerCode(ctx context.Context, tenantID uuid.UUID, customerCode string) (bool, error) {
	var count int64
	if err := dbForContext(ctx, r.db).
		Model(&models.VendorModel{}).
		Where("tenant_id = ? AND customer_code = ?", tenantID, customerCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByGSTNumber checks if a vendor with the GST number exists in the tenant
func (r *GormVendorRepository) ExistsByGSTNumber(ctx context.Context, tenantID uuid.UUID, gstNumber string) (bool, error) {
	var count int64
	if err := dbForContext(ctx, r.db).
		Model(&models.VendorModel{}).
		Where("tenant_id = ? AND gst_number = ?", tenantID, gstNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies conditions, ordering and pagination to the query
func (r *GormVendorRepository) applyFilter(query *gorm.DB, filter partner.VendorFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, VendorSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyConditions applies filter conditions without ordering or pagination
func (r *GormVendorRepository) applyConditions(query *gorm.DB, filter partner.VendorFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR contact_phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.IsBlocked != nil {
		query = query.Where("is_blocked = ?", *filter.IsBlocked)
	}
	if filter.City != nil {
		query = query.Where("city = ?", *filter.City)
	}
	if filter.State != nil {
		query = query.Where("state = ?", *filter.State)
	}
	if filter.CreditLimitMin != nil {
		query = query.Where("credit_limit >= ?", *filter.CreditLimitMin)
	}
	if filter.CreditLimitMax != nil {
		query = query.Where("credit_limit <= ?", *filter.CreditLimitMax)
	}

	return query
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
