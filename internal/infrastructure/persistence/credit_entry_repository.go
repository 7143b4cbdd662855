package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCreditEntryRepository implements ledger.CreditEntryRepository using GORM
type GormCreditEntryRepository struct {
	db *gorm.DB
}

// NewGormCreditEntryRepository creates a new GormCreditEntryRepository
func NewGormCreditEntryRepository(db *gorm.DB) *GormCreditEntryRepository {
	return &GormCreditEntryRepository{db: db}
}

// FindByIDForTenant finds a credit entry by ID within a tenant
func (r *GormCreditEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.CreditEntry, error) {
	var model models.CreditEntryModel
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

// FindAllForTenant lists credit entries for a tenant with filtering
func (r *GormCreditEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.CreditEntryFilter) ([]ledger.CreditEntry, error) {
	var entryModels []models.CreditEntryModel
	query := r.applyFilter(
		dbForContext(ctx, r.db).Model(&models.CreditEntryModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.CreditEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, nil
}

// CountForTenant counts credit entries matching the filter
func (r *GormCreditEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.CreditEntryFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		dbForContext(ctx, r.db).Model(&models.CreditEntryModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByBill lists the entries linked to a bill, oldest first
func (r *GormCreditEntryRepository) FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]ledger.CreditEntry, error) {
	var entryModels []models.CreditEntryModel
	if err := dbForContext(ctx, r.db).
		Where("tenant_id = ? AND bill_id = ?", tenantID, billID).
		Order("payment_date ASC, created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.CreditEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, nil
}

// FindByProxyBill lists the entries linked to a proxy bill, oldest first
func (r *GormCreditEntryRepository) FindByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) ([]ledger.CreditEntry, error) {
	var entryModels []models.CreditEntryModel
	if err := dbForContext(ctx, r.db).
		Where("tenant_id = ? AND proxy_bill_id = ?", tenantID, proxyBillID).
		Order("payment_date ASC, created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.CreditEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, nil
}

// Save creates or updates a credit entry
func (r *GormCreditEntryRepository) Save(ctx context.Context, entry *ledger.CreditEntry) error {
	model := models.CreditEntryModelFromDomain(entry)
	return dbForContext(ctx, r.db).Save(model).Error
}

// SumForBill sums entry amounts linked to a bill in one direction
func (r *GormCreditEntryRepository) SumForBill(ctx context.Context, tenantID, billID uuid.UUID, direction ledger.PaymentDirection) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := dbForContext(ctx, r.db).
		Model(&models.CreditEntryModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND bill_id = ? AND direction = ?", tenantID, billID, direction).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumForProxyBill sums entry amounts linked to a proxy bill in one direction
func (r *GormCreditEntryRepository) SumForProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID, direction ledger.PaymentDirection) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := dbForContext(ctx, r.db).
		Model(&models.CreditEntryModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND proxy_bill_id = ? AND direction = ?", tenantID, proxyBillID, direction).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumForVendor sums all entry amounts for a vendor in one direction,
// container-linked and bare alike
func (r *GormCreditEntryRepository) SumForVendor(ctx context.Context, tenantID, vendorID uuid.UUID, direction ledger.PaymentDirection) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := dbForContext(ctx, r.db).
		Model(&models.CreditEntryModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND vendor_id = ? AND direction = ?", tenantID, vendorID, direction).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumForTenant sums entry amounts across the tenant in one direction,
// optionally bounded by payment date
func (r *GormCreditEntryRepository) SumForTenant(ctx context.Context, tenantID uuid.UUID, direction ledger.PaymentDirection, from, to *time.Time) (decimal.Decimal, error) {
	query := dbForContext(ctx, r.db).
		Model(&models.CreditEntryModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND direction = ?", tenantID, direction)

	if from != nil {
		query = query.Where("payment_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("payment_date <= ?", *to)
	}

	var result struct {
		Total decimal.Decimal
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CountByVendor counts entries referencing a vendor
func (r *GormCreditEntryRepository) CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	var count int64
	if err := dbForContext(ctx, r.db).
		Model(&models.CreditEntryModel{}).
		Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies conditions, ordering and pagination to the query
func (r *GormCreditEntryRepository) applyFilter(query *gorm.DB, filter ledger.CreditEntryFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, CreditEntrySortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyConditions applies filter conditions without ordering or pagination
func (r *GormCreditEntryRepository) applyConditions(query *gorm.DB, filter ledger.CreditEntryFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("vendor_name ILIKE ? OR reference_number ILIKE ?",
			searchPattern, searchPattern)
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
	if filter.Direction != nil {
		query = query.Where("direction = ?", *filter.Direction)
	}
	if filter.Method != nil {
		query = query.Where("payment_method = ?", *filter.Method)
	}
	if filter.FromDate != nil {
		query = query.Where("payment_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("payment_date <= ?", *filter.ToDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	return query
}

// Ensure GormCreditEntryRepository implements CreditEntryRepository
var _ ledger.CreditEntryRepository = (*GormCreditEntryRepository)(nil)
