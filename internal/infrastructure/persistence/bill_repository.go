package persistence

import (
	"context"
	"errors"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paidSubquery computes the incoming credit total linked to a bill. The
// payment status filter compares it against the bill total, mirroring the
// reconciliation service's derivation.
const billPaidSubquery = "(SELECT COALESCE(SUM(ce.amount), 0) FROM credit_entries ce" +
	" WHERE ce.bill_id = bills.id AND ce.tenant_id = bills.tenant_id AND ce.direction = ?)"

// GormBillRepository implements ledger.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByIDForTenant finds a bill with its items within a tenant
func (r *GormBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Bill, error) {
	var model models.BillModel
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

// FindByIDForTenantForUpdate locks the bill row until the surrounding
// transaction completes. Items are loaded without a lock; mutations go
// through the locked parent row, so locking it is enough to serialize.
func (r *GormBillRepository) FindByIDForTenantForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Bill, error) {
	var model models.BillModel
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

// FindByBillNumber finds a bill by its tenant-unique number
func (r *GormBillRepository) FindByBillNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (*ledger.Bill, error) {
	var model models.BillModel
	if err := dbForContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND bill_number = ?", tenantID, billNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists bills for a tenant with filtering
func (r *GormBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.BillFilter) ([]ledger.Bill, error) {
	var billModels []models.BillModel
	query := r.applyFilter(
		dbForContext(ctx, r.db).Model(&models.BillModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Preload("Items").Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]ledger.Bill, len(billModels))
	for i := range billModels {
		bills[i] = *billModels[i].ToDomain()
	}
	return bills, nil
}

// CountForTenant counts bills matching the filter
func (r *GormBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.BillFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		dbForContext(ctx, r.db).Model(&models.BillModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a bill together with its items. Items removed
// from the aggregate are deleted so the rows always mirror the domain list.
func (r *GormBillRepository) Save(ctx context.Context, bill *ledger.Bill) error {
	model := models.BillModelFromDomain(bill)
	return dbForContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		itemIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			itemIDs[i] = item.ID
		}

		if len(itemIDs) > 0 {
			if err := tx.Where("bill_id = ? AND id NOT IN ?", model.ID, itemIDs).
				Delete(&models.BillItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("bill_id = ?", model.ID).
				Delete(&models.BillItemModel{}).Error; err != nil {
				return err
			}
		}

		for i := range model.Items {
			model.Items[i].BillID = model.ID
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ExistsByBillNumber checks tenant-scoped bill number uniqueness
func (r *GormBillRepository) ExistsByBillNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (bool, error) {
	var count int64
	if err := dbForContext(ctx, r.db).
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND bill_number = ?", tenantID, billNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByVendor counts bills referencing a vendor in any status
func (r *GormBillRepository) CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	var count int64
	if err := dbForContext(ctx, r.db).
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumConfirmedTotalByVendor sums CONFIRMED bill totals for one vendor
func (r *GormBillRepository) SumConfirmedTotalByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := dbForContext(ctx, r.db).
		Model(&models.BillModel{}).
		Select("COALESCE(SUM(total_amount), 0) as total").
		Where("tenant_id = ? AND vendor_id = ? AND status = ?", tenantID, vendorID, ledger.BillStatusConfirmed).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumConfirmedTotalForTenant sums CONFIRMED bill totals across the tenant
func (r *GormBillRepository) SumConfirmedTotalForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := dbForContext(ctx, r.db).
		Model(&models.BillModel{}).
		Select("COALESCE(SUM(total_amount), 0) as total").
		Where("tenant_id = ? AND status = ?", tenantID, ledger.BillStatusConfirmed).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies conditions, ordering and pagination to the query
func (r *GormBillRepository) applyFilter(query *gorm.DB, filter ledger.BillFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, BillSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyConditions applies filter conditions without ordering or pagination
func (r *GormBillRepository) applyConditions(query *gorm.DB, filter ledger.BillFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("bill_number ILIKE ? OR vendor_name ILIKE ?",
			searchPattern, searchPattern)
	}

	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.BillType != nil {
		query = query.Where("bill_type = ?", *filter.BillType)
	}
	if filter.FromDate != nil {
		query = query.Where("bill_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("bill_date <= ?", *filter.ToDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("total_amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("total_amount <= ?", *filter.MaxAmount)
	}
	if filter.AuthorizedOnly {
		query = query.Where("is_authorized = ?", true)
	}

	if filter.PaymentStatus != nil {
		switch *filter.PaymentStatus {
		case ledger.PaymentStatusUnpaid:
			query = query.Where(billPaidSubquery+" <= 0", ledger.DirectionIncoming)
		case ledger.PaymentStatusFullyPaid:
			query = query.Where(billPaidSubquery+" >= bills.total_amount", ledger.DirectionIncoming)
		case ledger.PaymentStatusPartiallyPaid:
			query = query.Where(billPaidSubquery+" > 0 AND "+billPaidSubquery+" < bills.total_amount",
				ledger.DirectionIncoming, ledger.DirectionIncoming)
		}
	}

	return query
}

// Ensure GormBillRepository implements BillRepository
var _ ledger.BillRepository = (*GormBillRepository)(nil)
