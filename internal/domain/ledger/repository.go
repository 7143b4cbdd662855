package ledger

import (
	"context"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillFilter defines filtering options for bill queries
type BillFilter struct {
	shared.Filter
	VendorID      *uuid.UUID
	Status        *BillStatus
	BillType      *BillType
	PaymentStatus *PaymentStatus // Derived filter, resolved against credit entry sums
	FromDate      *time.Time
	ToDate        *time.Time
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	// AuthorizedOnly restricts results to bills with is_authorized = true.
	// The authorization gate sets it for the organiser role; list results
	// for that role never contain an unauthorized bill.
	AuthorizedOnly bool
}

// BillRepository defines the persistence contract for bills
type BillRepository interface {
	// FindByIDForTenant finds a bill with its items; returns shared.ErrNotFound when absent
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Bill, error)

	// FindByIDForTenantForUpdate locks the bill row for the duration of the
	// surrounding transaction. The accept-payment and split paths use it so
	// concurrent mutations of the same bill serialize.
	FindByIDForTenantForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Bill, error)

	// FindByBillNumber finds a bill by its tenant-unique number
	FindByBillNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (*Bill, error)

	// FindAllForTenant lists bills with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter BillFilter) ([]Bill, error)

	// CountForTenant counts bills matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter BillFilter) (int64, error)

	// Save creates or updates a bill together with its items
	Save(ctx context.Context, bill *Bill) error

	// ExistsByBillNumber checks tenant-scoped bill number uniqueness
	ExistsByBillNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (bool, error)

	// CountByVendor counts bills referencing a vendor (any status)
	CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error)

	// SumConfirmedTotalByVendor sums CONFIRMED bill totals for one vendor
	SumConfirmedTotalByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (decimal.Decimal, error)

	// SumConfirmedTotalForTenant sums CONFIRMED bill totals across the tenant
	SumConfirmedTotalForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}

// ProxyBillFilter defines filtering options for proxy bill queries
type ProxyBillFilter struct {
	shared.Filter
	ParentBillID *uuid.UUID
	VendorID     *uuid.UUID
	Status       *BillStatus
	FromDate     *time.Time
	ToDate       *time.Time
}

// ProxyBillRepository defines the persistence contract for proxy bills
type ProxyBillRepository interface {
	// FindByIDForTenant finds a proxy bill with its items; returns shared.ErrNotFound when absent
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProxyBill, error)

	// FindByIDForTenantForUpdate locks the proxy bill row for the duration
	// of the surrounding transaction
	FindByIDForTenantForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*ProxyBill, error)

	// FindAllForTenant lists proxy bills with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ProxyBillFilter) ([]ProxyBill, error)

	// CountForTenant counts proxy bills matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ProxyBillFilter) (int64, error)

	// FindByParentBill lists the proxy bills split off a bill
	FindByParentBill(ctx context.Context, tenantID, parentBillID uuid.UUID) ([]ProxyBill, error)

	// Save creates or updates a proxy bill together with its items
	Save(ctx context.Context, proxy *ProxyBill) error

	// SaveAll persists a batch of proxy bills. Callers run it inside a
	// transaction so an N-way split lands entirely or not at all.
	SaveAll(ctx context.Context, proxies []*ProxyBill) error

	// ExistsByProxyNumber checks tenant-scoped proxy number uniqueness
	ExistsByProxyNumber(ctx context.Context, tenantID uuid.UUID, proxyNumber string) (bool, error)

	// CountByVendor counts proxy bills referencing a vendor (any status)
	CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error)
}

// CreditEntryFilter defines filtering options for credit entry queries
type CreditEntryFilter struct {
	shared.Filter
	VendorID    *uuid.UUID
	BillID      *uuid.UUID
	ProxyBillID *uuid.UUID
	Direction   *PaymentDirection
	Method      *PaymentMethod
	FromDate    *time.Time
	ToDate      *time.Time
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
}

// CreditEntryRepository defines the persistence contract for credit entries
type CreditEntryRepository interface {
	// FindByIDForTenant finds an entry; returns shared.ErrNotFound when absent
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CreditEntry, error)

	// FindAllForTenant lists entries with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter CreditEntryFilter) ([]CreditEntry, error)

	// CountForTenant counts entries matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter CreditEntryFilter) (int64, error)

	// FindByBill lists the entries linked to a bill
	FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]CreditEntry, error)

	// FindByProxyBill lists the entries linked to a proxy bill
	FindByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) ([]CreditEntry, error)

	// Save creates or updates a credit entry
	Save(ctx context.Context, entry *CreditEntry) error

	// SumForBill sums entry amounts linked to a bill in one direction
	SumForBill(ctx context.Context, tenantID, billID uuid.UUID, direction PaymentDirection) (decimal.Decimal, error)

	// SumForProxyBill sums entry amounts linked to a proxy bill in one direction
	SumForProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID, direction PaymentDirection) (decimal.Decimal, error)

	// SumForVendor sums all entry amounts for a vendor in one direction,
	// container-linked and bare alike (the outstanding formula folds both in)
	SumForVendor(ctx context.Context, tenantID, vendorID uuid.UUID, direction PaymentDirection) (decimal.Decimal, error)

	// SumForTenant sums entry amounts across the tenant in one direction,
	// optionally bounded by payment date
	SumForTenant(ctx context.Context, tenantID uuid.UUID, direction PaymentDirection, from, to *time.Time) (decimal.Decimal, error)

	// CountByVendor counts entries referencing a vendor
	CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error)
}
