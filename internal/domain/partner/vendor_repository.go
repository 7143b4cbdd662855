package partner

import (
	"context"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorFilter defines filtering options for vendor queries
type VendorFilter struct {
	shared.Filter
	Type           *VendorType
	Status         *VendorStatus
	IsBlocked      *bool
	City           *string
	State          *string
	CreditLimitMin *decimal.Decimal
	CreditLimitMax *decimal.Decimal
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByIDForTenant finds a vendor by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)

	// FindByCustomerCode finds a vendor by its external ledger code
	FindByCustomerCode(ctx context.Context, tenantID uuid.UUID, customerCode string) (*Vendor, error)

	// FindAllForTenant finds all vendors for a tenant matching the filter.
	// Search matches name, email, and contact phone.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter VendorFilter) ([]Vendor, error)

	// FindByIDs finds multiple vendors by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Vendor, error)

	// Save creates or updates a vendor
	Save(ctx context.Context, vendor *Vendor) error

	// SaveBatch creates or updates multiple vendors in one round trip
	SaveBatch(ctx context.Context, vendors []*Vendor) error

	// DeleteForTenant deletes a vendor within a tenant. Callers check the
	// association counts first; the delete itself is unconditional.
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts vendors for a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter VendorFilter) (int64, error)

	// ExistsByCustomerCode checks if a vendor with the code exists in the tenant
	ExistsByCustomerCode(ctx context.Context, tenantID uuid.UUID, customerCode string) (bool, error)

	// ExistsByGSTNumber checks if a vendor with the GST number exists in the tenant
	ExistsByGSTNumber(ctx context.Context, tenantID uuid.UUID, gstNumber string) (bool, error)
}
