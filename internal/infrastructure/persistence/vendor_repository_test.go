package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/partner"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// VendorModelSQLite is a SQLite-compatible version of VendorModel for testing
type VendorModelSQLite struct {
	ID              string    `gorm:"primaryKey"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
	Version         int       `gorm:"not null;default:1"`
	TenantID        string    `gorm:"index;not null"`
	CreatedBy       *string
	Name            string `gorm:"not null"`
	CustomerCode    string
	Type            string `gorm:"not null;default:'SUPPLIER'"`
	Status          string `gorm:"not null;default:'ACTIVE'"`
	IsBlocked       bool   `gorm:"not null;default:false"`
	ContactPerson   string
	ContactPhone    string
	Email           string
	Address         string
	BillingAddress  string
	ShippingAddress string
	City            string
	State           string
	Country         string
	Pincode         string
	GSTNumber       string `gorm:"column:gst_number"`
	PAN             string `gorm:"column:pan"`
	AlternateName   string
	AlternateMobile string
	WhatsappNumber  string
	CreditLimit     float64 `gorm:"not null;default:0"`
	CreditDays      int     `gorm:"not null;default:0"`
	Notes           string
	AdditionalData  string
}

func (VendorModelSQLite) TableName() string {
	return "vendors"
}

func setupVendorTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&VendorModelSQLite{})
	require.NoError(t, err)

	return db
}

func newTestVendor(t *testing.T, tenantID uuid.UUID, name string, vendorType partner.VendorType) *partner.Vendor {
	t.Helper()

	vendor, err := partner.NewVendor(tenantID, name, vendorType)
	require.NoError(t, err)
	return vendor
}

func TestVendorRepository_SaveAndFind(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	t.Run("saves and reloads a vendor", func(t *testing.T) {
		vendor := newTestVendor(t, tenantID, "Sharma Traders", partner.VendorTypeSupplier)
		require.NoError(t, vendor.SetCustomerCode("SHARMA01"))
		require.NoError(t, vendor.SetTaxInfo("29ABCDE1234F1Z5", "ABCDE1234F"))
		require.NoError(t, vendor.SetCreditTerms(decimal.NewFromInt(50000), 30))

		require.NoError(t, repo.Save(ctx, vendor))

		found, err := repo.FindByIDForTenant(ctx, tenantID, vendor.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sharma Traders", found.Name)
		assert.Equal(t, "SHARMA01", found.CustomerCode)
		assert.Equal(t, "29ABCDE1234F1Z5", found.GSTNumber)
		assert.True(t, found.CreditLimit.Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, 30, found.CreditDays)
	})

	t.Run("finds by customer code", func(t *testing.T) {
		found, err := repo.FindByCustomerCode(ctx, tenantID, "SHARMA01")
		require.NoError(t, err)
		assert.Equal(t, "Sharma Traders", found.Name)

		_, err = repo.FindByCustomerCode(ctx, tenantID, "NOBODY")
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("returns not found for another tenant", func(t *testing.T) {
		vendor := newTestVendor(t, tenantID, "Kaveri Logistics", partner.VendorTypeBoth)
		require.NoError(t, repo.Save(ctx, vendor))

		_, err := repo.FindByIDForTenant(ctx, uuid.New(), vendor.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestVendorRepository_FindAllForTenant(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	supplier := newTestVendor(t, tenantID, "Sharma Traders", partner.VendorTypeSupplier)
	customer := newTestVendor(t, tenantID, "Patel Constructions", partner.VendorTypeCustomer)
	require.NoError(t, customer.SetAddress("12 MG Road", "", "", "Bengaluru", "Karnataka", "India", "560001"))
	blocked := newTestVendor(t, tenantID, "Mehta Suppliers", partner.VendorTypeSupplier)
	blocked.Block()
	inactive := newTestVendor(t, tenantID, "Old Hardware Co", partner.VendorTypeSupplier)
	require.NoError(t, inactive.Deactivate())
	for _, v := range []*partner.Vendor{supplier, customer, blocked, inactive} {
		require.NoError(t, repo.Save(ctx, v))
	}

	t.Run("lists every vendor when page size is zero", func(t *testing.T) {
		vendors, err := repo.FindAllForTenant(ctx, tenantID, partner.VendorFilter{})
		require.NoError(t, err)
		assert.Len(t, vendors, 4)
	})

	t.Run("filters by type", func(t *testing.T) {
		vendorType := partner.VendorTypeCustomer
		vendors, err := repo.FindAllForTenant(ctx, tenantID, partner.VendorFilter{Type: &vendorType})
		require.NoError(t, err)
		require.Len(t, vendors, 1)
		assert.Equal(t, "Patel Constructions", vendors[0].Name)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := partner.VendorStatusInactive
		vendors, err := repo.FindAllForTenant(ctx, tenantID, partner.VendorFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, vendors, 1)
		assert.Equal(t, "Old Hardware Co", vendors[0].Name)
	})

	t.Run("filters by blocked flag", func(t *testing.T) {
		isBlocked := true
		vendors, err := repo.FindAllForTenant(ctx, tenantID, partner.VendorFilter{IsBlocked: &isBlocked})
		require.NoError(t, err)
		require.Len(t, vendors, 1)
		assert.Equal(t, "Mehta Suppliers", vendors[0].Name)
	})

	t.Run("filters by city", func(t *testing.T) {
		city := "Bengaluru"
		vendors, err := repo.FindAllForTenant(ctx, tenantID, partner.VendorFilter{City: &city})
		require.NoError(t, err)
		require.Len(t, vendors, 1)
		assert.Equal(t, "Patel Constructions", vendors[0].Name)
	})

	t.Run("applies pagination", func(t *testing.T) {
		filter := partner.VendorFilter{}
		filter.Page = 2
		filter.PageSize = 3
		vendors, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Len(t, vendors, 1)
	})
}

func TestVendorRepository_CreditLimitFilter(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	small := newTestVendor(t, tenantID, "Small Shop", partner.VendorTypeSupplier)
	require.NoError(t, small.SetCreditTerms(decimal.NewFromInt(10000), 15))
	large := newTestVendor(t, tenantID, "Large Depot", partner.VendorTypeSupplier)
	require.NoError(t, large.SetCreditTerms(decimal.NewFromInt(200000), 45))
	for _, v := range []*partner.Vendor{small, large} {
		require.NoError(t, repo.Save(ctx, v))
	}

	minLimit := decimal.NewFromInt(50000)
	vendors, err := repo.FindAllForTenant(ctx, tenantID, partner.VendorFilter{CreditLimitMin: &minLimit})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Large Depot", vendors[0].Name)
}

func TestVendorRepository_FindByIDs(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	first := newTestVendor(t, tenantID, "First", partner.VendorTypeSupplier)
	second := newTestVendor(t, tenantID, "Second", partner.VendorTypeSupplier)
	third := newTestVendor(t, tenantID, "Third", partner.VendorTypeSupplier)
	for _, v := range []*partner.Vendor{first, second, third} {
		require.NoError(t, repo.Save(ctx, v))
	}

	t.Run("loads the requested subset", func(t *testing.T) {
		vendors, err := repo.FindByIDs(ctx, tenantID, []uuid.UUID{first.ID, third.ID})
		require.NoError(t, err)
		assert.Len(t, vendors, 2)
	})

	t.Run("empty id list returns empty result", func(t *testing.T) {
		vendors, err := repo.FindByIDs(ctx, tenantID, nil)
		require.NoError(t, err)
		assert.Empty(t, vendors)
	})
}

func TestVendorRepository_SaveBatch(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	vendors := make([]*partner.Vendor, 5)
	for i := range vendors {
		vendors[i] = newTestVendor(t, tenantID, "Imported Vendor", partner.VendorTypeSupplier)
	}

	require.NoError(t, repo.SaveBatch(ctx, vendors))

	count, err := repo.CountForTenant(ctx, tenantID, partner.VendorFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	t.Run("handles empty batch", func(t *testing.T) {
		require.NoError(t, repo.SaveBatch(ctx, []*partner.Vendor{}))
	})
}

func TestVendorRepository_DeleteForTenant(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	vendor := newTestVendor(t, tenantID, "To Remove", partner.VendorTypeSupplier)
	require.NoError(t, repo.Save(ctx, vendor))

	t.Run("delete is tenant scoped", func(t *testing.T) {
		err := repo.DeleteForTenant(ctx, uuid.New(), vendor.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("deletes the vendor", func(t *testing.T) {
		require.NoError(t, repo.DeleteForTenant(ctx, tenantID, vendor.ID))

		_, err := repo.FindByIDForTenant(ctx, tenantID, vendor.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("deleting again reports not found", func(t *testing.T) {
		err := repo.DeleteForTenant(ctx, tenantID, vendor.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestVendorRepository_ExistsChecks(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	vendor := newTestVendor(t, tenantID, "Sharma Traders", partner.VendorTypeSupplier)
	require.NoError(t, vendor.SetCustomerCode("SHARMA01"))
	require.NoError(t, vendor.SetTaxInfo("29ABCDE1234F1Z5", ""))
	require.NoError(t, repo.Save(ctx, vendor))

	t.Run("customer code exists within the tenant", func(t *testing.T) {
		exists, err := repo.ExistsByCustomerCode(ctx, tenantID, "SHARMA01")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCustomerCode(ctx, uuid.New(), "SHARMA01")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("gst number exists within the tenant", func(t *testing.T) {
		exists, err := repo.ExistsByGSTNumber(ctx, tenantID, "29ABCDE1234F1Z5")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByGSTNumber(ctx, tenantID, "27ZZZZZ9999Z9Z9")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
