package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuditLogModelSQLite is a SQLite-compatible version of AuditLogModel for testing
type AuditLogModelSQLite struct {
	ID         string    `gorm:"primaryKey"`
	TenantID   string    `gorm:"index;not null"`
	UserID     string    `gorm:"index;not null"`
	Username   string    `gorm:"not null"`
	Action     string    `gorm:"not null"`
	EntityType string
	EntityID   *string
	Details    string
	IPAddress  string
	CreatedAt  time.Time `gorm:"not null"`
}

func (AuditLogModelSQLite) TableName() string {
	return "audit_logs"
}

func setupAuditLogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&AuditLogModelSQLite{})
	require.NoError(t, err)

	return db
}

func TestAuditLogRepository_Record(t *testing.T) {
	db := setupAuditLogTestDB(t)
	repo := NewGormAuditLogRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	userID := uuid.New()
	billID := uuid.New()

	entry, err := audit.NewAuditLog(tenantID, userID, audit.ActionConfirmBill, audit.EntityBill, billID)
	require.NoError(t, err)
	entry.WithUsername("ramesh").WithDetails(`{"bill_number":"BILL-2026-001"}`).WithIPAddress("10.0.0.7")

	require.NoError(t, repo.Record(ctx, entry))

	logs, err := repo.FindAllForTenant(ctx, tenantID, audit.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionConfirmBill, logs[0].Action)
	assert.Equal(t, "ramesh", logs[0].Username)
	assert.Equal(t, `{"bill_number":"BILL-2026-001"}`, logs[0].Details)
	require.NotNil(t, logs[0].EntityID)
	assert.Equal(t, billID, *logs[0].EntityID)

	t.Run("catalog entries have no entity id", func(t *testing.T) {
		catalog, err := audit.NewCatalogAuditLog(tenantID, userID, audit.ActionUpdatePermissions, audit.EntityPermissions)
		require.NoError(t, err)
		require.NoError(t, repo.Record(ctx, catalog))

		action := audit.ActionUpdatePermissions
		logs, err := repo.FindAllForTenant(ctx, tenantID, audit.AuditLogFilter{Action: &action})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Nil(t, logs[0].EntityID)
	})
}

func TestAuditLogRepository_FindAllForTenant(t *testing.T) {
	db := setupAuditLogTestDB(t)
	repo := NewGormAuditLogRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	actorA := uuid.New()
	actorB := uuid.New()
	billID := uuid.New()
	vendorID := uuid.New()

	// Recorded in order; the trail must read newest first
	createBill, err := audit.NewAuditLog(tenantID, actorA, audit.ActionCreateBill, audit.EntityBill, billID)
	require.NoError(t, err)
	require.NoError(t, repo.Record(ctx, createBill))

	createVendor, err := audit.NewAuditLog(tenantID, actorB, audit.ActionCreateVendor, audit.EntityVendor, vendorID)
	require.NoError(t, err)
	createVendor.CreatedAt = createVendor.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Record(ctx, createVendor))

	confirmBill, err := audit.NewAuditLog(tenantID, actorA, audit.ActionConfirmBill, audit.EntityBill, billID)
	require.NoError(t, err)
	confirmBill.CreatedAt = confirmBill.CreatedAt.Add(2 * time.Second)
	require.NoError(t, repo.Record(ctx, confirmBill))

	otherTenant, err := audit.NewAuditLog(uuid.New(), actorA, audit.ActionCreateBill, audit.EntityBill, uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Record(ctx, otherTenant))

	t.Run("lists newest first", func(t *testing.T) {
		logs, err := repo.FindAllForTenant(ctx, tenantID, audit.AuditLogFilter{})
		require.NoError(t, err)
		require.Len(t, logs, 3)
		assert.Equal(t, audit.ActionConfirmBill, logs[0].Action)
		assert.Equal(t, audit.ActionCreateVendor, logs[1].Action)
		assert.Equal(t, audit.ActionCreateBill, logs[2].Action)
	})

	t.Run("filters by user", func(t *testing.T) {
		logs, err := repo.FindAllForTenant(ctx, tenantID, audit.AuditLogFilter{UserID: &actorB})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, audit.ActionCreateVendor, logs[0].Action)
	})

	t.Run("filters by entity", func(t *testing.T) {
		entityType := audit.EntityBill
		logs, err := repo.FindAllForTenant(ctx, tenantID, audit.AuditLogFilter{
			EntityType: &entityType,
			EntityID:   &billID,
		})
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})

	t.Run("filters by time range", func(t *testing.T) {
		from := createVendor.CreatedAt.Add(-time.Millisecond)
		to := createVendor.CreatedAt.Add(time.Millisecond)
		logs, err := repo.FindAllForTenant(ctx, tenantID, audit.AuditLogFilter{
			FromDate: &from,
			ToDate:   &to,
		})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, audit.ActionCreateVendor, logs[0].Action)
	})

	t.Run("counts with the same conditions", func(t *testing.T) {
		count, err := repo.CountForTenant(ctx, tenantID, audit.AuditLogFilter{UserID: &actorA})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("applies pagination", func(t *testing.T) {
		filter := audit.AuditLogFilter{}
		filter.Page = 1
		filter.PageSize = 2
		logs, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})
}
