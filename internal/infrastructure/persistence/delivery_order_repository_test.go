package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/delivery"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DeliveryOrderModelSQLite is a SQLite-compatible version of DeliveryOrderModel for testing
type DeliveryOrderModelSQLite struct {
	ID            string    `gorm:"primaryKey"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Version       int       `gorm:"not null;default:1"`
	TenantID      string    `gorm:"index;not null"`
	CreatedBy     *string
	OrderNumber   string `gorm:"not null"`
	BillID        *string
	ProxyBillID   *string
	VendorID      string `gorm:"index;not null"`
	AssignedTo    *string
	Status        string `gorm:"not null;default:'PENDING'"`
	Address       string `gorm:"not null"`
	ContactPhone  string
	ScheduledDate *time.Time
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time
	Remarks       string
}

func (DeliveryOrderModelSQLite) TableName() string {
	return "delivery_orders"
}

func setupDeliveryOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&DeliveryOrderModelSQLite{})
	require.NoError(t, err)

	return db
}

func newTestDeliveryOrder(t *testing.T, tenantID uuid.UUID, orderNumber string, billID *uuid.UUID) *delivery.DeliveryOrder {
	t.Helper()

	if billID == nil {
		generated := uuid.New()
		billID = &generated
	}
	order, err := delivery.NewDeliveryOrder(tenantID, orderNumber, uuid.New(), billID, nil, "14 Mill Road, Hosur")
	require.NoError(t, err)
	return order
}

func TestDeliveryOrderRepository_SaveAndFind(t *testing.T) {
	db := setupDeliveryOrderTestDB(t)
	repo := NewGormDeliveryOrderRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	t.Run("saves and reloads an order", func(t *testing.T) {
		billID := uuid.New()
		order := newTestDeliveryOrder(t, tenantID, "DLV-2026-001", &billID)
		assignee := uuid.New()
		require.NoError(t, order.Assign(assignee))
		scheduled := time.Date(2026, 7, 3, 9, 0, 0, 0, time.UTC)
		order.SetScheduledDate(scheduled)

		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "DLV-2026-001", found.OrderNumber)
		assert.Equal(t, delivery.DeliveryStatusPending, found.Status)
		require.NotNil(t, found.BillID)
		assert.Equal(t, billID, *found.BillID)
		require.NotNil(t, found.AssignedTo)
		assert.Equal(t, assignee, *found.AssignedTo)
		require.NotNil(t, found.ScheduledDate)
	})

	t.Run("persists status transitions", func(t *testing.T) {
		order := newTestDeliveryOrder(t, tenantID, "DLV-2026-002", nil)
		require.NoError(t, order.Assign(uuid.New()))
		require.NoError(t, order.MarkInTransit())
		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, delivery.DeliveryStatusInTransit, found.Status)
		require.NotNil(t, found.DispatchedAt)
	})

	t.Run("returns not found for another tenant", func(t *testing.T) {
		order := newTestDeliveryOrder(t, tenantID, "DLV-2026-003", nil)
		require.NoError(t, repo.Save(ctx, order))

		_, err := repo.FindByIDForTenant(ctx, uuid.New(), order.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestDeliveryOrderRepository_FindAllForTenant(t *testing.T) {
	db := setupDeliveryOrderTestDB(t)
	repo := NewGormDeliveryOrderRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	runner := uuid.New()

	mine := newTestDeliveryOrder(t, tenantID, "DLV-2026-101", nil)
	require.NoError(t, mine.Assign(runner))
	mineToo := newTestDeliveryOrder(t, tenantID, "DLV-2026-102", nil)
	require.NoError(t, mineToo.Assign(runner))
	someoneElses := newTestDeliveryOrder(t, tenantID, "DLV-2026-103", nil)
	require.NoError(t, someoneElses.Assign(uuid.New()))
	unassigned := newTestDeliveryOrder(t, tenantID, "DLV-2026-104", nil)
	for _, o := range []*delivery.DeliveryOrder{mine, mineToo, someoneElses, unassigned} {
		require.NoError(t, repo.Save(ctx, o))
	}

	t.Run("lists the whole tenant", func(t *testing.T) {
		orders, err := repo.FindAllForTenant(ctx, tenantID, delivery.DeliveryOrderFilter{})
		require.NoError(t, err)
		assert.Len(t, orders, 4)
	})

	t.Run("assignee scope lists only their runs", func(t *testing.T) {
		orders, err := repo.FindAllForTenant(ctx, tenantID, delivery.DeliveryOrderFilter{AssignedTo: &runner})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		for _, o := range orders {
			require.NotNil(t, o.AssignedTo)
			assert.Equal(t, runner, *o.AssignedTo)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		require.NoError(t, mine.MarkInTransit())
		require.NoError(t, repo.Save(ctx, mine))

		status := delivery.DeliveryStatusInTransit
		orders, err := repo.FindAllForTenant(ctx, tenantID, delivery.DeliveryOrderFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "DLV-2026-101", orders[0].OrderNumber)
	})

	t.Run("count matches conditions", func(t *testing.T) {
		count, err := repo.CountForTenant(ctx, tenantID, delivery.DeliveryOrderFilter{AssignedTo: &runner})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestDeliveryOrderRepository_CountByStatusForTenant(t *testing.T) {
	db := setupDeliveryOrderTestDB(t)
	repo := NewGormDeliveryOrderRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	pending := newTestDeliveryOrder(t, tenantID, "DLV-2026-201", nil)
	inTransit := newTestDeliveryOrder(t, tenantID, "DLV-2026-202", nil)
	require.NoError(t, inTransit.Assign(uuid.New()))
	require.NoError(t, inTransit.MarkInTransit())
	delivered := newTestDeliveryOrder(t, tenantID, "DLV-2026-203", nil)
	require.NoError(t, delivered.Assign(uuid.New()))
	require.NoError(t, delivered.MarkInTransit())
	require.NoError(t, delivered.MarkDelivered())
	alsoPending := newTestDeliveryOrder(t, tenantID, "DLV-2026-204", nil)
	for _, o := range []*delivery.DeliveryOrder{pending, inTransit, delivered, alsoPending} {
		require.NoError(t, repo.Save(ctx, o))
	}

	counts, err := repo.CountByStatusForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[delivery.DeliveryStatusPending])
	assert.Equal(t, int64(1), counts[delivery.DeliveryStatusInTransit])
	assert.Equal(t, int64(1), counts[delivery.DeliveryStatusDelivered])
	assert.Equal(t, int64(0), counts[delivery.DeliveryStatusCancelled])
}

func TestDeliveryOrderRepository_ExistsByOrderNumber(t *testing.T) {
	db := setupDeliveryOrderTestDB(t)
	repo := NewGormDeliveryOrderRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	order := newTestDeliveryOrder(t, tenantID, "DLV-2026-301", nil)
	require.NoError(t, repo.Save(ctx, order))

	exists, err := repo.ExistsByOrderNumber(ctx, tenantID, "DLV-2026-301")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByOrderNumber(ctx, uuid.New(), "DLV-2026-301")
	require.NoError(t, err)
	assert.False(t, exists)
}
