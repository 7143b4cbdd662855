package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockBillRepo creates a bill repository backed by a mocked connection,
// used to assert the SQL the locking read emits.
func newMockBillRepo(t *testing.T) (*GormBillRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBillRepository(gormDB), mock, mockDB
}

func lockTestBillRows(tenantID, billID, vendorID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "version", "tenant_id", "bill_number", "vendor_id", "vendor_name",
		"bill_type", "bill_date", "subtotal", "tax_amount", "total_amount",
		"status", "is_authorized",
	}).AddRow(
		billID.String(), 1, tenantID.String(), "BILL-2026-074", vendorID.String(), "Sharma Traders",
		string(ledger.BillTypePurchase), time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		3500.0, 0.0, 3500.0,
		string(ledger.BillStatusConfirmed), false,
	)
}

func lockTestBillItemRows(billID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "bill_id", "description", "quantity", "unit_price", "amount",
	}).AddRow(
		uuid.NewString(), billID.String(), "Cement 50kg", 10.0, 350.0, 3500.0,
	)
}

// TestFindByIDForTenantForUpdate_RowLock tests that the locking read asks the
// database for a FOR UPDATE lock on the bill row.
func TestFindByIDForTenantForUpdate_RowLock(t *testing.T) {
	t.Run("issues FOR UPDATE on the bill row", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepo(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		billID := uuid.New()
		vendorID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "bills" WHERE tenant_id = \$1 AND id = \$2.+FOR UPDATE`).
			WillReturnRows(lockTestBillRows(tenantID, billID, vendorID))
		mock.ExpectQuery(`SELECT \* FROM "bill_items" WHERE "bill_items"\."bill_id"`).
			WillReturnRows(lockTestBillItemRows(billID))

		found, err := repo.FindByIDForTenantForUpdate(context.Background(), tenantID, billID)

		require.NoError(t, err)
		assert.Equal(t, billID, found.ID)
		assert.Equal(t, tenantID, found.TenantID)
		assert.Equal(t, "BILL-2026-074", found.BillNumber)
		assert.Equal(t, ledger.BillStatusConfirmed, found.Status)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(3500)), "got %s", found.TotalAmount)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Cement 50kg", found.Items[0].Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs between BEGIN and COMMIT when the context carries a transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepo(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		billID := uuid.New()
		vendorID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "bills" WHERE tenant_id = \$1 AND id = \$2.+FOR UPDATE`).
			WillReturnRows(lockTestBillRows(tenantID, billID, vendorID))
		mock.ExpectQuery(`SELECT \* FROM "bill_items" WHERE "bill_items"\."bill_id"`).
			WillReturnRows(lockTestBillItemRows(billID))
		mock.ExpectCommit()

		manager := NewGormTxManager(repo.db)
		err := manager.Do(context.Background(), func(txCtx context.Context) error {
			found, err := repo.FindByIDForTenantForUpdate(txCtx, tenantID, billID)
			if err != nil {
				return err
			}
			assert.Equal(t, billID, found.ID)
			return nil
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for a missing bill", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepo(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "bills" WHERE tenant_id = \$1 AND id = \$2.+FOR UPDATE`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForTenantForUpdate(context.Background(), uuid.New(), uuid.New())

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepo(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "bills" WHERE tenant_id = \$1 AND id = \$2.+FOR UPDATE`).
			WillReturnError(assert.AnError)

		_, err := repo.FindByIDForTenantForUpdate(context.Background(), uuid.New(), uuid.New())

		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
