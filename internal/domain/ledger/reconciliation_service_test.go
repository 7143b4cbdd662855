package ledger

import (
	"testing"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func incomingEntry(t *testing.T, amount float64) CreditEntry {
	t.Helper()
	entry, err := NewCreditEntry(uuid.New(), uuid.New(), "Vendor",
		valueobject.NewMoneyINRFromFloat(amount), DirectionIncoming, PaymentMethodCash, time.Now())
	require.NoError(t, err)
	return *entry
}

func outgoingEntry(t *testing.T, amount float64) CreditEntry {
	t.Helper()
	entry, err := NewCreditEntry(uuid.New(), uuid.New(), "Vendor",
		valueobject.NewMoneyINRFromFloat(amount), DirectionOutgoing, PaymentMethodCash, time.Now())
	require.NoError(t, err)
	return *entry
}

func cashSpec() PaymentSpec {
	return PaymentSpec{
		Direction: DirectionIncoming,
		Method:    PaymentMethodCash,
		Date:      time.Now(),
	}
}

// ============================================
// TotalPaid Tests
// ============================================

func TestReconciliationService_TotalPaid(t *testing.T) {
	svc := NewReconciliationService()

	t.Run("sums incoming entries only", func(t *testing.T) {
		entries := []CreditEntry{
			incomingEntry(t, 300),
			outgoingEntry(t, 150),
			incomingEntry(t, 200),
		}
		assert.True(t, decimal.NewFromInt(500).Equal(svc.TotalPaid(entries)))
	})

	t.Run("zero when no entries exist", func(t *testing.T) {
		assert.True(t, decimal.Zero.Equal(svc.TotalPaid(nil)))
	})
}

// ============================================
// Remaining Tests
// ============================================

func TestReconciliationService_Remaining(t *testing.T) {
	svc := NewReconciliationService()

	t.Run("total minus paid", func(t *testing.T) {
		remaining, err := svc.Remaining(decimal.NewFromInt(1180), decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(680).Equal(remaining))
	})

	t.Run("zero remaining on exact settlement", func(t *testing.T) {
		remaining, err := svc.Remaining(decimal.NewFromInt(1180), decimal.NewFromInt(1180))
		require.NoError(t, err)
		assert.True(t, remaining.IsZero())
	})

	t.Run("negative remaining is reported, not clamped", func(t *testing.T) {
		remaining, err := svc.Remaining(decimal.NewFromInt(1000), decimal.NewFromInt(1001))
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvariantViolation)
		assert.True(t, decimal.NewFromInt(-1).Equal(remaining))
	})
}

// ============================================
// PaymentStatus Derivation Tests
// ============================================

func TestReconciliationService_PaymentStatusFor(t *testing.T) {
	svc := NewReconciliationService()
	total := decimal.NewFromInt(1180)

	tests := []struct {
		name string
		paid decimal.Decimal
		want PaymentStatus
	}{
		{"nothing paid", decimal.Zero, PaymentStatusUnpaid},
		{"partially paid", decimal.NewFromInt(500), PaymentStatusPartiallyPaid},
		{"one rupee short", decimal.NewFromInt(1179), PaymentStatusPartiallyPaid},
		{"exactly settled", decimal.NewFromInt(1180), PaymentStatusFullyPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.PaymentStatusFor(tt.paid, total))
		})
	}
}

// ============================================
// Vendor Outstanding Tests
// ============================================

func TestReconciliationService_VendorOutstanding(t *testing.T) {
	svc := NewReconciliationService()

	t.Run("billed minus incoming plus outgoing", func(t *testing.T) {
		outstanding := svc.VendorOutstanding(
			decimal.NewFromInt(10000), // confirmed bills
			decimal.NewFromInt(4000),  // payments received
			decimal.NewFromInt(500),   // refunds issued
		)
		assert.True(t, decimal.NewFromInt(6500).Equal(outstanding))
	})

	t.Run("outstanding can go negative when overpaid at vendor level", func(t *testing.T) {
		outstanding := svc.VendorOutstanding(
			decimal.NewFromInt(1000),
			decimal.NewFromInt(1500),
			decimal.Zero,
		)
		assert.True(t, decimal.NewFromInt(-500).Equal(outstanding))
	})
}

// ============================================
// AcceptPayment Tests
// ============================================

func TestReconciliationService_AcceptPayment(t *testing.T) {
	svc := NewReconciliationService()

	t.Run("full settlement in one payment", func(t *testing.T) {
		bill := createConfirmedBill(t) // total 1180

		entry, err := svc.AcceptPayment(bill, decimal.Zero,
			valueobject.NewMoneyINRFromFloat(1180), cashSpec())
		require.NoError(t, err)
		require.NotNil(t, entry.BillID)
		assert.Equal(t, bill.ID, *entry.BillID)
		assert.Equal(t, bill.VendorID, entry.VendorID)
		assert.Equal(t, bill.TenantID, entry.TenantID)
	})

	t.Run("rejects one rupee over a settled bill", func(t *testing.T) {
		bill := createConfirmedBill(t)

		_, err := svc.AcceptPayment(bill, decimal.NewFromInt(1180),
			valueobject.NewMoneyINRFromFloat(1), cashSpec())
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvariantViolation)
	})

	t.Run("second payment capped at remaining", func(t *testing.T) {
		bill := createConfirmedBill(t)

		// 500 paid so far; 700 would breach the 1180 total
		_, err := svc.AcceptPayment(bill, decimal.NewFromInt(500),
			valueobject.NewMoneyINRFromFloat(700), cashSpec())
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvariantViolation)

		// 680 lands exactly
		entry, err := svc.AcceptPayment(bill, decimal.NewFromInt(500),
			valueobject.NewMoneyINRFromFloat(680), cashSpec())
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(680).Equal(entry.Amount))
	})

	t.Run("outgoing payments are never capped", func(t *testing.T) {
		bill := createConfirmedBill(t)
		spec := cashSpec()
		spec.Direction = DirectionOutgoing

		entry, err := svc.AcceptPayment(bill, decimal.NewFromInt(1180),
			valueobject.NewMoneyINRFromFloat(9999), spec)
		require.NoError(t, err)
		assert.Equal(t, DirectionOutgoing, entry.Direction)
	})

	t.Run("rejects payment on a cancelled container", func(t *testing.T) {
		bill := createTestBill(t)
		require.NoError(t, bill.Cancel("gone"))

		_, err := svc.AcceptPayment(bill, decimal.Zero,
			valueobject.NewMoneyINRFromFloat(10), cashSpec())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		bill := createConfirmedBill(t)
		_, err := svc.AcceptPayment(bill, decimal.Zero, valueobject.ZeroINR(), cashSpec())
		assert.Error(t, err)
	})

	t.Run("accepts payment against a proxy bill", func(t *testing.T) {
		proxy := createTestProxyBill(t) // total 590
		require.NoError(t, proxy.Confirm())

		entry, err := svc.AcceptPayment(proxy, decimal.Zero,
			valueobject.NewMoneyINRFromFloat(590), cashSpec())
		require.NoError(t, err)
		require.NotNil(t, entry.ProxyBillID)
		assert.Equal(t, proxy.ID, *entry.ProxyBillID)
		assert.Nil(t, entry.BillID)
	})

	t.Run("corrupted paid total surfaces as invariant violation", func(t *testing.T) {
		bill := createConfirmedBill(t)

		_, err := svc.AcceptPayment(bill, decimal.NewFromInt(2000),
			valueobject.NewMoneyINRFromFloat(10), cashSpec())
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvariantViolation)
	})
}
