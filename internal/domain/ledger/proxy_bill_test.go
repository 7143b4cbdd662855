package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestProxyItems(t *testing.T) []ProxyBillItem {
	t.Helper()
	first, err := NewProxyBillItem("Cold room share", decimal.NewFromInt(2), decimal.NewFromInt(250))
	require.NoError(t, err)
	second, err := NewProxyBillItem("Transport share", decimal.NewFromInt(1), decimal.NewFromInt(90))
	require.NoError(t, err)
	return []ProxyBillItem{*first, *second}
}

func createTestProxyBill(t *testing.T) *ProxyBill {
	t.Helper()
	proxy, err := NewProxyBill(
		uuid.New(),
		"PRX-2026-001",
		uuid.New(),
		uuid.New(),
		"Kaveri Cold Storage",
		createTestProxyItems(t),
	)
	require.NoError(t, err)
	return proxy
}

// ============================================
// Proxy Bill Creation Tests
// ============================================

func TestNewProxyBill(t *testing.T) {
	t.Run("total equals the sum of items", func(t *testing.T) {
		proxy := createTestProxyBill(t)

		assert.Equal(t, BillStatusDraft, proxy.Status)
		// 2x250 + 1x90 = 590; proxies carry no separate tax line
		assert.True(t, decimal.NewFromInt(590).Equal(proxy.TotalAmount))
		assert.True(t, proxy.TotalAmount.Equal(proxy.ItemsTotal()))
	})

	t.Run("requires parent bill", func(t *testing.T) {
		_, err := NewProxyBill(uuid.New(), "PRX-1", uuid.Nil, uuid.New(), "Vendor",
			createTestProxyItems(t))
		assert.Error(t, err)
	})

	t.Run("requires at least one item", func(t *testing.T) {
		_, err := NewProxyBill(uuid.New(), "PRX-1", uuid.New(), uuid.New(), "Vendor", nil)
		assert.Error(t, err)
	})

	t.Run("requires proxy number", func(t *testing.T) {
		_, err := NewProxyBill(uuid.New(), "", uuid.New(), uuid.New(), "Vendor",
			createTestProxyItems(t))
		assert.Error(t, err)
	})
}

// ============================================
// Monetary Invariant Tests
// ============================================

func TestProxyBill_CheckMonetaryInvariant(t *testing.T) {
	proxy := createTestProxyBill(t)
	assert.NoError(t, proxy.CheckMonetaryInvariant())

	proxy.TotalAmount = proxy.TotalAmount.Add(decimal.NewFromInt(1))
	assert.Error(t, proxy.CheckMonetaryInvariant())
}

// ============================================
// Vendor Reassignment Tests
// ============================================

func TestProxyBill_ReassignVendor(t *testing.T) {
	t.Run("reassigns while draft", func(t *testing.T) {
		proxy := createTestProxyBill(t)
		newVendor := uuid.New()

		err := proxy.ReassignVendor(newVendor, "Deccan Transport")
		require.NoError(t, err)
		assert.Equal(t, newVendor, proxy.VendorID)
		assert.Equal(t, "Deccan Transport", proxy.VendorName)
	})

	t.Run("rejects after confirmation", func(t *testing.T) {
		proxy := createTestProxyBill(t)
		require.NoError(t, proxy.Confirm())
		assert.Error(t, proxy.ReassignVendor(uuid.New(), "Deccan Transport"))
	})

	t.Run("rejects empty vendor", func(t *testing.T) {
		proxy := createTestProxyBill(t)
		assert.Error(t, proxy.ReassignVendor(uuid.Nil, "Deccan Transport"))
	})
}

// ============================================
// Lifecycle Tests
// ============================================

func TestProxyBill_Confirm(t *testing.T) {
	tests := []struct {
		name    string
		status  BillStatus
		wantErr bool
	}{
		{"from draft", BillStatusDraft, false},
		{"already confirmed", BillStatusConfirmed, true},
		{"cancelled", BillStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proxy := createTestProxyBill(t)
			proxy.Status = tt.status

			err := proxy.Confirm()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, BillStatusConfirmed, proxy.Status)
				assert.NotNil(t, proxy.ConfirmedAt)
			}
		})
	}
}

func TestProxyBill_Cancel(t *testing.T) {
	proxy := createTestProxyBill(t)
	require.NoError(t, proxy.Cancel("split redone"))
	assert.Equal(t, BillStatusCancelled, proxy.Status)
	assert.Error(t, proxy.Cancel("again"))
}

func TestProxyBill_CanAcceptPayment(t *testing.T) {
	proxy := createTestProxyBill(t)
	assert.True(t, proxy.CanAcceptPayment())

	require.NoError(t, proxy.Cancel("gone"))
	assert.False(t, proxy.CanAcceptPayment())
}
