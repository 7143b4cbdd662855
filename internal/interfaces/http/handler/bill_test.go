package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	ledgerapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/partner"
)

// MockBillRepository implements ledger.BillRepository for testing
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Bill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByIDForTenantForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Bill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByBillNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (*ledger.Bill, error) {
	args := m.Called(ctx, tenantID, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.BillFilter) ([]ledger.Bill, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.Bill), args.Error(1)
}

func (m *MockBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.BillFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *ledger.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) ExistsByBillNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, billNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) SumConfirmedTotalByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, vendorID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBillRepository) SumConfirmedTotalForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockProxyBillRepository implements ledger.ProxyBillRepository for testing
type MockProxyBillRepository struct {
	mock.Mock
}

func (m *MockProxyBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.ProxyBill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ProxyBill), args.Error(1)
}

func (m *MockProxyBillRepository) FindByIDForTenantForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*ledger.ProxyBill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ProxyBill), args.Error(1)
}

func (m *MockProxyBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.ProxyBillFilter) ([]ledger.ProxyBill, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.ProxyBill), args.Error(1)
}

func (m *MockProxyBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.ProxyBillFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProxyBillRepository) FindByParentBill(ctx context.Context, tenantID, parentBillID uuid.UUID) ([]ledger.ProxyBill, error) {
	args := m.Called(ctx, tenantID, parentBillID)
	return args.Get(0).([]ledger.ProxyBill), args.Error(1)
}

func (m *MockProxyBillRepository) Save(ctx context.Context, proxy *ledger.ProxyBill) error {
	args := m.Called(ctx, proxy)
	return args.Error(0)
}

func (m *MockProxyBillRepository) SaveAll(ctx context.Context, proxies []*ledger.ProxyBill) error {
	args := m.Called(ctx, proxies)
	return args.Error(0)
}

func (m *MockProxyBillRepository) ExistsByProxyNumber(ctx context.Context, tenantID uuid.UUID, proxyNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, proxyNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockProxyBillRepository) CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCreditEntryRepository implements ledger.CreditEntryRepository for testing
type MockCreditEntryRepository struct {
	mock.Mock
}

func (m *MockCreditEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.CreditEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.CreditEntryFilter) ([]ledger.CreditEntry, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.CreditEntryFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditEntryRepository) FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]ledger.CreditEntry, error) {
	args := m.Called(ctx, tenantID, billID)
	return args.Get(0).([]ledger.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) FindByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) ([]ledger.CreditEntry, error) {
	args := m.Called(ctx, tenantID, proxyBillID)
	return args.Get(0).([]ledger.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) Save(ctx context.Context, entry *ledger.CreditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCreditEntryRepository) SumForBill(ctx context.Context, tenantID, billID uuid.UUID, direction ledger.PaymentDirection) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, billID, direction)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditEntryRepository) SumForProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID, direction ledger.PaymentDirection) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, proxyBillID, direction)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditEntryRepository) SumForVendor(ctx context.Context, tenantID, vendorID uuid.UUID, direction ledger.PaymentDirection) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, vendorID, direction)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditEntryRepository) SumForTenant(ctx context.Context, tenantID uuid.UUID, direction ledger.PaymentDirection, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, direction, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditEntryRepository) CountByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockVendorRepository implements partner.VendorRepository for testing
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByCustomerCode(ctx context.Context, tenantID uuid.UUID, customerCode string) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, customerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.VendorFilter) ([]partner.Vendor, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Vendor, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) SaveBatch(ctx context.Context, vendors []*partner.Vendor) error {
	args := m.Called(ctx, vendors)
	return args.Error(0)
}

func (m *MockVendorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVendorRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.VendorFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) ExistsByCustomerCode(ctx context.Context, tenantID uuid.UUID, customerCode string) (bool, error) {
	args := m.Called(ctx, tenantID, customerCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) ExistsByGSTNumber(ctx context.Context, tenantID uuid.UUID, gstNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, gstNumber)
	return args.Bool(0), args.Error(1)
}

// stubRecorder accepts every audit write
type stubRecorder struct{}

func (stubRecorder) Record(ctx context.Context, entry *audit.AuditLog) error {
	return nil
}

// passthroughTxManager runs the function directly; transactional wiring is
// covered at the infrastructure layer
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var billTestTaxRate = decimal.NewFromFloat(0.18)

type billHandlerMocks struct {
	billRepo   *MockBillRepository
	proxyRepo  *MockProxyBillRepository
	creditRepo *MockCreditEntryRepository
	vendorRepo *MockVendorRepository
}

// setupBillTestRouter wires mock repositories through a real bill service
// and a real gate. The roleCode decides the authenticated principal's role.
func setupBillTestRouter(tenantID, userID uuid.UUID, roleCode string) (*gin.Engine, *billHandlerMocks, *BillHandler) {
	gin.SetMode(gin.TestMode)

	m := &billHandlerMocks{
		billRepo:   new(MockBillRepository),
		proxyRepo:  new(MockProxyBillRepository),
		creditRepo: new(MockCreditEntryRepository),
		vendorRepo: new(MockVendorRepository),
	}

	service := ledgerapp.NewBillService(
		m.billRepo, m.proxyRepo, m.creditRepo, m.vendorRepo,
		ledger.NewReconciliationService(), stubRecorder{}, passthroughTxManager{}, billTestTaxRate,
	)
	gate := authz.NewGate(new(MockRoleRepository), new(MockGrantSource))
	handler := NewBillHandler(service, gate)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, tenantID, userID, "test.user", roleCode)
		c.Next()
	})

	return router, m, handler
}

// newHandlerTestBill builds a draft bill with subtotal 1000, tax 180, total 1180
func newHandlerTestBill(t *testing.T, tenantID uuid.UUID) *ledger.Bill {
	t.Helper()
	item, err := ledger.NewBillItem("Steel rods", decimal.NewFromInt(10), decimal.NewFromInt(100))
	require.NoError(t, err)
	bill, err := ledger.NewBill(
		tenantID, "BILL-2026-001", uuid.New(), "Sharma Traders",
		ledger.BillTypePurchase, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		[]ledger.BillItem{*item}, billTestTaxRate,
	)
	require.NoError(t, err)
	return bill
}

func TestBillHandler_Create(t *testing.T) {
	t.Run("should create bill successfully", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills", handler.Create)

		vendor, err := partner.NewVendor(tenantID, "Sharma Traders", partner.VendorTypeSupplier)
		require.NoError(t, err)

		m.billRepo.On("ExistsByBillNumber", mock.Anything, tenantID, "BILL-2026-001").Return(false, nil)
		m.vendorRepo.On("FindByIDForTenant", mock.Anything, tenantID, vendor.ID).Return(vendor, nil)
		m.billRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Bill")).Return(nil)
		m.creditRepo.On("SumForBill", mock.Anything, tenantID, mock.Anything, ledger.DirectionIncoming).
			Return(decimal.Zero, nil)

		body, _ := json.Marshal(ledgerapp.CreateBillRequest{
			BillNumber: "BILL-2026-001",
			VendorID:   vendor.ID,
			BillType:   "PURCHASE",
			BillDate:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Items: []ledgerapp.BillItemInput{
				{Description: "Steel rods", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)},
			},
		})

		req, _ := http.NewRequest(http.MethodPost, "/bills", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, true, response["success"])

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "BILL-2026-001", data["bill_number"])
		assert.Equal(t, "DRAFT", data["status"])
		assert.Equal(t, "1180", data["total_amount"])

		recon := data["reconciliation"].(map[string]interface{})
		assert.Equal(t, "1180", recon["remaining"])
		assert.Equal(t, "UNPAID", recon["payment_status"])

		m.billRepo.AssertExpectations(t)
		m.vendorRepo.AssertExpectations(t)
	})

	t.Run("should answer 409 for duplicate bill number", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills", handler.Create)

		m.billRepo.On("ExistsByBillNumber", mock.Anything, tenantID, "BILL-2026-001").Return(true, nil)

		body, _ := json.Marshal(ledgerapp.CreateBillRequest{
			BillNumber: "BILL-2026-001",
			VendorID:   uuid.New(),
			BillType:   "PURCHASE",
			BillDate:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Items: []ledgerapp.BillItemInput{
				{Description: "Steel rods", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)},
			},
		})

		req, _ := http.NewRequest(http.MethodPost, "/bills", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "DUPLICATE_KEY", errInfo["code"])
	})

	t.Run("should answer 400 for missing items", func(t *testing.T) {
		router, _, handler := setupBillTestRouter(uuid.New(), uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills", handler.Create)

		body := []byte(`{"bill_number":"BILL-2026-002","vendor_id":"` + uuid.New().String() + `","bill_type":"PURCHASE","bill_date":"2026-03-14T00:00:00Z","items":[]}`)

		req, _ := http.NewRequest(http.MethodPost, "/bills", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errInfo["code"])
	})
}

func TestBillHandler_GetByID(t *testing.T) {
	t.Run("should return bill with reconciliation", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.GET("/bills/:id", handler.GetByID)

		bill := newHandlerTestBill(t, tenantID)

		m.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		m.creditRepo.On("SumForBill", mock.Anything, tenantID, bill.ID, ledger.DirectionIncoming).
			Return(decimal.NewFromInt(500), nil)

		req, _ := http.NewRequest(http.MethodGet, "/bills/"+bill.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		recon := data["reconciliation"].(map[string]interface{})
		assert.Equal(t, "500", recon["total_paid"])
		assert.Equal(t, "680", recon["remaining"])
		assert.Equal(t, "PARTIALLY_PAID", recon["payment_status"])
	})

	t.Run("should hide unauthorized bill from organiser", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeOrganiser)
		router.GET("/bills/:id", handler.GetByID)

		bill := newHandlerTestBill(t, tenantID)

		m.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)

		req, _ := http.NewRequest(http.MethodGet, "/bills/"+bill.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// Not 403: the restricted role cannot learn the bill exists.
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should show authorized bill to organiser", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeOrganiser)
		router.GET("/bills/:id", handler.GetByID)

		bill := newHandlerTestBill(t, tenantID)
		require.NoError(t, bill.Confirm())
		require.NoError(t, bill.Authorize(uuid.New()))

		m.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		m.creditRepo.On("SumForBill", mock.Anything, tenantID, bill.ID, ledger.DirectionIncoming).
			Return(decimal.Zero, nil)

		req, _ := http.NewRequest(http.MethodGet, "/bills/"+bill.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, true, data["is_authorized"])
	})
}

func TestBillHandler_List(t *testing.T) {
	t.Run("should list bills with pagination meta", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.GET("/bills", handler.List)

		bill := newHandlerTestBill(t, tenantID)

		m.billRepo.On("FindAllForTenant", mock.Anything, tenantID, mock.MatchedBy(func(f ledger.BillFilter) bool {
			return !f.AuthorizedOnly && f.Page == 1 && f.PageSize == 10
		})).Return([]ledger.Bill{*bill}, nil)
		m.billRepo.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(1), nil)

		req, _ := http.NewRequest(http.MethodGet, "/bills?page=1&page_size=10", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, true, response["success"])
		meta := response["meta"].(map[string]interface{})
		assert.Equal(t, float64(1), meta["total"])
	})

	t.Run("should pin organiser list to authorized bills", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeOrganiser)
		router.GET("/bills", handler.List)

		m.billRepo.On("FindAllForTenant", mock.Anything, tenantID, mock.MatchedBy(func(f ledger.BillFilter) bool {
			return f.AuthorizedOnly
		})).Return([]ledger.Bill{}, nil)
		m.billRepo.On("CountForTenant", mock.Anything, tenantID, mock.MatchedBy(func(f ledger.BillFilter) bool {
			return f.AuthorizedOnly
		})).Return(int64(0), nil)

		req, _ := http.NewRequest(http.MethodGet, "/bills", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		m.billRepo.AssertExpectations(t)
	})
}

func TestBillHandler_Transitions(t *testing.T) {
	t.Run("should confirm draft bill", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills/:id/confirm", handler.Confirm)

		bill := newHandlerTestBill(t, tenantID)

		m.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		m.billRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Bill")).Return(nil)
		m.creditRepo.On("SumForBill", mock.Anything, tenantID, bill.ID, ledger.DirectionIncoming).
			Return(decimal.Zero, nil)

		req, _ := http.NewRequest(http.MethodPost, "/bills/"+bill.ID.String()+"/confirm", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "CONFIRMED", data["status"])
	})

	t.Run("should answer 422 when confirming a confirmed bill", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills/:id/confirm", handler.Confirm)

		bill := newHandlerTestBill(t, tenantID)
		require.NoError(t, bill.Confirm())

		m.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)

		req, _ := http.NewRequest(http.MethodPost, "/bills/"+bill.ID.String()+"/confirm", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_STATE", errInfo["code"])
	})

	t.Run("should authorize confirmed bill", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeAdmin)
		router.POST("/bills/:id/authorize", handler.Authorize)

		bill := newHandlerTestBill(t, tenantID)
		require.NoError(t, bill.Confirm())

		m.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		m.billRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Bill")).Return(nil)
		m.creditRepo.On("SumForBill", mock.Anything, tenantID, bill.ID, ledger.DirectionIncoming).
			Return(decimal.Zero, nil)

		req, _ := http.NewRequest(http.MethodPost, "/bills/"+bill.ID.String()+"/authorize", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, true, data["is_authorized"])
	})
}

func TestBillHandler_AcceptPayment(t *testing.T) {
	t.Run("should record full payment", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills/:id/payments", handler.AcceptPayment)

		bill := newHandlerTestBill(t, tenantID)
		require.NoError(t, bill.Confirm())

		m.billRepo.On("FindByIDForTenantForUpdate", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		m.creditRepo.On("SumForBill", mock.Anything, tenantID, bill.ID, ledger.DirectionIncoming).
			Return(decimal.Zero, nil)
		m.creditRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.CreditEntry")).Return(nil)

		body, _ := json.Marshal(ledgerapp.AcceptPaymentRequest{
			Type:   "FULL",
			Method: "CASH",
		})

		req, _ := http.NewRequest(http.MethodPost, "/bills/"+bill.ID.String()+"/payments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "1180", data["amount"])
		assert.Equal(t, "INCOMING", data["direction"])

		m.creditRepo.AssertExpectations(t)
	})

	t.Run("should answer 422 for overpayment", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills/:id/payments", handler.AcceptPayment)

		bill := newHandlerTestBill(t, tenantID)
		require.NoError(t, bill.Confirm())

		amount := decimal.NewFromInt(2000)
		m.billRepo.On("FindByIDForTenantForUpdate", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		m.creditRepo.On("SumForBill", mock.Anything, tenantID, bill.ID, ledger.DirectionIncoming).
			Return(decimal.Zero, nil)

		body, _ := json.Marshal(ledgerapp.AcceptPaymentRequest{
			Type:   "PARTIAL",
			Amount: &amount,
		})

		req, _ := http.NewRequest(http.MethodPost, "/bills/"+bill.ID.String()+"/payments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestBillHandler_Split(t *testing.T) {
	t.Run("should split bill into proxy bills", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills/:id/split", handler.Split)

		bill := newHandlerTestBill(t, tenantID)
		require.NoError(t, bill.Confirm())

		m.billRepo.On("FindByIDForTenantForUpdate", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		m.proxyRepo.On("ExistsByProxyNumber", mock.Anything, tenantID, "PX-001").Return(false, nil)
		m.proxyRepo.On("ExistsByProxyNumber", mock.Anything, tenantID, "PX-002").Return(false, nil)
		m.proxyRepo.On("SaveAll", mock.Anything, mock.AnythingOfType("[]*ledger.ProxyBill")).Return(nil)

		body, _ := json.Marshal(ledgerapp.SplitBillRequest{
			Splits: []ledgerapp.SplitPartInput{
				{
					ProxyNumber: "PX-001",
					Items: []ledgerapp.BillItemInput{
						{Description: "Steel rods", Quantity: decimal.NewFromInt(6), UnitPrice: decimal.NewFromInt(100)},
					},
				},
				{
					ProxyNumber: "PX-002",
					Items: []ledgerapp.BillItemInput{
						{Description: "Steel rods", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(100)},
					},
				},
			},
		})

		req, _ := http.NewRequest(http.MethodPost, "/bills/"+bill.ID.String()+"/split", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, bill.ID.String(), data["parent_bill_id"])
		created := data["created"].([]interface{})
		require.Len(t, created, 2)

		first := created[0].(map[string]interface{})
		assert.Equal(t, "PX-001", first["proxy_number"])
		assert.Equal(t, bill.VendorName, first["vendor_name"])

		m.proxyRepo.AssertExpectations(t)
	})

	t.Run("should answer 409 for duplicate proxy number within request", func(t *testing.T) {
		tenantID := uuid.New()
		router, m, handler := setupBillTestRouter(tenantID, uuid.New(), identity.RoleCodeSalesman)
		router.POST("/bills/:id/split", handler.Split)

		bill := newHandlerTestBill(t, tenantID)
		require.NoError(t, bill.Confirm())

		m.billRepo.On("FindByIDForTenantForUpdate", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		m.proxyRepo.On("ExistsByProxyNumber", mock.Anything, tenantID, "PX-001").Return(false, nil)

		body, _ := json.Marshal(ledgerapp.SplitBillRequest{
			Splits: []ledgerapp.SplitPartInput{
				{
					ProxyNumber: "PX-001",
					Items: []ledgerapp.BillItemInput{
						{Description: "Steel rods", Quantity: decimal.NewFromInt(6), UnitPrice: decimal.NewFromInt(100)},
					},
				},
				{
					ProxyNumber: "PX-001",
					Items: []ledgerapp.BillItemInput{
						{Description: "Steel rods", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(100)},
					},
				},
			},
		})

		req, _ := http.NewRequest(http.MethodPost, "/bills/"+bill.ID.String()+"/split", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
