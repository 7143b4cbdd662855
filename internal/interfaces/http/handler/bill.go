package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	ledgerapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/ledger"
)

type billTransition = func(ctx context.Context, actor authz.Principal, id uuid.UUID) (*ledgerapp.BillResponse, error)

// BillHandler serves vendor bill endpoints. Read endpoints consult the
// authorization gate so organiser accounts only see authorized bills.
type BillHandler struct {
	BaseHandler
	billService *ledgerapp.BillService
	gate        *authz.Gate
}

func NewBillHandler(billService *ledgerapp.BillService, gate *authz.Gate) *BillHandler {
	return &BillHandler{billService: billService, gate: gate}
}

// Create godoc
// @Summary Create a bill
// @Description Creates a draft bill with its items; totals are computed server side
// @Tags bills
// @Accept json
// @Produce json
// @Param request body ledger.CreateBillRequest true "Bill data"
// @Success 201 {object} dto.Response{data=ledger.BillResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req ledgerapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.billService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary Get a bill
// @Description Returns a bill with items, payment history and reconciliation state
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.Response{data=ledger.BillResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *BillHandler) GetByID(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "bill ID")
	if !ok {
		return
	}

	authorizedOnly := h.gate.SeesOnlyAuthorizedBills(principal)
	resp, err := h.billService.GetByID(c.Request.Context(), principal.TenantID, id, authorizedOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary List bills
// @Tags bills
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status" Enums(DRAFT, CONFIRMED, CANCELLED)
// @Param bill_type query string false "Filter by type" Enums(PURCHASE, SALE)
// @Param payment_status query string false "Filter by payment status" Enums(UNPAID, PARTIALLY_PAID, FULLY_PAID)
// @Param vendor_id query string false "Filter by vendor"
// @Param from_date query string false "Bill date lower bound (YYYY-MM-DD)"
// @Param to_date query string false "Bill date upper bound (YYYY-MM-DD)"
// @Param search query string false "Search bill number and notes"
// @Success 200 {object} dto.Response{data=[]ledger.BillListResponse}
// @Security BearerAuth
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var filter ledgerapp.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleValidationError(c, err)
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	filter.AuthorizedOnly = h.gate.SeesOnlyAuthorizedBills(principal)

	bills, total, err := h.billService.List(c.Request.Context(), principal.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, bills, total, filter.Page, filter.PageSize)
}

// Confirm godoc
// @Summary Confirm a bill
// @Description Transitions a draft bill to CONFIRMED, locking its items
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.Response{data=ledger.BillResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id}/confirm [post]
func (h *BillHandler) Confirm(c *gin.Context) {
	h.transition(c, h.billService.Confirm)
}

// Authorize godoc
// @Summary Authorize a bill
// @Description Marks a confirmed bill as visible to organiser accounts
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.Response{data=ledger.BillResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id}/authorize [post]
func (h *BillHandler) Authorize(c *gin.Context) {
	h.transition(c, h.billService.Authorize)
}

// Unauthorize godoc
// @Summary Revoke bill authorization
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.Response{data=ledger.BillResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id}/unauthorize [post]
func (h *BillHandler) Unauthorize(c *gin.Context) {
	h.transition(c, h.billService.Unauthorize)
}

// Cancel godoc
// @Summary Cancel a bill
// @Description Cancels a bill that has no recorded payments
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body ledger.CancelBillRequest false "Cancellation reason"
// @Success 200 {object} dto.Response{data=ledger.BillResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id}/cancel [post]
func (h *BillHandler) Cancel(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "bill ID")
	if !ok {
		return
	}

	var req ledgerapp.CancelBillRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleValidationError(c, err)
			return
		}
	}

	resp, err := h.billService.Cancel(c.Request.Context(), principal, id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AcceptPayment godoc
// @Summary Record a payment against a bill
// @Description Creates a credit entry and refreshes the bill's payment status
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body ledger.AcceptPaymentRequest true "Payment data"
// @Success 201 {object} dto.Response{data=ledger.CreditEntryResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id}/payments [post]
func (h *BillHandler) AcceptPayment(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "bill ID")
	if !ok {
		return
	}

	var req ledgerapp.AcceptPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.billService.AcceptPayment(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Split godoc
// @Summary Split a bill into proxy bills
// @Description Atomically carves the bill's items into one or more proxy bills
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body ledger.SplitBillRequest true "Split parts"
// @Success 201 {object} dto.Response{data=ledger.SplitBillResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id}/split [post]
func (h *BillHandler) Split(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "bill ID")
	if !ok {
		return
	}

	var req ledgerapp.SplitBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.billService.Split(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

func (h *BillHandler) transition(c *gin.Context, op billTransition) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "bill ID")
	if !ok {
		return
	}

	resp, err := op(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
