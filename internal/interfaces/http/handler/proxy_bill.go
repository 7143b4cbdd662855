package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	ledgerapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/ledger"
)

type proxyTransition = func(ctx context.Context, actor authz.Principal, id uuid.UUID) (*ledgerapp.ProxyBillResponse, error)

// ProxyBillHandler serves proxy bill endpoints.
type ProxyBillHandler struct {
	BaseHandler
	proxyService *ledgerapp.ProxyBillService
}

func NewProxyBillHandler(proxyService *ledgerapp.ProxyBillService) *ProxyBillHandler {
	return &ProxyBillHandler{proxyService: proxyService}
}

// Create godoc
// @Summary Create a proxy bill
// @Description Creates a standalone proxy bill, optionally linked to a parent bill
// @Tags proxy-bills
// @Accept json
// @Produce json
// @Param request body ledger.CreateProxyBillRequest true "Proxy bill data"
// @Success 201 {object} dto.Response{data=ledger.ProxyBillResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /proxy-bills [post]
func (h *ProxyBillHandler) Create(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req ledgerapp.CreateProxyBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.proxyService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary Get a proxy bill
// @Tags proxy-bills
// @Produce json
// @Param id path string true "Proxy bill ID"
// @Success 200 {object} dto.Response{data=ledger.ProxyBillResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /proxy-bills/{id} [get]
func (h *ProxyBillHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "proxy bill ID")
	if !ok {
		return
	}

	resp, err := h.proxyService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary List proxy bills
// @Tags proxy-bills
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status" Enums(DRAFT, CONFIRMED, CANCELLED)
// @Param parent_bill_id query string false "Filter by parent bill"
// @Param vendor_id query string false "Filter by vendor"
// @Param search query string false "Search proxy number and notes"
// @Success 200 {object} dto.Response{data=[]ledger.ProxyBillResponse}
// @Security BearerAuth
// @Router /proxy-bills [get]
func (h *ProxyBillHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter ledgerapp.ProxyBillListFilter
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

	proxies, total, err := h.proxyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, proxies, total, filter.Page, filter.PageSize)
}

// ListByParent godoc
// @Summary List proxy bills split from a bill
// @Tags proxy-bills
// @Produce json
// @Param id path string true "Parent bill ID"
// @Success 200 {object} dto.Response{data=[]ledger.ProxyBillResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id}/proxy-bills [get]
func (h *ProxyBillHandler) ListByParent(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	parentID, ok := h.pathID(c, "id", "bill ID")
	if !ok {
		return
	}

	proxies, err := h.proxyService.ListByParent(c.Request.Context(), tenantID, parentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, proxies)
}

// ReassignVendor godoc
// @Summary Reassign a proxy bill to another vendor
// @Description Only draft proxy bills with no recorded payments can move
// @Tags proxy-bills
// @Accept json
// @Produce json
// @Param id path string true "Proxy bill ID"
// @Param request body ledger.ReassignProxyVendorRequest true "Target vendor"
// @Success 200 {object} dto.Response{data=ledger.ProxyBillResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /proxy-bills/{id}/vendor [put]
func (h *ProxyBillHandler) ReassignVendor(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "proxy bill ID")
	if !ok {
		return
	}

	var req ledgerapp.ReassignProxyVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.proxyService.ReassignVendor(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Confirm godoc
// @Summary Confirm a proxy bill
// @Tags proxy-bills
// @Produce json
// @Param id path string true "Proxy bill ID"
// @Success 200 {object} dto.Response{data=ledger.ProxyBillResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /proxy-bills/{id}/confirm [post]
func (h *ProxyBillHandler) Confirm(c *gin.Context) {
	h.transition(c, h.proxyService.Confirm)
}

// Cancel godoc
// @Summary Cancel a proxy bill
// @Description Cancels a proxy bill that has no recorded payments
// @Tags proxy-bills
// @Accept json
// @Produce json
// @Param id path string true "Proxy bill ID"
// @Param request body ledger.CancelBillRequest false "Cancellation reason"
// @Success 200 {object} dto.Response{data=ledger.ProxyBillResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /proxy-bills/{id}/cancel [post]
func (h *ProxyBillHandler) Cancel(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "proxy bill ID")
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

	resp, err := h.proxyService.Cancel(c.Request.Context(), principal, id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AcceptPayment godoc
// @Summary Record a payment against a proxy bill
// @Description Creates a credit entry and refreshes the proxy bill's payment status
// @Tags proxy-bills
// @Accept json
// @Produce json
// @Param id path string true "Proxy bill ID"
// @Param request body ledger.AcceptPaymentRequest true "Payment data"
// @Success 201 {object} dto.Response{data=ledger.CreditEntryResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /proxy-bills/{id}/payments [post]
func (h *ProxyBillHandler) AcceptPayment(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "proxy bill ID")
	if !ok {
		return
	}

	var req ledgerapp.AcceptPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.proxyService.AcceptPayment(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

func (h *ProxyBillHandler) transition(c *gin.Context, op proxyTransition) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "proxy bill ID")
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
