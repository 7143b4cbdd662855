package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/ledger"
)

// CreditEntryHandler serves credit entry endpoints. Entries linked to a bill
// or proxy bill are created through the payment endpoints; this handler only
// creates vendor-level entries.
type CreditEntryHandler struct {
	BaseHandler
	creditService *ledgerapp.CreditEntryService
}

func NewCreditEntryHandler(creditService *ledgerapp.CreditEntryService) *CreditEntryHandler {
	return &CreditEntryHandler{creditService: creditService}
}

// Create godoc
// @Summary Create a vendor-level credit entry
// @Description Records a monetary event against a vendor without a bill link
// @Tags credits
// @Accept json
// @Produce json
// @Param request body ledger.CreateCreditEntryRequest true "Credit entry data"
// @Success 201 {object} dto.Response{data=ledger.CreditEntryResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /credits [post]
func (h *CreditEntryHandler) Create(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req ledgerapp.CreateCreditEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.creditService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary Get a credit entry
// @Tags credits
// @Produce json
// @Param id path string true "Credit entry ID"
// @Success 200 {object} dto.Response{data=ledger.CreditEntryResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /credits/{id} [get]
func (h *CreditEntryHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "credit entry ID")
	if !ok {
		return
	}

	resp, err := h.creditService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary List credit entries
// @Tags credits
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param vendor_id query string false "Filter by vendor"
// @Param bill_id query string false "Filter by bill"
// @Param proxy_bill_id query string false "Filter by proxy bill"
// @Param direction query string false "Filter by direction" Enums(INCOMING, OUTGOING)
// @Param method query string false "Filter by payment method"
// @Param from_date query string false "Payment date lower bound (YYYY-MM-DD)"
// @Param to_date query string false "Payment date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.Response{data=[]ledger.CreditEntryResponse}
// @Security BearerAuth
// @Router /credits [get]
func (h *CreditEntryHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter ledgerapp.CreditEntryListFilter
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

	entries, total, err := h.creditService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary Edit a credit entry
// @Description Replaces the entry's amount, direction, method, date and links; overpayment caps still apply
// @Tags credits
// @Accept json
// @Produce json
// @Param id path string true "Credit entry ID"
// @Param request body ledger.UpdateCreditEntryRequest true "New entry values"
// @Success 200 {object} dto.Response{data=ledger.CreditEntryResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /credits/{id} [put]
func (h *CreditEntryHandler) Update(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "credit entry ID")
	if !ok {
		return
	}

	var req ledgerapp.UpdateCreditEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.creditService.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
