package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/partner"
)

// VendorHandler serves vendor master data endpoints.
type VendorHandler struct {
	BaseHandler
	vendorService *partnerapp.VendorService
}

func NewVendorHandler(vendorService *partnerapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Create godoc
// @Summary Create a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param request body partner.CreateVendorRequest true "Vendor data"
// @Success 201 {object} dto.Response{data=partner.VendorResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req partnerapp.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.vendorService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary Get a vendor
// @Description Returns a vendor with its outstanding balance and association counts
// @Tags vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} dto.Response{data=partner.VendorResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "vendor ID")
	if !ok {
		return
	}

	resp, err := h.vendorService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary List vendors
// @Tags vendors
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param type query string false "Filter by vendor type" Enums(SUPPLIER, CUSTOMER, BOTH)
// @Param status query string false "Filter by status" Enums(ACTIVE, INACTIVE)
// @Param is_blocked query bool false "Filter by blocked flag"
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state"
// @Param search query string false "Search name, code, GST and phone"
// @Success 200 {object} dto.Response{data=[]partner.VendorListResponse}
// @Security BearerAuth
// @Router /vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter partnerapp.VendorListFilter
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

	vendors, total, err := h.vendorService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, vendors, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary Update a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param request body partner.UpdateVendorRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=partner.VendorResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /vendors/{id} [put]
func (h *VendorHandler) Update(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "vendor ID")
	if !ok {
		return
	}

	var req partnerapp.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.vendorService.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @Summary Delete a vendor
// @Description Fails with a conflict when bills, proxy bills or credit entries reference the vendor
// @Tags vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /vendors/{id} [delete]
func (h *VendorHandler) Delete(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "vendor ID")
	if !ok {
		return
	}

	if err := h.vendorService.Delete(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// BulkImport godoc
// @Summary Bulk import vendors
// @Description Imports parsed vendor rows; valid rows are saved, failed rows are reported per row
// @Tags vendors
// @Accept json
// @Produce json
// @Param request body partner.BulkImportRequest true "Vendor rows"
// @Success 200 {object} dto.Response{data=partner.BulkImportResponse}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /vendors/import [post]
func (h *VendorHandler) BulkImport(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req partnerapp.BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.vendorService.BulkImport(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
