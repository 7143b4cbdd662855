package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/report"
)

// ReportHandler serves read-only aggregate report endpoints.
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard godoc
// @Summary Tenant dashboard summary
// @Description Returns vendor count, confirmed billing total, collections and outstanding balance
// @Tags reports
// @Produce json
// @Success 200 {object} dto.Response{data=report.DashboardResponse}
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	resp, err := h.reportService.Dashboard(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Outstanding godoc
// @Summary Outstanding balance per vendor
// @Description Lists vendors with confirmed billing, received payments and the open balance
// @Tags reports
// @Produce json
// @Success 200 {object} dto.Response{data=[]report.VendorOutstandingResponse}
// @Security BearerAuth
// @Router /reports/outstanding [get]
func (h *ReportHandler) Outstanding(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	resp, err := h.reportService.OutstandingByVendor(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Collections godoc
// @Summary Collections over a date range
// @Description Sums incoming and outgoing credit entries between two dates
// @Tags reports
// @Produce json
// @Param from_date query string true "Range start (YYYY-MM-DD)"
// @Param to_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.Response{data=report.CollectionsResponse}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /reports/collections [get]
func (h *ReportHandler) Collections(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req reportapp.CollectionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}
	if req.ToDate.Before(req.FromDate) {
		h.BadRequest(c, "to_date must not be before from_date")
		return
	}

	resp, err := h.reportService.Collections(c.Request.Context(), tenantID, req.FromDate, req.ToDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeliveryStatus godoc
// @Summary Delivery order counts by status
// @Tags reports
// @Produce json
// @Success 200 {object} dto.Response{data=report.DeliveryStatusReportResponse}
// @Security BearerAuth
// @Router /reports/deliveries [get]
func (h *ReportHandler) DeliveryStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	resp, err := h.reportService.DeliveryStatusCounts(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
