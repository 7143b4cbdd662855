package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/audit"
)

// AuditHandler serves the audit trail read endpoint. The trail itself is
// written by the application services; there is no write API.
type AuditHandler struct {
	BaseHandler
	queryService *auditapp.QueryService
}

func NewAuditHandler(queryService *auditapp.QueryService) *AuditHandler {
	return &AuditHandler{queryService: queryService}
}

// List godoc
// @Summary List audit log entries
// @Description Returns the tenant's audit trail, newest first
// @Tags audit
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param user_id query string false "Filter by acting user"
// @Param action query string false "Filter by action"
// @Param entity_type query string false "Filter by entity type"
// @Param entity_id query string false "Filter by entity"
// @Param from_date query string false "Entry date lower bound (YYYY-MM-DD)"
// @Param to_date query string false "Entry date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.Response{data=[]audit.AuditLogResponse}
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter auditapp.AuditLogListFilter
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

	entries, total, err := h.queryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}
