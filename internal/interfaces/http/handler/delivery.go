package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	deliveryapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/delivery"
)

// DeliveryHandler serves delivery order endpoints. The gate pins delivery
// role accounts to their own assignments on every read and update.
type DeliveryHandler struct {
	BaseHandler
	deliveryService *deliveryapp.DeliveryService
	gate            *authz.Gate
}

func NewDeliveryHandler(deliveryService *deliveryapp.DeliveryService, gate *authz.Gate) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService, gate: gate}
}

// assignmentScope returns the assignee filter for principals restricted to
// their own deliveries, nil for everyone else.
func (h *DeliveryHandler) assignmentScope(principal authz.Principal) *uuid.UUID {
	if h.gate.SeesOnlyOwnDeliveries(principal) {
		userID := principal.UserID
		return &userID
	}
	return nil
}

// Create godoc
// @Summary Create a delivery order
// @Description Creates a delivery for a bill or proxy bill, assigned to a delivery user
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body delivery.CreateDeliveryRequest true "Delivery data"
// @Success 201 {object} dto.Response{data=delivery.DeliveryOrderResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /deliveries [post]
func (h *DeliveryHandler) Create(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req deliveryapp.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.deliveryService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary Get a delivery order
// @Tags deliveries
// @Produce json
// @Param id path string true "Delivery order ID"
// @Success 200 {object} dto.Response{data=delivery.DeliveryOrderResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "delivery order ID")
	if !ok {
		return
	}

	resp, err := h.deliveryService.GetByID(c.Request.Context(), principal.TenantID, id, h.assignmentScope(principal))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary List delivery orders
// @Tags deliveries
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status" Enums(PENDING, IN_TRANSIT, DELIVERED, CANCELLED)
// @Param assigned_to query string false "Filter by assignee"
// @Param vendor_id query string false "Filter by vendor"
// @Param search query string false "Search delivery number and address"
// @Success 200 {object} dto.Response{data=[]delivery.DeliveryOrderResponse}
// @Security BearerAuth
// @Router /deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var filter deliveryapp.DeliveryListFilter
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

	// A restricted principal's own scope overrides any requested assignee.
	if scope := h.assignmentScope(principal); scope != nil {
		filter.AssignedTo = scope
	}

	deliveries, total, err := h.deliveryService.List(c.Request.Context(), principal.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, deliveries, total, filter.Page, filter.PageSize)
}

// UpdateStatus godoc
// @Summary Update a delivery order's status
// @Description Moves the delivery along PENDING, IN_TRANSIT, DELIVERED or cancels it
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path string true "Delivery order ID"
// @Param request body delivery.UpdateDeliveryStatusRequest true "Target status"
// @Success 200 {object} dto.Response{data=delivery.DeliveryOrderResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /deliveries/{id}/status [post]
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "delivery order ID")
	if !ok {
		return
	}

	var req deliveryapp.UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.deliveryService.UpdateStatus(c.Request.Context(), principal, id, req, h.assignmentScope(principal))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
