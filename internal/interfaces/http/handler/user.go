package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	identityapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/identity"
)

// UserHandler serves user administration endpoints.
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @Summary Create a user
// @Description Creates a user with the given role inside the caller's tenant
// @Tags users
// @Accept json
// @Produce json
// @Param request body identity.CreateUserRequest true "User data"
// @Success 201 {object} dto.Response{data=identity.UserResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.userService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.Response{data=identity.UserResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "user ID")
	if !ok {
		return
	}

	resp, err := h.userService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param role query string false "Filter by role code"
// @Param status query string false "Filter by status" Enums(active, locked, deactivated)
// @Param search query string false "Search username, display name and email"
// @Success 200 {object} dto.Response{data=[]identity.UserResponse}
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter identityapp.UserListFilter
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

	users, total, err := h.userService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary Update a user
// @Description Updates display name, email or role
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body identity.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=identity.UserResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "user ID")
	if !ok {
		return
	}

	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.userService.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate godoc
// @Summary Activate a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.Response{data=identity.UserResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	h.lifecycle(c, h.userService.Activate)
}

// Deactivate godoc
// @Summary Deactivate a user
// @Description Deactivated users cannot log in; the last active admin cannot be deactivated
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.Response{data=identity.UserResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.lifecycle(c, h.userService.Deactivate)
}

// Unlock godoc
// @Summary Unlock a locked user
// @Description Clears the failed login counter and lock deadline
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.Response{data=identity.UserResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /users/{id}/unlock [post]
func (h *UserHandler) Unlock(c *gin.Context) {
	h.lifecycle(c, h.userService.Unlock)
}

// ResetPassword godoc
// @Summary Reset a user's password
// @Description Sets a new password without requiring the old one
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body identity.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "user ID")
	if !ok {
		return
	}

	var req identityapp.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), principal, id, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password reset"})
}

func (h *UserHandler) lifecycle(c *gin.Context, op func(ctx context.Context, actor authz.Principal, id uuid.UUID) (*identityapp.UserResponse, error)) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id", "user ID")
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
