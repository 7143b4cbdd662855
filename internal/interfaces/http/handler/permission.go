package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/identity"
)

// PermissionHandler serves the permission catalog and role grant endpoints.
type PermissionHandler struct {
	BaseHandler
	permissionService *identityapp.PermissionService
}

func NewPermissionHandler(permissionService *identityapp.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// ListCatalog godoc
// @Summary Permission catalog
// @Description Returns all known permissions grouped by category
// @Tags permissions
// @Produce json
// @Success 200 {object} dto.Response{data=[]identity.PermissionGroupResponse}
// @Security BearerAuth
// @Router /permissions [get]
func (h *PermissionHandler) ListCatalog(c *gin.Context) {
	groups, err := h.permissionService.ListCatalog(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// ListRoles godoc
// @Summary List roles
// @Tags permissions
// @Produce json
// @Success 200 {object} dto.Response{data=[]identity.RoleResponse}
// @Security BearerAuth
// @Router /roles [get]
func (h *PermissionHandler) ListRoles(c *gin.Context) {
	roles, err := h.permissionService.ListRoles(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roles)
}

// GetRoleGrants godoc
// @Summary Get a role's grants
// @Description Returns the full permission catalog with the role's granted flags
// @Tags permissions
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} dto.Response{data=identity.RoleGrantsResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /roles/{id}/grants [get]
func (h *PermissionHandler) GetRoleGrants(c *gin.Context) {
	roleID, ok := h.pathID(c, "id", "role ID")
	if !ok {
		return
	}

	resp, err := h.permissionService.GetRoleGrants(c.Request.Context(), roleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateRoleGrants godoc
// @Summary Update a role's grants
// @Description Toggles permissions for a role; superrole grants cannot be edited
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body identity.UpdateRoleGrantsRequest true "Grant toggles"
// @Success 200 {object} dto.Response{data=identity.RoleGrantsResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Security BearerAuth
// @Router /roles/{id}/grants [put]
func (h *PermissionHandler) UpdateRoleGrants(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	roleID, ok := h.pathID(c, "id", "role ID")
	if !ok {
		return
	}

	var req identityapp.UpdateRoleGrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.permissionService.UpdateRoleGrants(c.Request.Context(), principal, roleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
