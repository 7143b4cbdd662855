package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/interfaces/http/middleware"
)

// AuthHandler serves login, token refresh, logout and profile endpoints.
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary Authenticate a user
// @Description Validates tenant code, username and password and issues a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body identity.LoginRequest true "Login credentials"
// @Success 200 {object} dto.Response{data=identity.LoginResponse}
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Refresh godoc
// @Summary Refresh an access token
// @Description Exchanges a valid refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body identity.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.Response{data=identity.RefreshTokenResponse}
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Logout godoc
// @Summary Log out the current user
// @Description Revokes the presented access token and, when supplied, the refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body identity.LogoutRequest false "Optional refresh token to revoke"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	// Body is optional; a logout without a refresh token only revokes the
	// access token.
	var req identityapp.LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleValidationError(c, err)
			return
		}
	}

	input := identityapp.LogoutInput{
		AccessTokenJTI: claims.ID,
		AccessTokenTTL: claims.GetRemainingTTL(),
		RefreshToken:   req.RefreshToken,
	}

	if err := h.authService.Logout(c.Request.Context(), claims.Username, input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}

// Me godoc
// @Summary Current user profile
// @Description Returns the authenticated user with their effective permissions
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=identity.CurrentUserResponse}
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.authService.GetCurrentUser(c.Request.Context(), principal.TenantID, principal.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangePassword godoc
// @Summary Change own password
// @Description Verifies the old password and replaces it with the new one
// @Tags auth
// @Accept json
// @Produce json
// @Param request body identity.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), principal.TenantID, principal.UserID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed"})
}
