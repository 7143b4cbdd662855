package middleware

import (
	"errors"
	"net/http"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when permission is denied (optional)
	OnDenied func(c *gin.Context, permission string)
}

// RequirePermission creates middleware that lets a request through only
// when the gate grants the permission to the acting principal. Grants are
// resolved per request rather than baked into the token, so revoking a
// grant takes effect on the next call, not the next login.
func RequirePermission(gate *authz.Gate, permission string) gin.HandlerFunc {
	return RequirePermissionWithConfig(gate, permission, PermissionConfig{})
}

// RequirePermissionWithConfig creates permission middleware with custom config
func RequirePermissionWithConfig(gate *authz.Gate, permission string, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := CurrentPrincipal(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}

		if err := gate.Require(c.Request.Context(), principal, permission); err != nil {
			handlePermissionDenied(c, cfg, principal, permission, err)
			return
		}

		c.Next()
	}
}

// handlePermissionDenied answers a refused or failed gate check. Gate
// refusals map to 403; anything else means the grant lookup itself broke
// and the check fails closed with a 500.
func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, principal authz.Principal, permission string, err error) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Permission denied",
			zap.String("user_id", principal.UserID.String()),
			zap.String("role", principal.RoleCode),
			zap.String("permission", permission),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
	}

	if cfg.OnDenied != nil {
		cfg.OnDenied(c, permission)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.AbortWithStatusJSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponseWithRequestID(
			domainErr.Code, domainErr.Message, GetRequestID(c)))
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal, "Permission check failed", GetRequestID(c)))
}
