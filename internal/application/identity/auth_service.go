package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig holds the lockout policy for failed logins
type AuthServiceConfig struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// DefaultAuthServiceConfig returns the default lockout policy
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles login, token refresh, logout and the authenticated
// profile. Login failures answer uniformly: an unknown tenant, an unknown
// username and a wrong password all return the same INVALID_CREDENTIALS
// error, so the endpoint cannot be used to probe for accounts.
type AuthService struct {
	tenantRepo  identity.TenantRepository
	userRepo    identity.UserRepository
	roleRepo    identity.RoleRepository
	grantSource authz.GrantSource
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	config      AuthServiceConfig
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService. The blacklist may be nil, in
// which case logout is a client-side affair and refresh skips the
// revocation checks.
func NewAuthService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	grantSource authz.GrantSource,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		grantSource: grantSource,
		jwtService:  jwtService,
		blacklist:   blacklist,
		config:      config,
		logger:      logger,
	}
}

// Login authenticates a user within a tenant and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResponse, error) {
	tenant, err := s.tenantRepo.FindByCode(ctx, req.TenantCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown tenant",
				zap.String("tenant_code", req.TenantCode),
				zap.String("ip", clientIP))
			return nil, invalidCredentialsError()
		}
		return nil, err
	}
	if !tenant.IsActive {
		s.logger.Warn("Login attempt for deactivated tenant",
			zap.String("tenant_code", tenant.Code),
			zap.String("ip", clientIP))
		return nil, shared.NewDomainError("TENANT_DISABLED", "This organisation's access has been disabled")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	user, err := s.userRepo.FindByUsername(ctx, tenant.ID, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown user",
				zap.String("tenant_code", tenant.Code),
				zap.String("username", username),
				zap.String("ip", clientIP))
			return nil, invalidCredentialsError()
		}
		return nil, err
	}

	if user.IsLocked() {
		s.logger.Warn("Login attempt on locked account",
			zap.String("username", user.Username),
			zap.String("ip", clientIP))
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
	}
	if user.Status == identity.UserStatusDeactivated {
		s.logger.Warn("Login attempt on deactivated account",
			zap.String("username", user.Username),
			zap.String("ip", clientIP))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if saveErr := s.userRepo.Save(ctx, user); saveErr != nil {
			s.logger.Error("Failed to record login failure",
				zap.String("username", user.Username),
				zap.Error(saveErr))
		}
		if locked {
			s.logger.Warn("Account locked after repeated failures",
				zap.String("username", user.Username),
				zap.Int("attempts", user.FailedAttempts),
				zap.String("ip", clientIP))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		return nil, invalidCredentialsError()
	}

	// An expired lock clears on the first successful login after it.
	if user.Status == identity.UserStatusLocked {
		if err := user.Unlock(); err != nil {
			return nil, err
		}
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Username: user.Username,
		RoleCode: user.RoleCode,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair",
			zap.String("username", user.Username),
			zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to generate tokens")
	}

	user.RecordLoginSuccess(clientIP)
	if saveErr := s.userRepo.Save(ctx, user); saveErr != nil {
		// The login already succeeded; a failed bookkeeping write must not undo it.
		s.logger.Error("Failed to record login success",
			zap.String("username", user.Username),
			zap.Error(saveErr))
	}

	s.logger.Info("User logged in",
		zap.String("tenant_code", tenant.Code),
		zap.String("username", user.Username),
		zap.String("role", user.RoleCode))

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  ToUserInfo(user),
	}, nil
}

// RefreshToken rotates a token pair. The user record is re-read so the new
// access token carries the current role, and revoked or invalidated
// refresh tokens are rejected.
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*RefreshTokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		revoked, berr := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if berr != nil {
			return nil, berr
		}
		if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}
		invalidated, berr := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if berr != nil {
			return nil, berr
		}
		if invalidated {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}
	}

	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return nil, mapTokenError(auth.ErrInvalidClaims)
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, mapTokenError(auth.ErrInvalidClaims)
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
		return nil, err
	}
	if user.IsLocked() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Username, user.RoleCode)
	if err != nil {
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token pair refreshed", zap.String("username", user.Username))

	return &RefreshTokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}, nil
}

// Logout revokes the session's tokens. The access token's JTI rides the
// blacklist for its remaining lifetime; the refresh token, when the client
// supplies it, is revoked the same way. Without a blacklist the tokens
// simply age out.
func (s *AuthService) Logout(ctx context.Context, username string, input LogoutInput) error {
	if s.blacklist == nil {
		return nil
	}

	if input.AccessTokenJTI != "" && input.AccessTokenTTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.AccessTokenJTI, input.AccessTokenTTL); err != nil {
			return err
		}
	}

	if input.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		// An invalid or expired refresh token needs no revocation.
		if err == nil && claims.ID != "" {
			if ttl := claims.GetRemainingTTL(); ttl > 0 {
				if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
					return err
				}
			}
		}
	}

	s.logger.Info("User logged out", zap.String("username", username))
	return nil
}

// GetCurrentUser returns the authenticated user's profile and the
// permission codes their role may exercise. The flat code list is what the
// UI consumes to show and hide controls.
func (s *AuthService) GetCurrentUser(ctx context.Context, tenantID, userID uuid.UUID) (*CurrentUserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	permissions, err := s.effectivePermissions(ctx, user.RoleCode)
	if err != nil {
		return nil, err
	}

	return &CurrentUserResponse{
		User:        ToUserInfo(user),
		Permissions: permissions,
	}, nil
}

// ChangePassword verifies the current password and sets the new one. Every
// outstanding token for the user is invalidated so a stolen pair cannot
// outlive the change.
func (s *AuthService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if s.blacklist != nil {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), ttl); err != nil {
			s.logger.Error("Failed to invalidate outstanding tokens after password change",
				zap.String("username", user.Username),
				zap.Error(err))
		}
	}

	s.logger.Info("Password changed", zap.String("username", user.Username))
	return nil
}

// effectivePermissions resolves the codes the role may exercise, in
// catalog display order. Superroles report the whole catalog; an unknown
// role reports nothing.
func (s *AuthService) effectivePermissions(ctx context.Context, roleCode string) ([]string, error) {
	role, err := s.roleRepo.FindByCode(ctx, roleCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	catalog := identity.PermissionCatalog()
	codes := make([]string, 0, len(catalog))

	if role.IsSuperrole {
		for _, entry := range catalog {
			codes = append(codes, entry.Code)
		}
		return codes, nil
	}

	grants, err := s.grantSource.GrantsForRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	for _, entry := range catalog {
		if grants[entry.Code] {
			codes = append(codes, entry.Code)
		}
	}
	return codes, nil
}

func invalidCredentialsError() error {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
}

// mapTokenError converts token library failures into domain errors the
// HTTP layer translates to 401 responses
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingTenantID),
		errors.Is(err, auth.ErrMissingUserID):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to process token")
	}
}
