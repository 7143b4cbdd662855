package identity

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginRequest carries the tenant slug and the credentials. The tenant is
// resolved from its code on every login; there is no default tenant.
type LoginRequest struct {
	TenantCode string `json:"tenant_code" binding:"required,min=2,max=50"`
	Username   string `json:"username" binding:"required,min=3,max=100"`
	Password   string `json:"password" binding:"required,min=8,max=128"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token so the whole pair can
// be revoked. The access token is taken from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutInput is assembled by the handler from the bearer claims and the
// request body
type LogoutInput struct {
	AccessTokenJTI string
	AccessTokenTTL time.Duration
	RefreshToken   string
}

// ChangePasswordRequest represents a password change by the user themselves
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UserInfo is the user block embedded in login and profile responses
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	RoleCode    string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse carries the token pair and the authenticated user
type LoginResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	TokenType             string    `json:"token_type"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenResponse carries the rotated token pair
type RefreshTokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	TokenType             string    `json:"token_type"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// CurrentUserResponse is the /auth/me payload: the profile plus the
// permission codes the user's role may exercise, in catalog order.
type CurrentUserResponse struct {
	User        UserInfo `json:"user"`
	Permissions []string `json:"permissions"`
}

// CreateUserRequest represents a request to create a user in the actor's
// tenant
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=100"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	RoleCode    string `json:"role" binding:"required,min=2,max=50"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Notes       string `json:"notes" binding:"max=1000"`
}

// UpdateUserRequest represents a request to update a user.
// Only non-nil fields are applied.
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=200"`
	Email       *string `json:"email" binding:"omitempty,max=200"`
	RoleCode    *string `json:"role" binding:"omitempty,min=2,max=50"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

// ResetPasswordRequest represents an admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name,omitempty"`
	Email          string     `json:"email,omitempty"`
	RoleCode       string     `json:"role"`
	Status         string     `json:"status"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP    string     `json:"last_login_ip,omitempty"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Version        int        `json:"version"`
}

// UserListFilter represents filter options for the user list
type UserListFilter struct {
	Search   string `form:"search"`
	RoleCode string `form:"role"`
	Status   string `form:"status" binding:"omitempty,oneof=active locked deactivated"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PermissionResponse is one permission catalog entry
type PermissionResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
}

// PermissionGroupResponse groups catalog entries by category, in the
// catalog's display order
type PermissionGroupResponse struct {
	Category    string               `json:"category"`
	Permissions []PermissionResponse `json:"permissions"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsSuperrole bool      `json:"is_superrole"`
	SortOrder   int       `json:"sort_order"`
}

// GrantResponse is one permission's granted flag for a role
type GrantResponse struct {
	PermissionCode string `json:"permission_code"`
	PermissionName string `json:"permission_name"`
	Category       string `json:"category"`
	Granted        bool   `json:"granted"`
}

// RoleGrantsResponse lists every catalog permission with its granted flag
// for one role. Superroles report every flag as granted.
type RoleGrantsResponse struct {
	Role   RoleResponse    `json:"role"`
	Grants []GrantResponse `json:"grants"`
}

// GrantUpdate toggles one permission for a role
type GrantUpdate struct {
	PermissionCode string `json:"permission_code" binding:"required"`
	Granted        bool   `json:"granted"`
}

// UpdateRoleGrantsRequest applies a set of grant toggles to a role
type UpdateRoleGrantsRequest struct {
	Grants []GrantUpdate `json:"grants" binding:"required,min=1,dive"`
}

// ToUserInfo converts a user domain object to the embedded info block
func ToUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		RoleCode:    user.RoleCode,
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
	}
}

// ToUserResponse converts a user domain object to a response DTO
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		TenantID:       user.TenantID,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		Email:          user.Email,
		RoleCode:       user.RoleCode,
		Status:         string(user.Status),
		LastLoginAt:    user.LastLoginAt,
		LastLoginIP:    user.LastLoginIP,
		FailedAttempts: user.FailedAttempts,
		LockedUntil:    user.LockedUntil,
		Notes:          user.Notes,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
		Version:        user.Version,
	}
}

// ToUserResponses converts a slice of users to response DTOs
func ToUserResponses(users []*identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(users[i])
	}
	return responses
}

// ToRoleResponse converts a role domain object to a response DTO
func ToRoleResponse(role *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Code:        role.Code,
		Name:        role.Name,
		Description: role.Description,
		IsSuperrole: role.IsSuperrole,
		SortOrder:   role.SortOrder,
	}
}
