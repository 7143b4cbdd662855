package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService handles user administration within a tenant. These are
// housekeeping operations for the administration surface; the audit trail
// tracks ledger actions and stays out of them.
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// Create creates a new user in the actor's tenant
func (s *UserService) Create(ctx context.Context, actor authz.Principal, req CreateUserRequest) (*UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	exists, err := s.userRepo.ExistsByUsername(ctx, actor.TenantID, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Username %s is already taken", username))
	}

	role, err := s.findRole(ctx, req.RoleCode)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(actor.TenantID, req.Username, req.Password, role.Code)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		user.SetNotes(req.Notes)
	}
	user.SetCreatedBy(actor.UserID)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) ([]UserResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "username"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := identity.UserFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
			Filters:  make(map[string]any),
		},
	}
	if filter.RoleCode != "" {
		roleCode := strings.ToUpper(strings.TrimSpace(filter.RoleCode))
		domainFilter.RoleCode = &roleCode
	}
	if filter.Status != "" {
		status := identity.UserStatus(filter.Status)
		domainFilter.Status = &status
	}

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Update updates a user's profile and role. Only non-nil fields change.
// Moving the tenant's last ADMIN off the role is refused.
func (s *UserService) Update(ctx context.Context, actor authz.Principal, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		user.SetNotes(*req.Notes)
	}
	if req.RoleCode != nil {
		newCode := strings.ToUpper(strings.TrimSpace(*req.RoleCode))
		if newCode != user.RoleCode {
			role, err := s.findRole(ctx, newCode)
			if err != nil {
				return nil, err
			}
			if user.RoleCode == identity.RoleCodeAdmin {
				if err := s.ensureNotLastAdmin(ctx, user); err != nil {
					return nil, err
				}
			}
			if err := user.ChangeRole(role.Code); err != nil {
				return nil, err
			}
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Activate re-enables a deactivated or locked user
func (s *UserService) Activate(ctx context.Context, actor authz.Principal, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Deactivate disables login for a user. Self-deactivation is refused, and
// so is deactivating the tenant's last ADMIN; a tenant whose last ADMIN is
// gone has no one left who can undo it.
func (s *UserService) Deactivate(ctx context.Context, actor authz.Principal, id uuid.UUID) (*UserResponse, error) {
	if id == actor.UserID {
		return nil, shared.NewValidationError("You cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotLastAdmin(ctx, user); err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Unlock lifts a failed-login lock before it expires on its own
func (s *UserService) Unlock(ctx context.Context, actor authz.Principal, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := user.Unlock(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ResetPassword sets a new password without the current one. This is the
// admin surface; users change their own password through the auth service.
func (s *UserService) ResetPassword(ctx context.Context, actor authz.Principal, id uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// findRole resolves a role code against the catalog
func (s *UserService) findRole(ctx context.Context, roleCode string) (*identity.Role, error) {
	code := strings.ToUpper(strings.TrimSpace(roleCode))
	role, err := s.roleRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError(fmt.Sprintf("Unknown role %s", code))
		}
		return nil, err
	}
	return role, nil
}

// ensureNotLastAdmin refuses operations that would leave the tenant
// without an ADMIN who can still log in. Locked admins count towards the
// total; the lock expires or can be lifted.
func (s *UserService) ensureNotLastAdmin(ctx context.Context, user *identity.User) error {
	if user.RoleCode != identity.RoleCodeAdmin || user.Status == identity.UserStatusDeactivated {
		return nil
	}
	count, err := s.userRepo.CountByRoleForTenant(ctx, user.TenantID, identity.RoleCodeAdmin,
		identity.UserStatusActive, identity.UserStatusLocked)
	if err != nil {
		return err
	}
	if count <= 1 {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot remove the tenant's last ADMIN")
	}
	return nil
}
