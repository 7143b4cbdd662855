package identity

import (
	"context"
	"testing"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*UserService, *MockUserRepository, *MockRoleRepository) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	return NewUserService(userRepo, roleRepo), userRepo, roleRepo
}

func adminStatuses() []identity.UserStatus {
	return []identity.UserStatus{identity.UserStatusActive, identity.UserStatusLocked}
}

// =============================================================================
// Create
// =============================================================================

func TestUserService_Create_Success(t *testing.T) {
	service, userRepo, roleRepo := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	role := newTestRole(t, identity.RoleCodeSalesman)

	userRepo.On("ExistsByUsername", ctx, tenantID, "priya.s").Return(false, nil)
	roleRepo.On("FindByCode", ctx, identity.RoleCodeSalesman).Return(role, nil)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	response, err := service.Create(ctx, actor, CreateUserRequest{
		Username:    "Priya.S",
		Password:    testPassword,
		RoleCode:    "salesman",
		DisplayName: "Priya Subramanian",
		Email:       "Priya@skanda.example",
	})

	require.NoError(t, err)
	assert.Equal(t, "priya.s", response.Username)
	assert.Equal(t, identity.RoleCodeSalesman, response.RoleCode)
	assert.Equal(t, "Priya Subramanian", response.DisplayName)
	assert.Equal(t, "priya@skanda.example", response.Email)
	assert.Equal(t, string(identity.UserStatusActive), response.Status)
	assert.Equal(t, tenantID, response.TenantID)
	userRepo.AssertExpectations(t)
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	service, userRepo, roleRepo := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)

	userRepo.On("ExistsByUsername", ctx, tenantID, "priya.s").Return(true, nil)

	_, err := service.Create(ctx, actor, CreateUserRequest{
		Username: "priya.s",
		Password: testPassword,
		RoleCode: identity.RoleCodeSalesman,
	})

	assertDomainErrorCode(t, err, shared.CodeDuplicateKey)
	roleRepo.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	service, userRepo, roleRepo := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)

	userRepo.On("ExistsByUsername", ctx, tenantID, "priya.s").Return(false, nil)
	roleRepo.On("FindByCode", ctx, "ACCOUNTANT").Return(nil, shared.ErrNotFound)

	_, err := service.Create(ctx, actor, CreateUserRequest{
		Username: "priya.s",
		Password: testPassword,
		RoleCode: "accountant",
	})

	assertDomainErrorCode(t, err, shared.CodeValidation)
	assert.Contains(t, err.Error(), "ACCOUNTANT")
}

func TestUserService_Create_WeakPassword(t *testing.T) {
	service, userRepo, roleRepo := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	role := newTestRole(t, identity.RoleCodeSalesman)

	userRepo.On("ExistsByUsername", ctx, tenantID, "priya.s").Return(false, nil)
	roleRepo.On("FindByCode", ctx, identity.RoleCodeSalesman).Return(role, nil)

	_, err := service.Create(ctx, actor, CreateUserRequest{
		Username: "priya.s",
		Password: "lettersonly",
		RoleCode: identity.RoleCodeSalesman,
	})

	assertDomainErrorCode(t, err, shared.CodeValidation)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// List
// =============================================================================

func TestUserService_List_AppliesDefaults(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	user := newTestUser(t, tenantID)

	userRepo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f identity.UserFilter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "username" && f.OrderDir == "asc"
	})).Return([]*identity.User{user}, nil)
	userRepo.On("CountForTenant", ctx, tenantID, mock.Anything).Return(int64(1), nil)

	users, total, err := service.List(ctx, tenantID, UserListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "ramesh.k", users[0].Username)
}

func TestUserService_List_NormalizesRoleFilter(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()

	userRepo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f identity.UserFilter) bool {
		return f.RoleCode != nil && *f.RoleCode == identity.RoleCodeDelivery &&
			f.Status != nil && *f.Status == identity.UserStatusActive
	})).Return([]*identity.User{}, nil)
	userRepo.On("CountForTenant", ctx, tenantID, mock.Anything).Return(int64(0), nil)

	_, _, err := service.List(ctx, tenantID, UserListFilter{RoleCode: "delivery", Status: "active"})

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

// =============================================================================
// Update
// =============================================================================

func TestUserService_Update_Profile(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	user := newTestUser(t, tenantID)

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	displayName := "Ramesh Kumar"
	email := "ramesh@skanda.example"
	notes := "Front desk, morning shift"
	response, err := service.Update(ctx, actor, user.ID, UpdateUserRequest{
		DisplayName: &displayName,
		Email:       &email,
		Notes:       &notes,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ramesh Kumar", response.DisplayName)
	assert.Equal(t, "ramesh@skanda.example", response.Email)
	assert.Equal(t, "Front desk, morning shift", response.Notes)
	assert.Equal(t, identity.RoleCodeSalesman, response.RoleCode)
}

func TestUserService_Update_RoleChange(t *testing.T) {
	service, userRepo, roleRepo := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	user := newTestUser(t, tenantID)
	role := newTestRole(t, identity.RoleCodeDelivery)

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	roleRepo.On("FindByCode", ctx, identity.RoleCodeDelivery).Return(role, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	newRole := "delivery"
	response, err := service.Update(ctx, actor, user.ID, UpdateUserRequest{RoleCode: &newRole})

	require.NoError(t, err)
	assert.Equal(t, identity.RoleCodeDelivery, response.RoleCode)
	userRepo.AssertNotCalled(t, "CountByRoleForTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Update_LastAdminCannotLeaveRole(t *testing.T) {
	service, userRepo, roleRepo := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	admin, err := identity.NewUser(tenantID, "meera.admin", testPassword, identity.RoleCodeAdmin)
	require.NoError(t, err)
	role := newTestRole(t, identity.RoleCodeSalesman)

	userRepo.On("FindByIDForTenant", ctx, tenantID, admin.ID).Return(admin, nil)
	roleRepo.On("FindByCode", ctx, identity.RoleCodeSalesman).Return(role, nil)
	userRepo.On("CountByRoleForTenant", ctx, tenantID, identity.RoleCodeAdmin, adminStatuses()).Return(int64(1), nil)

	newRole := identity.RoleCodeSalesman
	_, err = service.Update(ctx, actor, admin.ID, UpdateUserRequest{RoleCode: &newRole})

	assertDomainErrorCode(t, err, shared.CodeInvalidState)
	assert.Equal(t, identity.RoleCodeAdmin, admin.RoleCode)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Update_AdminRoleChangeWithAnotherAdmin(t *testing.T) {
	service, userRepo, roleRepo := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	admin, err := identity.NewUser(tenantID, "meera.admin", testPassword, identity.RoleCodeAdmin)
	require.NoError(t, err)
	role := newTestRole(t, identity.RoleCodeSalesman)

	userRepo.On("FindByIDForTenant", ctx, tenantID, admin.ID).Return(admin, nil)
	roleRepo.On("FindByCode", ctx, identity.RoleCodeSalesman).Return(role, nil)
	userRepo.On("CountByRoleForTenant", ctx, tenantID, identity.RoleCodeAdmin, adminStatuses()).Return(int64(2), nil)
	userRepo.On("Save", ctx, admin).Return(nil)

	newRole := identity.RoleCodeSalesman
	response, err := service.Update(ctx, actor, admin.ID, UpdateUserRequest{RoleCode: &newRole})

	require.NoError(t, err)
	assert.Equal(t, identity.RoleCodeSalesman, response.RoleCode)
}

// =============================================================================
// Activate / Deactivate / Unlock
// =============================================================================

func TestUserService_Deactivate_Success(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	user := newTestUser(t, tenantID)

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	response, err := service.Deactivate(ctx, actor, user.ID)

	require.NoError(t, err)
	assert.Equal(t, string(identity.UserStatusDeactivated), response.Status)
	// A salesman's deactivation never consults the admin count.
	userRepo.AssertNotCalled(t, "CountByRoleForTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Deactivate_Self(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)

	_, err := service.Deactivate(ctx, actor, actor.UserID)

	assertDomainErrorCode(t, err, shared.CodeValidation)
	userRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Deactivate_LastAdmin(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	admin, err := identity.NewUser(tenantID, "meera.admin", testPassword, identity.RoleCodeAdmin)
	require.NoError(t, err)

	userRepo.On("FindByIDForTenant", ctx, tenantID, admin.ID).Return(admin, nil)
	userRepo.On("CountByRoleForTenant", ctx, tenantID, identity.RoleCodeAdmin, adminStatuses()).Return(int64(1), nil)

	_, err = service.Deactivate(ctx, actor, admin.ID)

	assertDomainErrorCode(t, err, shared.CodeInvalidState)
	assert.Equal(t, identity.UserStatusActive, admin.Status)
}

func TestUserService_Activate_Success(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	user := newTestUser(t, tenantID)
	require.NoError(t, user.Deactivate())

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	response, err := service.Activate(ctx, actor, user.ID)

	require.NoError(t, err)
	assert.Equal(t, string(identity.UserStatusActive), response.Status)
}

func TestUserService_Unlock_Success(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	user := newTestUser(t, tenantID)
	require.NoError(t, user.Lock(15*time.Minute))

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	response, err := service.Unlock(ctx, actor, user.ID)

	require.NoError(t, err)
	assert.Equal(t, string(identity.UserStatusActive), response.Status)
	assert.Equal(t, 0, response.FailedAttempts)
}

func TestUserService_Unlock_NotLocked(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	user := newTestUser(t, tenantID)

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)

	_, err := service.Unlock(ctx, actor, user.ID)

	assertDomainErrorCode(t, err, shared.CodeValidation)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// ResetPassword
// =============================================================================

func TestUserService_ResetPassword_Success(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	user := newTestUser(t, tenantID)

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	err := service.ResetPassword(ctx, actor, user.ID, ResetPasswordRequest{NewPassword: "Fresh2027pass"})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("Fresh2027pass"))
	assert.False(t, user.VerifyPassword(testPassword))
}

func TestUserService_ResetPassword_InvalidPassword(t *testing.T) {
	service, userRepo, _ := newTestUserService()
	ctx := context.Background()
	tenantID := uuid.New()
	actor := testActor(tenantID)
	user := newTestUser(t, tenantID)

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)

	err := service.ResetPassword(ctx, actor, user.ID, ResetPasswordRequest{NewPassword: "short"})

	assertDomainErrorCode(t, err, shared.CodeValidation)
	assert.True(t, user.VerifyPassword(testPassword))
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
