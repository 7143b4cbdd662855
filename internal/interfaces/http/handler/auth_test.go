package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/auth"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/config"
	"github.com/Codesaur1618/Skandaenterpriese/internal/interfaces/http/middleware"
)

// MockTenantRepository implements identity.TenantRepository for testing
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter identity.UserFilter) ([]*identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error) {
	args := m.Called(ctx, tenantID, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountByRoleForTenant(ctx context.Context, tenantID uuid.UUID, roleCode string, statuses ...identity.UserStatus) (int64, error) {
	args := m.Called(ctx, tenantID, roleCode, statuses)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoleRepository implements identity.RoleRepository for testing
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindAll(ctx context.Context) ([]*identity.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// MockGrantSource implements authz.GrantSource for testing
type MockGrantSource struct {
	mock.Mock
}

func (m *MockGrantSource) GrantsForRole(ctx context.Context, roleID uuid.UUID) (identity.GrantSet, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(identity.GrantSet), args.Error(1)
}

const handlerTestPassword = "Ledger2026pass"

func handlerTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-32-characters!!",
		RefreshSecret:          "test-refresh-secret-32-characters!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "skanda-ledger-test",
		MaxRefreshCount:        10,
	})
}

type authHandlerMocks struct {
	tenantRepo  *MockTenantRepository
	userRepo    *MockUserRepository
	roleRepo    *MockRoleRepository
	grantSource *MockGrantSource
	jwtService  *auth.JWTService
	blacklist   *auth.InMemoryTokenBlacklist
}

func setupAuthTestRouter() (*gin.Engine, *authHandlerMocks, *AuthHandler) {
	gin.SetMode(gin.TestMode)

	m := &authHandlerMocks{
		tenantRepo:  new(MockTenantRepository),
		userRepo:    new(MockUserRepository),
		roleRepo:    new(MockRoleRepository),
		grantSource: new(MockGrantSource),
		jwtService:  handlerTestJWTService(),
		blacklist:   auth.NewInMemoryTokenBlacklist(),
	}

	service := identityapp.NewAuthService(
		m.tenantRepo, m.userRepo, m.roleRepo, m.grantSource,
		m.jwtService, m.blacklist, identityapp.DefaultAuthServiceConfig(), nil,
	)
	handler := NewAuthHandler(service)

	return gin.New(), m, handler
}

func newHandlerTestTenant(t *testing.T) *identity.Tenant {
	t.Helper()
	tenant, err := identity.NewTenant("skanda", "Skanda Enterprises")
	require.NoError(t, err)
	return tenant
}

func newHandlerTestUser(t *testing.T, tenantID uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser(tenantID, "ramesh.k", handlerTestPassword, identity.RoleCodeSalesman)
	require.NoError(t, err)
	return user
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("should issue token pair for valid credentials", func(t *testing.T) {
		router, m, handler := setupAuthTestRouter()
		router.POST("/auth/login", handler.Login)

		tenant := newHandlerTestTenant(t)
		user := newHandlerTestUser(t, tenant.ID)

		m.tenantRepo.On("FindByCode", mock.Anything, "skanda").Return(tenant, nil)
		m.userRepo.On("FindByUsername", mock.Anything, tenant.ID, "ramesh.k").Return(user, nil)
		m.userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		body, _ := json.Marshal(identityapp.LoginRequest{
			TenantCode: "skanda",
			Username:   "ramesh.k",
			Password:   handlerTestPassword,
		})

		req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, true, response["success"])

		data := response["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])
		userInfo := data["user"].(map[string]interface{})
		assert.Equal(t, "ramesh.k", userInfo["username"])
		assert.Equal(t, identity.RoleCodeSalesman, userInfo["role"])

		m.tenantRepo.AssertExpectations(t)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("should answer 401 for unknown tenant", func(t *testing.T) {
		router, m, handler := setupAuthTestRouter()
		router.POST("/auth/login", handler.Login)

		m.tenantRepo.On("FindByCode", mock.Anything, "ghost").
			Return(nil, shared.ErrNotFound)

		body, _ := json.Marshal(identityapp.LoginRequest{
			TenantCode: "ghost",
			Username:   "ramesh.k",
			Password:   handlerTestPassword,
		})

		req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, false, response["success"])
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_CREDENTIALS", errInfo["code"])
	})

	t.Run("should answer 403 for locked account", func(t *testing.T) {
		router, m, handler := setupAuthTestRouter()
		router.POST("/auth/login", handler.Login)

		tenant := newHandlerTestTenant(t)
		user := newHandlerTestUser(t, tenant.ID)
		lockedUntil := time.Now().Add(10 * time.Minute)
		user.Status = identity.UserStatusLocked
		user.LockedUntil = &lockedUntil

		m.tenantRepo.On("FindByCode", mock.Anything, "skanda").Return(tenant, nil)
		m.userRepo.On("FindByUsername", mock.Anything, tenant.ID, "ramesh.k").Return(user, nil)

		body, _ := json.Marshal(identityapp.LoginRequest{
			TenantCode: "skanda",
			Username:   "ramesh.k",
			Password:   handlerTestPassword,
		})

		req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "ACCOUNT_LOCKED", errInfo["code"])
	})

	t.Run("should answer 400 with field details for missing password", func(t *testing.T) {
		router, _, handler := setupAuthTestRouter()
		router.POST("/auth/login", handler.Login)

		body := []byte(`{"tenant_code":"skanda","username":"ramesh.k"}`)
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errInfo["code"])
		details := errInfo["details"].([]interface{})
		require.Len(t, details, 1)
		field := details[0].(map[string]interface{})
		assert.Equal(t, "password", field["field"])
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("should rotate a valid refresh token", func(t *testing.T) {
		router, m, handler := setupAuthTestRouter()
		router.POST("/auth/refresh", handler.Refresh)

		tenant := newHandlerTestTenant(t)
		user := newHandlerTestUser(t, tenant.ID)

		pair, err := m.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			TenantID: user.TenantID,
			UserID:   user.ID,
			Username: user.Username,
			RoleCode: user.RoleCode,
		})
		require.NoError(t, err)

		m.userRepo.On("FindByIDForTenant", mock.Anything, user.TenantID, user.ID).Return(user, nil)

		body, _ := json.Marshal(identityapp.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
		req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, true, response["success"])
		data := response["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEqual(t, pair.RefreshToken, data["refresh_token"])
	})

	t.Run("should answer 401 for garbage token", func(t *testing.T) {
		router, _, handler := setupAuthTestRouter()
		router.POST("/auth/refresh", handler.Refresh)

		body, _ := json.Marshal(identityapp.RefreshTokenRequest{RefreshToken: "not-a-token"})
		req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "TOKEN_INVALID", errInfo["code"])
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("should blacklist the access token JTI", func(t *testing.T) {
		router, m, handler := setupAuthTestRouter()

		claims := &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "session-jti-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
			Username: "ramesh.k",
		}
		router.POST("/auth/logout", func(c *gin.Context) {
			c.Set(middleware.JWTClaimsKey, claims)
			handler.Logout(c)
		})

		req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		revoked, err := m.blacklist.IsBlacklisted(context.Background(), "session-jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("should answer 401 without claims", func(t *testing.T) {
		router, _, handler := setupAuthTestRouter()
		router.POST("/auth/logout", handler.Logout)

		req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("should return profile with effective permissions", func(t *testing.T) {
		router, m, handler := setupAuthTestRouter()

		tenant := newHandlerTestTenant(t)
		user := newHandlerTestUser(t, tenant.ID)
		role, err := identity.NewRole(identity.RoleCodeSalesman, "Salesman")
		require.NoError(t, err)

		router.GET("/auth/me", func(c *gin.Context) {
			setJWTContext(c, user.TenantID, user.ID, user.Username, user.RoleCode)
			handler.Me(c)
		})

		m.userRepo.On("FindByIDForTenant", mock.Anything, user.TenantID, user.ID).Return(user, nil)
		m.roleRepo.On("FindByCode", mock.Anything, identity.RoleCodeSalesman).Return(role, nil)
		m.grantSource.On("GrantsForRole", mock.Anything, role.ID).
			Return(identity.GrantSet{identity.PermViewBills: true, identity.PermCreateBill: true}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		permissions := data["permissions"].([]interface{})
		assert.Len(t, permissions, 2)
		assert.Contains(t, permissions, identity.PermViewBills)
	})

	t.Run("should answer 401 without JWT context", func(t *testing.T) {
		router, _, handler := setupAuthTestRouter()
		router.GET("/auth/me", handler.Me)

		req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("should change password and invalidate outstanding tokens", func(t *testing.T) {
		router, m, handler := setupAuthTestRouter()

		tenant := newHandlerTestTenant(t)
		user := newHandlerTestUser(t, tenant.ID)

		router.PUT("/auth/password", func(c *gin.Context) {
			setJWTContext(c, user.TenantID, user.ID, user.Username, user.RoleCode)
			handler.ChangePassword(c)
		})

		m.userRepo.On("FindByIDForTenant", mock.Anything, user.TenantID, user.ID).Return(user, nil)
		m.userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		body, _ := json.Marshal(identityapp.ChangePasswordRequest{
			OldPassword: handlerTestPassword,
			NewPassword: "Rotated2026pass",
		})
		req, _ := http.NewRequest(http.MethodPut, "/auth/password", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		// Tokens issued before the change must be dead.
		invalidated, err := m.blacklist.IsUserTokenInvalidated(context.Background(), user.ID.String(), time.Now().Add(-time.Minute))
		require.NoError(t, err)
		assert.True(t, invalidated)

		m.userRepo.AssertExpectations(t)
	})

	t.Run("should answer 400 for wrong old password", func(t *testing.T) {
		router, m, handler := setupAuthTestRouter()

		tenant := newHandlerTestTenant(t)
		user := newHandlerTestUser(t, tenant.ID)

		router.PUT("/auth/password", func(c *gin.Context) {
			setJWTContext(c, user.TenantID, user.ID, user.Username, user.RoleCode)
			handler.ChangePassword(c)
		})

		m.userRepo.On("FindByIDForTenant", mock.Anything, user.TenantID, user.ID).Return(user, nil)

		body, _ := json.Marshal(identityapp.ChangePasswordRequest{
			OldPassword: "Wrong2026pass",
			NewPassword: "Rotated2026pass",
		})
		req, _ := http.NewRequest(http.MethodPut, "/auth/password", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errInfo["code"])
	})
}
