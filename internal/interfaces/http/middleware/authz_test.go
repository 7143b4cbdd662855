package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoleRepo struct {
	roles map[string]*identity.Role
}

func (s *stubRoleRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	for _, r := range s.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubRoleRepo) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	if r, ok := s.roles[code]; ok {
		return r, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubRoleRepo) FindAll(ctx context.Context) ([]*identity.Role, error) {
	out := make([]*identity.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubRoleRepo) Save(ctx context.Context, role *identity.Role) error { return nil }

type stubGrantSource struct {
	grants identity.GrantSet
	err    error
}

func (s *stubGrantSource) GrantsForRole(ctx context.Context, roleID uuid.UUID) (identity.GrantSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.grants, nil
}

func newAuthzTestGate(t *testing.T, grants identity.GrantSet, grantErr error) *authz.Gate {
	t.Helper()

	admin, err := identity.NewSuperrole(identity.RoleCodeAdmin, "Administrator")
	require.NoError(t, err)
	salesman, err := identity.NewRole(identity.RoleCodeSalesman, "Salesman")
	require.NoError(t, err)

	repo := &stubRoleRepo{roles: map[string]*identity.Role{
		identity.RoleCodeAdmin:    admin,
		identity.RoleCodeSalesman: salesman,
	}}
	return authz.NewGate(repo, &stubGrantSource{grants: grants, err: grantErr})
}

func setupAuthzTestRouter(gate *authz.Gate, permission, roleCode string, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if authenticated {
			c.Set(JWTTenantIDKey, uuid.New().String())
			c.Set(JWTUserIDKey, uuid.New().String())
			c.Set(JWTUsernameKey, "tester")
			c.Set(JWTRoleCodeKey, roleCode)
		}
		c.Next()
	})
	r.GET("/guarded", RequirePermission(gate, permission), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequirePermission(t *testing.T) {
	t.Run("should pass role holding the grant", func(t *testing.T) {
		gate := newAuthzTestGate(t, identity.GrantSet{identity.PermCreateBill: true}, nil)
		r := setupAuthzTestRouter(gate, identity.PermCreateBill, identity.RoleCodeSalesman, true)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should pass superrole without consulting grants", func(t *testing.T) {
		gate := newAuthzTestGate(t, identity.GrantSet{}, errors.New("grant source must not be called"))
		r := setupAuthzTestRouter(gate, identity.PermManagePermissions, identity.RoleCodeAdmin, true)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should deny role without the grant", func(t *testing.T) {
		gate := newAuthzTestGate(t, identity.GrantSet{identity.PermViewBills: true}, nil)
		r := setupAuthzTestRouter(gate, identity.PermCancelBill, identity.RoleCodeSalesman, true)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should deny explicitly revoked grant", func(t *testing.T) {
		gate := newAuthzTestGate(t, identity.GrantSet{identity.PermCancelBill: false}, nil)
		r := setupAuthzTestRouter(gate, identity.PermCancelBill, identity.RoleCodeSalesman, true)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should deny unknown role", func(t *testing.T) {
		gate := newAuthzTestGate(t, identity.GrantSet{}, nil)
		r := setupAuthzTestRouter(gate, identity.PermViewBills, "GHOST", true)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should answer 401 without authentication", func(t *testing.T) {
		gate := newAuthzTestGate(t, identity.GrantSet{}, nil)
		r := setupAuthzTestRouter(gate, identity.PermViewBills, "", false)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should fail closed when grant source errors", func(t *testing.T) {
		gate := newAuthzTestGate(t, nil, errors.New("store unavailable"))
		r := setupAuthzTestRouter(gate, identity.PermViewBills, identity.RoleCodeSalesman, true)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("should call custom denial handler when provided", func(t *testing.T) {
		gate := newAuthzTestGate(t, identity.GrantSet{}, nil)
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(JWTTenantIDKey, uuid.New().String())
			c.Set(JWTUserIDKey, uuid.New().String())
			c.Set(JWTRoleCodeKey, identity.RoleCodeSalesman)
			c.Next()
		})
		denied := ""
		cfg := PermissionConfig{OnDenied: func(c *gin.Context, permission string) {
			denied = permission
			c.AbortWithStatus(http.StatusTeapot)
		}}
		r.GET("/guarded", RequirePermissionWithConfig(gate, identity.PermDeleteVendor, cfg), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, identity.PermDeleteVendor, denied)
	})
}
