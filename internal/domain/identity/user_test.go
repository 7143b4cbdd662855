package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Test Helpers
// ============================================

func createTestUser(t *testing.T) *User {
	t.Helper()

	user, err := NewUser(uuid.New(), "ramesh.k", "ledger2026", RoleCodeSalesman)
	require.NoError(t, err)
	require.NotNil(t, user)

	return user
}

// ============================================
// User Creation Tests
// ============================================

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(tenantID, "Ramesh.K", "ledger2026", "salesman")

		require.NoError(t, err)
		assert.Equal(t, "ramesh.k", user.Username)
		assert.Equal(t, "SALESMAN", user.RoleCode)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Equal(t, tenantID, user.TenantID)
		assert.NotEqual(t, "ledger2026", user.PasswordHash)
		assert.True(t, user.VerifyPassword("ledger2026"))
		assert.False(t, user.VerifyPassword("wrong2026"))
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser(tenantID, "ab", "ledger2026", RoleCodeSalesman)
		assert.Error(t, err)
	})

	t.Run("rejects username with invalid characters", func(t *testing.T) {
		_, err := NewUser(tenantID, "ramesh k", "ledger2026", RoleCodeSalesman)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "ramesh.k", "led26", RoleCodeSalesman)
		assert.Error(t, err)
	})

	t.Run("rejects password without numbers", func(t *testing.T) {
		_, err := NewUser(tenantID, "ramesh.k", "ledgerledger", RoleCodeSalesman)
		assert.Error(t, err)
	})

	t.Run("rejects password without letters", func(t *testing.T) {
		_, err := NewUser(tenantID, "ramesh.k", "20262026", RoleCodeSalesman)
		assert.Error(t, err)
	})

	t.Run("rejects malformed role code", func(t *testing.T) {
		_, err := NewUser(tenantID, "ramesh.k", "ledger2026", "sales man")
		assert.Error(t, err)
	})

	t.Run("emits created event", func(t *testing.T) {
		user := createTestUser(t)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserCreated, events[0].EventType())
	})
}

// ============================================
// Profile Tests
// ============================================

func TestUserSetEmail(t *testing.T) {
	user := createTestUser(t)

	t.Run("accepts and lowercases valid email", func(t *testing.T) {
		err := user.SetEmail("Ramesh@Skanda.example")
		require.NoError(t, err)
		assert.Equal(t, "ramesh@skanda.example", user.Email)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		assert.Error(t, user.SetEmail("not-an-email"))
	})

	t.Run("clearing is allowed", func(t *testing.T) {
		require.NoError(t, user.SetEmail(""))
		assert.Empty(t, user.Email)
	})
}

func TestUserDisplayName(t *testing.T) {
	user := createTestUser(t)

	require.NoError(t, user.SetDisplayName("Ramesh Kumar"))
	assert.Equal(t, "Ramesh Kumar", user.GetDisplayNameOrUsername())

	require.NoError(t, user.SetDisplayName(""))
	assert.Equal(t, "ramesh.k", user.GetDisplayNameOrUsername())
}

func TestUserChangeRole(t *testing.T) {
	user := createTestUser(t)

	t.Run("moves user to another role", func(t *testing.T) {
		err := user.ChangeRole(RoleCodeOrganiser)

		require.NoError(t, err)
		assert.Equal(t, RoleCodeOrganiser, user.RoleCode)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		versionBefore := user.GetVersion()
		require.NoError(t, user.ChangeRole(RoleCodeOrganiser))
		assert.Equal(t, versionBefore, user.GetVersion())
	})

	t.Run("records role change event", func(t *testing.T) {
		fresh := createTestUser(t)
		fresh.ClearDomainEvents()

		require.NoError(t, fresh.ChangeRole(RoleCodeDelivery))

		events := fresh.GetDomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(*UserRoleChangedEvent)
		require.True(t, ok)
		assert.Equal(t, RoleCodeSalesman, changed.OldRole)
		assert.Equal(t, RoleCodeDelivery, changed.NewRole)
	})
}

// ============================================
// Password Tests
// ============================================

func TestUserChangePassword(t *testing.T) {
	user := createTestUser(t)

	t.Run("requires the current password", func(t *testing.T) {
		err := user.ChangePassword("wrong2026", "newpass2026")
		assert.Error(t, err)
		assert.True(t, user.VerifyPassword("ledger2026"))
	})

	t.Run("changes with the correct current password", func(t *testing.T) {
		err := user.ChangePassword("ledger2026", "newpass2026")

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newpass2026"))
		assert.False(t, user.VerifyPassword("ledger2026"))
	})

	t.Run("new password must meet the rules", func(t *testing.T) {
		assert.Error(t, user.ChangePassword("newpass2026", "short1"))
	})
}

func TestUserSetPassword(t *testing.T) {
	user := createTestUser(t)

	err := user.SetPassword("reset2026ok")

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("reset2026ok"))
}

// ============================================
// Status and Lockout Tests
// ============================================

func TestUserStatusTransitions(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		user := createTestUser(t)

		require.NoError(t, user.Deactivate())
		assert.Equal(t, UserStatusDeactivated, user.Status)
		assert.False(t, user.CanLogin())

		require.NoError(t, user.Activate())
		assert.Equal(t, UserStatusActive, user.Status)
		assert.True(t, user.CanLogin())
	})

	t.Run("double deactivate is rejected", func(t *testing.T) {
		user := createTestUser(t)
		require.NoError(t, user.Deactivate())
		assert.Error(t, user.Deactivate())
	})

	t.Run("cannot lock a deactivated user", func(t *testing.T) {
		user := createTestUser(t)
		require.NoError(t, user.Deactivate())
		assert.Error(t, user.Lock(time.Hour))
	})

	t.Run("unlock requires a locked user", func(t *testing.T) {
		user := createTestUser(t)
		assert.Error(t, user.Unlock())
	})
}

func TestUserLockout(t *testing.T) {
	t.Run("locks after max failed attempts", func(t *testing.T) {
		user := createTestUser(t)

		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.CanLogin())

		locked := user.RecordLoginFailure(3, time.Hour)

		assert.True(t, locked)
		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
		assert.NotNil(t, user.LockedUntil)
	})

	t.Run("expired lock no longer blocks login", func(t *testing.T) {
		user := createTestUser(t)
		user.RecordLoginFailure(1, -time.Minute)

		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("successful login resets failure count", func(t *testing.T) {
		user := createTestUser(t)
		user.RecordLoginFailure(5, time.Hour)
		user.RecordLoginFailure(5, time.Hour)

		user.RecordLoginSuccess("10.0.0.5")

		assert.Equal(t, 0, user.FailedAttempts)
		assert.Equal(t, "10.0.0.5", user.LastLoginIP)
		require.NotNil(t, user.LastLoginAt)
	})

	t.Run("unlock clears the lock", func(t *testing.T) {
		user := createTestUser(t)
		user.RecordLoginFailure(1, time.Hour)
		require.True(t, user.IsLocked())

		require.NoError(t, user.Unlock())

		assert.True(t, user.CanLogin())
		assert.Equal(t, 0, user.FailedAttempts)
		assert.Nil(t, user.LockedUntil)
	})
}
