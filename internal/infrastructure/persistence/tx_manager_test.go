package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTxManager_Do(t *testing.T) {
	db := setupTenantTestDB(t)
	manager := NewGormTxManager(db)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		tenant, err := identity.NewTenant("alpha", "Alpha Works")
		require.NoError(t, err)

		err = manager.Do(ctx, func(txCtx context.Context) error {
			return repo.Save(txCtx, tenant)
		})
		require.NoError(t, err)

		found, err := repo.FindByCode(ctx, "alpha")
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, found.ID)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		tenant, err := identity.NewTenant("beta", "Beta Works")
		require.NoError(t, err)

		boom := errors.New("boom")
		err = manager.Do(ctx, func(txCtx context.Context) error {
			if err := repo.Save(txCtx, tenant); err != nil {
				return err
			}
			return boom
		})
		assert.Equal(t, boom, err)

		_, err = repo.FindByCode(ctx, "beta")
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("reads inside the transaction see its writes", func(t *testing.T) {
		tenant, err := identity.NewTenant("gamma", "Gamma Works")
		require.NoError(t, err)

		err = manager.Do(ctx, func(txCtx context.Context) error {
			if err := repo.Save(txCtx, tenant); err != nil {
				return err
			}
			found, err := repo.FindByCode(txCtx, "gamma")
			if err != nil {
				return err
			}
			assert.Equal(t, tenant.ID, found.ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		outer, err := identity.NewTenant("delta", "Delta Works")
		require.NoError(t, err)
		inner, err := identity.NewTenant("epsilon", "Epsilon Works")
		require.NoError(t, err)

		boom := errors.New("boom")
		err = manager.Do(ctx, func(txCtx context.Context) error {
			if err := repo.Save(txCtx, outer); err != nil {
				return err
			}
			if err := manager.Do(txCtx, func(nestedCtx context.Context) error {
				return repo.Save(nestedCtx, inner)
			}); err != nil {
				return err
			}
			return boom
		})
		assert.Equal(t, boom, err)

		// The outer rollback must take the nested write down with it
		_, err = repo.FindByCode(ctx, "delta")
		assert.Equal(t, shared.ErrNotFound, err)
		_, err = repo.FindByCode(ctx, "epsilon")
		assert.Equal(t, shared.ErrNotFound, err)
	})
}
