package repository

import (
	"context"
	"testing"

	"dahcoins/domain/entities"
	"dahcoins/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing wallet returns nil", func(t *testing.T) {
		wallet, err := repo.Get(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})

	t.Run("GetForUpdate creates an empty wallet", func(t *testing.T) {
		wallet, err := repo.GetForUpdate(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", wallet.Username)
		assert.Zero(t, wallet.Available)
		assert.Zero(t, wallet.LockedForCollege)

		again, err := repo.GetForUpdate(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, wallet.CreatedAt, again.CreatedAt)
	})

	t.Run("ApplyDelta adds both balances", func(t *testing.T) {
		_, err := repo.GetForUpdate(ctx, "bob")
		require.NoError(t, err)

		wallet, err := repo.ApplyDelta(ctx, "bob", 8, 8)
		require.NoError(t, err)
		assert.Equal(t, int64(8), wallet.Available)
		assert.Equal(t, int64(8), wallet.LockedForCollege)

		wallet, err = repo.ApplyDelta(ctx, "bob", -3, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), wallet.Available)
	})

	t.Run("ApplyDelta refuses to go negative", func(t *testing.T) {
		_, err := repo.GetForUpdate(ctx, "carol")
		require.NoError(t, err)
		_, err = repo.ApplyDelta(ctx, "carol", 10, 0)
		require.NoError(t, err)

		_, err = repo.ApplyDelta(ctx, "carol", -11, 0)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

		_, err = repo.ApplyDelta(ctx, "carol", 0, -1)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

		wallet, err := repo.Get(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, int64(10), wallet.Available)
		assert.Zero(t, wallet.LockedForCollege)
	})

	t.Run("ApplyDelta on a missing wallet", func(t *testing.T) {
		_, err := repo.ApplyDelta(ctx, "ghost", 5, 0)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	})
}
