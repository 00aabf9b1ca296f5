package repository

import (
	"context"
	"testing"

	"dahcoins/domain/entities"
	"dahcoins/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_Append(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	walletRepo := NewWalletRepository(testDB.DB)
	repo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	_, err := walletRepo.GetForUpdate(ctx, "alice")
	require.NoError(t, err)

	t.Run("fills id and timestamp", func(t *testing.T) {
		entry := testutil.CreateTestLedgerEntry("alice", 8, 8)
		require.NoError(t, repo.Append(ctx, entry))
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("nil metadata", func(t *testing.T) {
		entry := testutil.CreateTestLedgerEntry("alice", 1, 0)
		entry.TransactionMetadata = nil
		require.NoError(t, repo.Append(ctx, entry))

		entries, err := repo.GetByUser(ctx, "alice", 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entry.ID, entries[0].ID)
		assert.Nil(t, entries[0].TransactionMetadata)
	})

	t.Run("metadata and related entity round trip", func(t *testing.T) {
		entry := testutil.CreateTestLedgerEntry("alice", -5, 0)
		entry.TransactionType = entities.TransactionTypeStakeLock
		entry.Event = "stake_created"
		entry.TransactionMetadata = map[string]any{
			"duration_days": 7,
			"multiplier":    1.25,
		}
		entry.WithRelated(42, entities.RelatedTypeStake)
		require.NoError(t, repo.Append(ctx, entry))

		entries, err := repo.GetByUser(ctx, "alice", 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		got := entries[0]
		assert.Equal(t, entities.TransactionTypeStakeLock, got.TransactionType)
		assert.Equal(t, float64(7), got.TransactionMetadata["duration_days"])
		assert.Equal(t, 1.25, got.TransactionMetadata["multiplier"])
		require.NotNil(t, got.RelatedID)
		assert.Equal(t, int64(42), *got.RelatedID)
		require.NotNil(t, got.RelatedType)
		assert.Equal(t, entities.RelatedTypeStake, *got.RelatedType)
	})
}

func TestLedgerRepository_Queries(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	walletRepo := NewWalletRepository(testDB.DB)
	repo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	for _, username := range []string{"alice", "bob"} {
		_, err := walletRepo.GetForUpdate(ctx, username)
		require.NoError(t, err)
	}

	deltas := [][2]int64{{10, 10}, {5, 0}, {-7, 0}, {3, 3}}
	for _, d := range deltas {
		_, err := walletRepo.ApplyDelta(ctx, "alice", d[0], d[1])
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, testutil.CreateTestLedgerEntry("alice", d[0], d[1])))
	}
	require.NoError(t, repo.Append(ctx, testutil.CreateTestLedgerEntry("bob", 4, 0)))

	t.Run("GetByUser is newest first and isolated", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, "alice", 10)
		require.NoError(t, err)
		require.Len(t, entries, 4)
		assert.Equal(t, int64(3), entries[0].AvailableDelta)
		assert.Equal(t, int64(10), entries[3].AvailableDelta)
		for _, e := range entries {
			assert.Equal(t, "alice", e.Username)
		}
	})

	t.Run("GetByUser respects limit", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, "alice", 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("GetRecent spans users", func(t *testing.T) {
		entries, err := repo.GetRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		assert.Equal(t, "bob", entries[0].Username)
	})

	t.Run("sum of deltas matches wallet total", func(t *testing.T) {
		sum, err := repo.SumDeltas(ctx, "alice")
		require.NoError(t, err)

		wallet, err := walletRepo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, wallet.Total(), sum)
		assert.Equal(t, int64(24), sum)
	})

	t.Run("sum for unknown user is zero", func(t *testing.T) {
		sum, err := repo.SumDeltas(ctx, "nobody")
		require.NoError(t, err)
		assert.Zero(t, sum)
	})
}
