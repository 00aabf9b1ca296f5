package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRevenueRepository(testDB.DB)
	ctx := context.Background()

	t.Run("starts empty", func(t *testing.T) {
		total, err := repo.GetTotalRevenue(ctx)
		require.NoError(t, err)
		assert.Zero(t, total)

		adRevenue, err := repo.GetAdRevenue(ctx, "unknown-ad")
		require.NoError(t, err)
		assert.Zero(t, adRevenue)
	})

	t.Run("AddRevenue tracks per-ad and global totals", func(t *testing.T) {
		total, err := repo.AddRevenue(ctx, "ad-1", 0.25)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, total, 1e-9)

		total, err = repo.AddRevenue(ctx, "ad-2", 0.0025)
		require.NoError(t, err)
		assert.InDelta(t, 0.2525, total, 1e-9)

		adRevenue, err := repo.GetAdRevenue(ctx, "ad-1")
		require.NoError(t, err)
		assert.InDelta(t, 0.25, adRevenue, 1e-9)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		before, err := repo.GetTotalRevenue(ctx)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.AddRevenue(ctx, "ad-hot", 1)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		after, err := repo.GetTotalRevenue(ctx)
		require.NoError(t, err)
		assert.InDelta(t, before+20, after, 1e-9)

		hot, err := repo.GetAdRevenue(ctx, "ad-hot")
		require.NoError(t, err)
		assert.InDelta(t, 20.0, hot, 1e-9)
	})

	t.Run("RecordEvent assigns an id", func(t *testing.T) {
		event := &entities.AdEvent{
			AdID:      "ad-1",
			Kind:      entities.AdEventClick,
			Revenue:   0.25,
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.RecordEvent(ctx, event))
		assert.NotZero(t, event.ID)
	})
}
