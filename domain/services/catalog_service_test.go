package services

import (
	"context"
	"testing"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService(catalogRepo *testhelpers.MockCatalogRepository, flashSaleRepo *testhelpers.MockFlashSaleRepository) *catalogService {
	s := NewCatalogService(catalogRepo, flashSaleRepo).(*catalogService)
	s.now = fixedClock
	return s
}

func TestCatalogService_GetItemsByCategory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalogRepo := new(testhelpers.MockCatalogRepository)
	all := []*entities.RewardItem{{ID: "a"}, {ID: "b"}}
	badges := []*entities.RewardItem{{ID: "b", Category: entities.CategoryBadge}}
	catalogRepo.On("GetAll", ctx).Return(all, nil)
	catalogRepo.On("GetByCategory", ctx, entities.CategoryBadge).Return(badges, nil)

	service := newTestCatalogService(catalogRepo, new(testhelpers.MockFlashSaleRepository))

	got, err := service.GetItemsByCategory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, all, got)

	got, err = service.GetItemsByCategory(ctx, entities.CategoryBadge)
	require.NoError(t, err)
	assert.Equal(t, badges, got)

	_, err = service.GetItemsByCategory(ctx, entities.ItemCategory("cash_out"))
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
	catalogRepo.AssertNotCalled(t, "GetByCategory", ctx, entities.ItemCategory("cash_out"))
}

func TestCatalogService_GetFlashPrice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	item := &entities.RewardItem{ID: "theme-neon", Price: 300}

	t.Run("active sale discounts", func(t *testing.T) {
		flashSaleRepo := new(testhelpers.MockFlashSaleRepository)
		sale := &entities.FlashSale{
			ID:              3,
			ItemID:          item.ID,
			DiscountPercent: 40,
			StartTime:       testNow.Add(-time.Hour),
			EndTime:         testNow.Add(time.Hour),
			MaxClaims:       10,
		}
		flashSaleRepo.On("GetActiveForItem", ctx, item.ID, testNow).Return(sale, nil)

		price, got, err := newTestCatalogService(new(testhelpers.MockCatalogRepository), flashSaleRepo).GetFlashPrice(ctx, item)

		require.NoError(t, err)
		assert.Equal(t, int64(180), price)
		assert.Equal(t, sale, got)
	})

	t.Run("no sale uses list price", func(t *testing.T) {
		flashSaleRepo := new(testhelpers.MockFlashSaleRepository)
		flashSaleRepo.On("GetActiveForItem", ctx, item.ID, testNow).Return(nil, nil)

		price, got, err := newTestCatalogService(new(testhelpers.MockCatalogRepository), flashSaleRepo).GetFlashPrice(ctx, item)

		require.NoError(t, err)
		assert.Equal(t, int64(300), price)
		assert.Nil(t, got)
	})

	t.Run("exhausted sale uses list price", func(t *testing.T) {
		flashSaleRepo := new(testhelpers.MockFlashSaleRepository)
		flashSaleRepo.On("GetActiveForItem", ctx, item.ID, testNow).Return(&entities.FlashSale{
			DiscountPercent: 40,
			StartTime:       testNow.Add(-time.Hour),
			EndTime:         testNow.Add(time.Hour),
			MaxClaims:       1,
			Claimed:         1,
		}, nil)

		price, got, err := newTestCatalogService(new(testhelpers.MockCatalogRepository), flashSaleRepo).GetFlashPrice(ctx, item)

		require.NoError(t, err)
		assert.Equal(t, int64(300), price)
		assert.Nil(t, got)
	})
}
