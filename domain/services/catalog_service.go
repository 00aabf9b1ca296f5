package services

import (
	"context"
	"fmt"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/interfaces"
)

type catalogService struct {
	catalogRepo   interfaces.CatalogRepository
	flashSaleRepo interfaces.FlashSaleRepository
	now           func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo interfaces.CatalogRepository, flashSaleRepo interfaces.FlashSaleRepository) interfaces.CatalogService {
	return &catalogService{
		catalogRepo:   catalogRepo,
		flashSaleRepo: flashSaleRepo,
		now:           time.Now,
	}
}

func (s *catalogService) GetItem(ctx context.Context, itemID string) (*entities.RewardItem, error) {
	item, err := s.catalogRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (s *catalogService) GetItemsByCategory(ctx context.Context, category entities.ItemCategory) ([]*entities.RewardItem, error) {
	if category == "" {
		items, err := s.catalogRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get items: %w", err)
		}
		return items, nil
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown category %q: %w", category, entities.ErrInvalidInput)
	}
	items, err := s.catalogRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by category: %w", err)
	}
	return items, nil
}

func (s *catalogService) GetFeaturedItems(ctx context.Context) ([]*entities.RewardItem, error) {
	items, err := s.catalogRepo.GetFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured items: %w", err)
	}
	return items, nil
}

// GetFlashSales returns sales that are open right now
func (s *catalogService) GetFlashSales(ctx context.Context) ([]*entities.FlashSale, error) {
	sales, err := s.flashSaleRepo.GetActive(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get flash sales: %w", err)
	}
	return sales, nil
}

func (s *catalogService) GetFlashSaleForItem(ctx context.Context, itemID string) (*entities.FlashSale, error) {
	sale, err := s.flashSaleRepo.GetActiveForItem(ctx, itemID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get flash sale for item: %w", err)
	}
	return sale, nil
}

// GetFlashPrice returns the discounted price when an open sale targets the item, else the list price
func (s *catalogService) GetFlashPrice(ctx context.Context, item *entities.RewardItem) (int64, *entities.FlashSale, error) {
	now := s.now()
	sale, err := s.flashSaleRepo.GetActiveForItem(ctx, item.ID, now)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get flash sale for item: %w", err)
	}
	if sale == nil || !sale.IsActive(now) {
		return item.Price, nil, nil
	}
	return sale.Price(item.Price), sale, nil
}
