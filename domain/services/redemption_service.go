package services

import (
	"context"
	"fmt"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"
	"dahcoins/domain/interfaces"
	"dahcoins/domain/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const redemptionFailedMessage = "Redemption failed. Please try again."

type redemptionService struct {
	catalog        interfaces.CatalogService
	catalogRepo    interfaces.CatalogRepository
	flashSaleRepo  interfaces.FlashSaleRepository
	redemptionRepo interfaces.RedemptionRepository
	walletRepo     interfaces.WalletRepository
	ledger         interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
}

// NewRedemptionService creates a new redemption store
func NewRedemptionService(
	catalog interfaces.CatalogService,
	catalogRepo interfaces.CatalogRepository,
	flashSaleRepo interfaces.FlashSaleRepository,
	redemptionRepo interfaces.RedemptionRepository,
	walletRepo interfaces.WalletRepository,
	ledger interfaces.LedgerService,
	eventPublisher interfaces.EventPublisher,
) interfaces.RedemptionService {
	return &redemptionService{
		catalog:        catalog,
		catalogRepo:    catalogRepo,
		flashSaleRepo:  flashSaleRepo,
		redemptionRepo: redemptionRepo,
		walletRepo:     walletRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

// RedeemItem spends coins on a catalog item.
// Stock and flash claims are taken before the spend; a result with Success=false
// after any write means the caller must roll back.
func (s *redemptionService) RedeemItem(ctx context.Context, username, itemID string, viaFlashSale bool) (*entities.RedeemResult, error) {
	if username == "" || itemID == "" {
		return nil, fmt.Errorf("username and item are required: %w", entities.ErrInvalidInput)
	}

	item, err := s.catalogRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return entities.NewFailedRedeemResult(entities.RedeemReasonNotFound, "Item not found"), nil
	}
	if item.IsSoldOut() {
		return entities.NewFailedRedeemResult(entities.RedeemReasonSoldOut, fmt.Sprintf("%s is sold out", item.Name)), nil
	}

	price := item.Price
	var sale *entities.FlashSale
	if viaFlashSale {
		price, sale, err = s.catalog.GetFlashPrice(ctx, item)
		if err != nil {
			return nil, err
		}
		if sale == nil {
			return entities.NewFailedRedeemResult(entities.RedeemReasonFlashExhausted, "This flash sale has ended or sold out"), nil
		}
	}

	wallet, err := s.walletRepo.GetForUpdate(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	if wallet.Available < price {
		shortfall := wallet.Shortfall(price)
		return &entities.RedeemResult{
			Reason:    entities.RedeemReasonInsufficientFunds,
			Message:   entities.InsufficientFundsMessage(shortfall),
			Shortfall: shortfall,
		}, nil
	}

	if item.IsStockLimited() {
		taken, err := s.catalogRepo.DecrementStock(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if !taken {
			return entities.NewFailedRedeemResult(entities.RedeemReasonSoldOut, fmt.Sprintf("%s is sold out", item.Name)), nil
		}
	}

	now := s.now()
	if sale != nil {
		claimed, err := s.flashSaleRepo.Claim(ctx, sale.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to claim flash sale: %w", err)
		}
		if !claimed {
			return entities.NewFailedRedeemResult(entities.RedeemReasonFlashExhausted, "This flash sale has ended or sold out"), nil
		}
	}

	redemption := &entities.Redemption{
		Username:   username,
		ItemID:     item.ID,
		PricePaid:  price,
		Status:     entities.RedemptionStatusFulfilled,
		Reference:  uuid.NewString(),
		RedeemedAt: now,
	}
	if sale != nil {
		redemption.FlashSaleID = &sale.ID
	}
	if item.RequiresCode() {
		code, err := utils.GenerateGiftCode()
		if err != nil {
			return nil, err
		}
		redemption.Code = &code
		redemption.Status = entities.RedemptionStatusPending
	}

	if err := s.redemptionRepo.Create(ctx, redemption); err != nil {
		return nil, fmt.Errorf("failed to create redemption: %w", err)
	}

	metadata := map[string]any{"itemId": item.ID, "reference": redemption.Reference}
	if sale != nil {
		metadata["flashSaleId"] = sale.ID
	}
	ok, err := s.ledger.SpendCoins(ctx, username, price, "redeem:"+item.ID,
		entities.WithTransactionType(entities.TransactionTypeRedemption),
		entities.WithRelatedEntity(redemption.ID, entities.RelatedTypeRedemption),
		entities.WithMetadata(metadata),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to spend coins: %w", err)
	}
	if !ok {
		return entities.NewFailedRedeemResult(entities.RedeemReasonFailed, redemptionFailedMessage), nil
	}

	if err := s.eventPublisher.Publish(events.RedemptionCreatedEvent{
		RedemptionID: redemption.ID,
		Reference:    redemption.Reference,
		Username:     username,
		ItemID:       item.ID,
		PricePaid:    price,
		Status:       redemption.Status,
		ViaFlashSale: sale != nil,
	}); err != nil {
		log.WithError(err).Error("Failed to publish redemption created event")
	}

	message := fmt.Sprintf("Redeemed %s for %s", item.Name, utils.FormatCoins(price))
	utils.Notify(s.eventPublisher, username, events.NotificationRedemption, price, message)

	return &entities.RedeemResult{
		Success:    true,
		Message:    message,
		Redemption: redemption,
	}, nil
}

// GetRedemptions returns the user's redemptions, newest first
func (s *redemptionService) GetRedemptions(ctx context.Context, username string) ([]*entities.Redemption, error) {
	redemptions, err := s.redemptionRepo.GetByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get redemptions: %w", err)
	}
	return redemptions, nil
}

// MarkDelivered completes a pending gift card redemption
func (s *redemptionService) MarkDelivered(ctx context.Context, redemptionID int64) (*entities.Redemption, error) {
	redemption, err := s.redemptionRepo.GetByID(ctx, redemptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get redemption: %w", err)
	}
	if redemption == nil {
		return nil, fmt.Errorf("redemption %d: %w", redemptionID, entities.ErrNotFound)
	}

	updated, err := s.redemptionRepo.UpdateStatus(ctx, redemptionID, entities.RedemptionStatusPending, entities.RedemptionStatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("failed to update redemption status: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("redemption %d is %s: %w", redemptionID, redemption.Status, entities.ErrInvalidTransition)
	}

	redemption.Status = entities.RedemptionStatusDelivered
	return redemption, nil
}
