package application

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/application/dto"
	"dahcoins/config"
	"dahcoins/domain/entities"
	"dahcoins/domain/interfaces"
	"dahcoins/domain/services"
	"dahcoins/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// EconomyHandlerImpl implements the EconomyHandler interface.
// Every call runs in its own unit of work; events reach NATS only after commit.
type EconomyHandlerImpl struct {
	uowFactory     UnitOfWorkFactory
	governorConfig services.GovernorConfig
	revenueConfig  services.RevenueConfig
}

// NewEconomyHandler creates a new economy handler
func NewEconomyHandler(uowFactory UnitOfWorkFactory, cfg *config.Config) *EconomyHandlerImpl {
	return &EconomyHandlerImpl{
		uowFactory: uowFactory,
		governorConfig: services.GovernorConfig{
			DailyUserCap:         cfg.DailyUserCap,
			MonthlyUserCap:       cfg.MonthlyUserCap,
			PlatformReserveRatio: cfg.PlatformReserveRatio,
		},
		revenueConfig: services.RevenueConfig{
			CPM: cfg.AdCPM,
			CPC: cfg.AdCPC,
		},
	}
}

// begin opens a unit of work and the services bound to it.
// Callers must defer uow.Rollback().
func (h *EconomyHandlerImpl) begin(ctx context.Context) (UnitOfWork, *economyServices, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return uow, newEconomyServices(uow, h.governorConfig, h.revenueConfig), nil
}

// query runs a read-only call and rolls back afterwards
func query[T any](ctx context.Context, h *EconomyHandlerImpl, operation string, fn func(*economyServices) (T, error)) (T, error) {
	done := observability.GetMetrics().MeasureOperation(operation)

	var zero T
	uow, svc, err := h.begin(ctx)
	if err != nil {
		done(observability.ResultError)
		return zero, err
	}
	defer uow.Rollback()

	result, err := fn(svc)
	if err != nil {
		done(observability.ResultError)
		return zero, err
	}
	done(observability.ResultSuccess)
	return result, nil
}

// mutate runs fn under the idempotency key and commits when fn succeeds
func mutate[T any](ctx context.Context, h *EconomyHandlerImpl, operation, key, username string, fn func(*economyServices) (T, error)) (T, bool, error) {
	var zero T
	uow, svc, err := h.begin(ctx)
	if err != nil {
		return zero, false, err
	}
	defer uow.Rollback()

	result, replayed, err := runIdempotent(ctx, uow, key, username, operation, func() (T, error) {
		return fn(svc)
	})
	if err != nil {
		return zero, false, err
	}
	if err := uow.Commit(); err != nil {
		return zero, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, replayed, nil
}

func resultLabel(replayed bool) string {
	if replayed {
		return observability.ResultReplay
	}
	return observability.ResultSuccess
}

// GetWallet returns the user's wallet
func (h *EconomyHandlerImpl) GetWallet(ctx context.Context, username string) (*entities.Wallet, error) {
	return query(ctx, h, "getWallet", func(svc *economyServices) (*entities.Wallet, error) {
		return svc.ledger.GetWallet(ctx, username)
	})
}

// GetLedger returns the most recent ledger entries across all users
func (h *EconomyHandlerImpl) GetLedger(ctx context.Context, limit int) ([]*entities.LedgerEntry, error) {
	return query(ctx, h, "getLedger", func(svc *economyServices) ([]*entities.LedgerEntry, error) {
		return svc.ledger.GetLedger(ctx, limit)
	})
}

// GetTransactionHistory returns the user's most recent ledger entries
func (h *EconomyHandlerImpl) GetTransactionHistory(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error) {
	return query(ctx, h, "getTransactionHistory", func(svc *economyServices) ([]*entities.LedgerEntry, error) {
		return svc.ledger.GetTransactionHistory(ctx, username, limit)
	})
}

// AddCoins credits amount to the user through the age split, bypassing the governor
func (h *EconomyHandlerImpl) AddCoins(ctx context.Context, req dto.AddCoinsRequest) (*entities.Wallet, error) {
	done := observability.GetMetrics().MeasureOperation("addCoins")

	wallet, replayed, err := mutate(ctx, h, "addCoins", req.IdempotencyKey, req.Username, func(svc *economyServices) (*entities.Wallet, error) {
		return svc.ledger.AddCoins(ctx, req.Username, req.Age, req.Event, req.Amount,
			entities.WithTransactionType(entities.TransactionTypeAdminCredit))
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}

	if !replayed && req.Amount > 0 {
		observability.GetMetrics().RecordBalanceTransaction(string(entities.TransactionTypeAdminCredit))
	}
	done(resultLabel(replayed))
	return wallet, nil
}

// SpendCoins debits available coins; an unsuccessful spend changes nothing
func (h *EconomyHandlerImpl) SpendCoins(ctx context.Context, req dto.SpendCoinsRequest) (*dto.SpendResult, error) {
	done := observability.GetMetrics().MeasureOperation("spendCoins")

	uow, svc, err := h.begin(ctx)
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}
	defer uow.Rollback()

	result, replayed, err := runIdempotent(ctx, uow, req.IdempotencyKey, req.Username, "spendCoins", func() (*dto.SpendResult, error) {
		ok, err := svc.ledger.SpendCoins(ctx, req.Username, req.Amount, req.Event)
		if err != nil {
			return nil, err
		}
		wallet, err := svc.ledger.GetWallet(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &dto.SpendResult{
				Message: entities.InsufficientFundsMessage(wallet.Shortfall(req.Amount)),
				Wallet:  wallet,
			}, nil
		}
		return &dto.SpendResult{Success: true, Message: fmt.Sprintf("Spent %d DAH Coins", req.Amount), Wallet: wallet}, nil
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}
	if !result.Success {
		done(observability.ResultFailure)
		return result, nil
	}

	if err := uow.Commit(); err != nil {
		done(observability.ResultError)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if !replayed {
		observability.GetMetrics().RecordBalanceTransaction(string(entities.TransactionTypeSpend))
	}
	done(resultLabel(replayed))
	return result, nil
}

// SendTip transfers coins from one user to another
func (h *EconomyHandlerImpl) SendTip(ctx context.Context, req dto.TipRequest) (*interfaces.TipResult, error) {
	done := observability.GetMetrics().MeasureOperation("sendTip")

	uow, svc, err := h.begin(ctx)
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}
	defer uow.Rollback()

	result, replayed, err := runIdempotent(ctx, uow, req.IdempotencyKey, req.From, "sendTip", func() (*interfaces.TipResult, error) {
		return svc.ledger.SendTip(ctx, req.From, req.To, req.Amount)
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}
	if !result.Success {
		done(observability.ResultFailure)
		return result, nil
	}

	if err := uow.Commit(); err != nil {
		done(observability.ResultError)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if !replayed {
		observability.GetMetrics().RecordBalanceTransaction(string(entities.TransactionTypeTipSent))
		observability.GetMetrics().RecordBalanceTransaction(string(entities.TransactionTypeTipReceived))
	}
	done(resultLabel(replayed))
	return result, nil
}

// CanUserEarn previews how much of requested the governor would allow
func (h *EconomyHandlerImpl) CanUserEarn(ctx context.Context, username string, requested int64) (*entities.EarnCheck, error) {
	return query(ctx, h, "canUserEarn", func(svc *economyServices) (*entities.EarnCheck, error) {
		return svc.governor.CanUserEarn(ctx, username, requested)
	})
}

// RecordPayout charges coins against the user's caps and the pool without crediting a wallet
func (h *EconomyHandlerImpl) RecordPayout(ctx context.Context, req dto.PayoutRequest) (*dto.PayoutResult, error) {
	done := observability.GetMetrics().MeasureOperation("recordPayout")

	result, replayed, err := mutate(ctx, h, "recordPayout", req.IdempotencyKey, req.Username, func(svc *economyServices) (*dto.PayoutResult, error) {
		if req.Username == "" {
			return nil, fmt.Errorf("username is required: %w", entities.ErrInvalidInput)
		}
		if err := svc.governor.RecordPayout(ctx, req.Username, req.Coins, req.Reason); err != nil {
			return nil, err
		}
		return &dto.PayoutResult{Username: req.Username, Coins: req.Coins, Reason: req.Reason}, nil
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}
	done(resultLabel(replayed))
	return result, nil
}

// GetRevenueStats returns the pool projection
func (h *EconomyHandlerImpl) GetRevenueStats(ctx context.Context) (*entities.RevenueStats, error) {
	return query(ctx, h, "getRevenueStats", func(svc *economyServices) (*entities.RevenueStats, error) {
		return svc.governor.GetRevenueStats(ctx)
	})
}

// GetUserLimits returns the user's cap usage
func (h *EconomyHandlerImpl) GetUserLimits(ctx context.Context, username string) (*entities.UserLimits, error) {
	return query(ctx, h, "getUserLimits", func(svc *economyServices) (*entities.UserLimits, error) {
		return svc.governor.GetUserLimits(ctx, username)
	})
}

// EarnCoins rewards a user action.
// Losing the pool race to a concurrent payout rolls everything back and reports the pool as depleted.
func (h *EconomyHandlerImpl) EarnCoins(ctx context.Context, req dto.EarnRequest) (*entities.EarnResult, error) {
	done := observability.GetMetrics().MeasureOperation("earnCoins")

	result, replayed, err := mutate(ctx, h, "earnCoins", req.IdempotencyKey, req.Username, func(svc *economyServices) (*entities.EarnResult, error) {
		return svc.dispatcher.EarnCoins(ctx, req.Username, req.Age, req.Action)
	})
	if errors.Is(err, entities.ErrPoolDepleted) {
		log.WithFields(log.Fields{
			"username": req.Username,
			"action":   req.Action,
		}).Warn("Payout pool exhausted during earn")
		result, replayed, err = entities.NewBlockedEarnResult(entities.EarnReasonPoolDepleted), false, nil
	}
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}

	if !replayed {
		h.recordEarn(req.Action.String(), result)
	}
	done(resultLabel(replayed))
	return result, nil
}

// RecordDailyLogin records today's check-in and pays the login and streak rewards
func (h *EconomyHandlerImpl) RecordDailyLogin(ctx context.Context, req dto.DailyLoginRequest) (*entities.DailyLoginResult, error) {
	done := observability.GetMetrics().MeasureOperation("recordDailyLogin")

	result, replayed, err := mutate(ctx, h, "recordDailyLogin", req.IdempotencyKey, req.Username, func(svc *economyServices) (*entities.DailyLoginResult, error) {
		return svc.dispatcher.RecordDailyLogin(ctx, req.Username, req.Age)
	})
	if errors.Is(err, entities.ErrPoolDepleted) {
		blocked := entities.NewBlockedEarnResult(entities.EarnReasonPoolDepleted)
		result, replayed, err = &entities.DailyLoginResult{Login: blocked, Message: blocked.Message}, false, nil
	}
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}

	if !replayed {
		h.recordEarn(entities.ActionDailyLogin.String(), result.Login)
		h.recordEarn(entities.ActionStreakBonus.String(), result.Bonus)
	}
	done(resultLabel(replayed))
	return result, nil
}

// AwardQuest pays a quest reward through the governor
func (h *EconomyHandlerImpl) AwardQuest(ctx context.Context, req dto.QuestRequest) (*entities.EarnResult, error) {
	done := observability.GetMetrics().MeasureOperation("awardQuest")

	result, replayed, err := mutate(ctx, h, "awardQuest", req.IdempotencyKey, req.Username, func(svc *economyServices) (*entities.EarnResult, error) {
		return svc.dispatcher.AwardQuest(ctx, req.Username, req.Age, req.Title, req.Reward)
	})
	if errors.Is(err, entities.ErrPoolDepleted) {
		result, replayed, err = entities.NewBlockedEarnResult(entities.EarnReasonPoolDepleted), false, nil
	}
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}

	if !replayed {
		h.recordEarn("quest", result)
	}
	done(resultLabel(replayed))
	return result, nil
}

func (h *EconomyHandlerImpl) recordEarn(action string, result *entities.EarnResult) {
	if result == nil {
		return
	}
	metrics := observability.GetMetrics()
	if result.Blocked {
		metrics.RecordEarnBlocked(string(result.Reason))
		return
	}
	metrics.RecordCoinsIssued(action, result.Earned+result.Locked)
	metrics.RecordBalanceTransaction(string(entities.TransactionTypeEarn))
}

// CreateStake locks coins from the user's available balance
func (h *EconomyHandlerImpl) CreateStake(ctx context.Context, req dto.StakeRequest) (*entities.Stake, error) {
	done := observability.GetMetrics().MeasureOperation("createStake")

	stake, replayed, err := mutate(ctx, h, "createStake", req.IdempotencyKey, req.Username, func(svc *economyServices) (*entities.Stake, error) {
		return svc.staking.CreateStake(ctx, req.Username, req.Amount, req.DurationDays)
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}

	if !replayed {
		observability.GetMetrics().RecordStakeTransition(string(entities.StakeStatusActive), 1)
		observability.GetMetrics().RecordBalanceTransaction(string(entities.TransactionTypeStakeLock))
	}
	done(resultLabel(replayed))
	return stake, nil
}

// CheckAndUpdateStakes completes the user's matured stakes and returns the ones that changed
func (h *EconomyHandlerImpl) CheckAndUpdateStakes(ctx context.Context, username string) ([]*entities.Stake, error) {
	done := observability.GetMetrics().MeasureOperation("checkAndUpdateStakes")

	updated, _, err := mutate(ctx, h, "checkAndUpdateStakes", "", username, func(svc *economyServices) ([]*entities.Stake, error) {
		return svc.staking.CheckAndUpdateStakes(ctx, username)
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}

	observability.GetMetrics().RecordStakeTransition(string(entities.StakeStatusCompleted), len(updated))
	done(observability.ResultSuccess)
	return updated, nil
}

// ClaimStake pays out a completed stake
func (h *EconomyHandlerImpl) ClaimStake(ctx context.Context, req dto.ClaimStakeRequest) (*entities.Stake, error) {
	done := observability.GetMetrics().MeasureOperation("claimStake")

	stake, replayed, err := mutate(ctx, h, "claimStake", req.IdempotencyKey, req.Username, func(svc *economyServices) (*entities.Stake, error) {
		return svc.staking.ClaimStake(ctx, req.Username, req.StakeID)
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}

	if !replayed {
		observability.GetMetrics().RecordStakeTransition(string(entities.StakeStatusClaimed), 1)
		observability.GetMetrics().RecordBalanceTransaction(string(entities.TransactionTypeStakeClaim))
	}
	done(resultLabel(replayed))
	return stake, nil
}

// GetStakes returns the user's stakes
func (h *EconomyHandlerImpl) GetStakes(ctx context.Context, username string) ([]*entities.Stake, error) {
	return query(ctx, h, "getStakes", func(svc *economyServices) ([]*entities.Stake, error) {
		return svc.staking.GetStakes(ctx, username)
	})
}

// SweepMaturedStakes completes matured stakes for every user
func (h *EconomyHandlerImpl) SweepMaturedStakes(ctx context.Context) (int, error) {
	done := observability.GetMetrics().MeasureOperation("sweepMaturedStakes")

	count, _, err := mutate(ctx, h, "sweepMaturedStakes", "", "", func(svc *economyServices) (int, error) {
		return svc.staking.SweepMatured(ctx)
	})
	if err != nil {
		done(observability.ResultError)
		return 0, err
	}

	observability.GetMetrics().RecordStakeTransition(string(entities.StakeStatusCompleted), count)
	done(observability.ResultSuccess)
	return count, nil
}

// RedeemItem buys a catalog item. A failed redemption leaves no trace.
func (h *EconomyHandlerImpl) RedeemItem(ctx context.Context, req dto.RedeemRequest) (*entities.RedeemResult, error) {
	done := observability.GetMetrics().MeasureOperation("redeemItem")

	uow, svc, err := h.begin(ctx)
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}
	defer uow.Rollback()

	result, replayed, err := runIdempotent(ctx, uow, req.IdempotencyKey, req.Username, "redeemItem", func() (*entities.RedeemResult, error) {
		return svc.redemption.RedeemItem(ctx, req.Username, req.ItemID, req.ViaFlashSale)
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}
	if !result.Success {
		observability.GetMetrics().RecordRedemption(observability.ResultFailure, string(result.Reason))
		done(observability.ResultFailure)
		return result, nil
	}

	if err := uow.Commit(); err != nil {
		done(observability.ResultError)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if !replayed {
		observability.GetMetrics().RecordRedemption(observability.ResultSuccess, "")
		observability.GetMetrics().RecordBalanceTransaction(string(entities.TransactionTypeRedemption))
	}
	done(resultLabel(replayed))
	return result, nil
}

// GetRedemptions returns the user's redemptions
func (h *EconomyHandlerImpl) GetRedemptions(ctx context.Context, username string) ([]*entities.Redemption, error) {
	return query(ctx, h, "getRedemptions", func(svc *economyServices) ([]*entities.Redemption, error) {
		return svc.redemption.GetRedemptions(ctx, username)
	})
}

// MarkDelivered moves a pending redemption to delivered
func (h *EconomyHandlerImpl) MarkDelivered(ctx context.Context, redemptionID int64) (*entities.Redemption, error) {
	done := observability.GetMetrics().MeasureOperation("markDelivered")

	redemption, _, err := mutate(ctx, h, "markDelivered", "", "", func(svc *economyServices) (*entities.Redemption, error) {
		return svc.redemption.MarkDelivered(ctx, redemptionID)
	})
	if err != nil {
		done(observability.ResultError)
		return nil, err
	}
	done(observability.ResultSuccess)
	return redemption, nil
}

// GetItemsByCategory lists catalog items, all of them when category is empty
func (h *EconomyHandlerImpl) GetItemsByCategory(ctx context.Context, category entities.ItemCategory) ([]*entities.RewardItem, error) {
	return query(ctx, h, "getItemsByCategory", func(svc *economyServices) ([]*entities.RewardItem, error) {
		return svc.catalog.GetItemsByCategory(ctx, category)
	})
}

// GetFeaturedItems lists featured catalog items
func (h *EconomyHandlerImpl) GetFeaturedItems(ctx context.Context) ([]*entities.RewardItem, error) {
	return query(ctx, h, "getFeaturedItems", func(svc *economyServices) ([]*entities.RewardItem, error) {
		return svc.catalog.GetFeaturedItems(ctx)
	})
}

// GetFlashSales lists the sales open right now
func (h *EconomyHandlerImpl) GetFlashSales(ctx context.Context) ([]*entities.FlashSale, error) {
	return query(ctx, h, "getFlashSales", func(svc *economyServices) ([]*entities.FlashSale, error) {
		return svc.catalog.GetFlashSales(ctx)
	})
}

// GetFlashSaleForItem returns the open sale for an item, nil when there is none
func (h *EconomyHandlerImpl) GetFlashSaleForItem(ctx context.Context, itemID string) (*entities.FlashSale, error) {
	return query(ctx, h, "getFlashSaleForItem", func(svc *economyServices) (*entities.FlashSale, error) {
		return svc.catalog.GetFlashSaleForItem(ctx, itemID)
	})
}

// GetFlashPrice returns what the item costs right now
func (h *EconomyHandlerImpl) GetFlashPrice(ctx context.Context, itemID string) (*dto.FlashPriceDTO, error) {
	return query(ctx, h, "getFlashPrice", func(svc *economyServices) (*dto.FlashPriceDTO, error) {
		item, err := svc.catalog.GetItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("item %s: %w", itemID, entities.ErrNotFound)
		}
		price, sale, err := svc.catalog.GetFlashPrice(ctx, item)
		if err != nil {
			return nil, err
		}
		return &dto.FlashPriceDTO{
			ItemID:    item.ID,
			ListPrice: item.Price,
			Price:     price,
			FlashSale: sale,
		}, nil
	})
}

// RecordImpression credits an ad view to the revenue pool
func (h *EconomyHandlerImpl) RecordImpression(ctx context.Context, req dto.AdEventRequest) error {
	return h.recordAdEvent(ctx, "recordImpression", req, func(svc *economyServices) error {
		return svc.revenue.RecordImpression(ctx, req.AdID, req.Username)
	})
}

// RecordClick credits an ad click to the revenue pool
func (h *EconomyHandlerImpl) RecordClick(ctx context.Context, req dto.AdEventRequest) error {
	return h.recordAdEvent(ctx, "recordClick", req, func(svc *economyServices) error {
		return svc.revenue.RecordClick(ctx, req.AdID, req.Username)
	})
}

func (h *EconomyHandlerImpl) recordAdEvent(ctx context.Context, operation string, req dto.AdEventRequest, fn func(*economyServices) error) error {
	done := observability.GetMetrics().MeasureOperation(operation)

	_, _, err := mutate(ctx, h, operation, "", req.Username, func(svc *economyServices) (struct{}, error) {
		return struct{}{}, fn(svc)
	})
	if err != nil {
		done(observability.ResultError)
		return err
	}
	done(observability.ResultSuccess)
	return nil
}

// GetTotalRevenue returns the accumulated ad revenue
func (h *EconomyHandlerImpl) GetTotalRevenue(ctx context.Context) (float64, error) {
	return query(ctx, h, "getTotalRevenue", func(svc *economyServices) (float64, error) {
		return svc.revenue.GetTotalRevenue(ctx)
	})
}

// GetAdRevenue returns the revenue attributed to one ad
func (h *EconomyHandlerImpl) GetAdRevenue(ctx context.Context, adID string) (float64, error) {
	if adID == "" {
		return 0, fmt.Errorf("ad id is required: %w", entities.ErrInvalidInput)
	}
	return query(ctx, h, "getAdRevenue", func(svc *economyServices) (float64, error) {
		return svc.revenue.GetAdRevenue(ctx, adID)
	})
}
