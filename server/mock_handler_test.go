package server

import (
	"context"

	"dahcoins/application/dto"
	"dahcoins/domain/entities"
	"dahcoins/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

type mockEconomyHandler struct {
	mock.Mock
}

func (m *mockEconomyHandler) GetWallet(ctx context.Context, username string) (*entities.Wallet, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *mockEconomyHandler) GetLedger(ctx context.Context, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *mockEconomyHandler) GetTransactionHistory(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *mockEconomyHandler) AddCoins(ctx context.Context, req dto.AddCoinsRequest) (*entities.Wallet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *mockEconomyHandler) SpendCoins(ctx context.Context, req dto.SpendCoinsRequest) (*dto.SpendResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpendResult), args.Error(1)
}

func (m *mockEconomyHandler) SendTip(ctx context.Context, req dto.TipRequest) (*interfaces.TipResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.TipResult), args.Error(1)
}

func (m *mockEconomyHandler) CanUserEarn(ctx context.Context, username string, requested int64) (*entities.EarnCheck, error) {
	args := m.Called(ctx, username, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EarnCheck), args.Error(1)
}

func (m *mockEconomyHandler) RecordPayout(ctx context.Context, req dto.PayoutRequest) (*dto.PayoutResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PayoutResult), args.Error(1)
}

func (m *mockEconomyHandler) GetRevenueStats(ctx context.Context) (*entities.RevenueStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RevenueStats), args.Error(1)
}

func (m *mockEconomyHandler) GetUserLimits(ctx context.Context, username string) (*entities.UserLimits, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserLimits), args.Error(1)
}

func (m *mockEconomyHandler) EarnCoins(ctx context.Context, req dto.EarnRequest) (*entities.EarnResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EarnResult), args.Error(1)
}

func (m *mockEconomyHandler) RecordDailyLogin(ctx context.Context, req dto.DailyLoginRequest) (*entities.DailyLoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DailyLoginResult), args.Error(1)
}

func (m *mockEconomyHandler) AwardQuest(ctx context.Context, req dto.QuestRequest) (*entities.EarnResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EarnResult), args.Error(1)
}

func (m *mockEconomyHandler) CreateStake(ctx context.Context, req dto.StakeRequest) (*entities.Stake, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Stake), args.Error(1)
}

func (m *mockEconomyHandler) CheckAndUpdateStakes(ctx context.Context, username string) ([]*entities.Stake, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Stake), args.Error(1)
}

func (m *mockEconomyHandler) ClaimStake(ctx context.Context, req dto.ClaimStakeRequest) (*entities.Stake, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Stake), args.Error(1)
}

func (m *mockEconomyHandler) GetStakes(ctx context.Context, username string) ([]*entities.Stake, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Stake), args.Error(1)
}

func (m *mockEconomyHandler) RedeemItem(ctx context.Context, req dto.RedeemRequest) (*entities.RedeemResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RedeemResult), args.Error(1)
}

func (m *mockEconomyHandler) GetRedemptions(ctx context.Context, username string) ([]*entities.Redemption, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Redemption), args.Error(1)
}

func (m *mockEconomyHandler) MarkDelivered(ctx context.Context, redemptionID int64) (*entities.Redemption, error) {
	args := m.Called(ctx, redemptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Redemption), args.Error(1)
}

func (m *mockEconomyHandler) GetItemsByCategory(ctx context.Context, category entities.ItemCategory) ([]*entities.RewardItem, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RewardItem), args.Error(1)
}

func (m *mockEconomyHandler) GetFeaturedItems(ctx context.Context) ([]*entities.RewardItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RewardItem), args.Error(1)
}

func (m *mockEconomyHandler) GetFlashSales(ctx context.Context) ([]*entities.FlashSale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FlashSale), args.Error(1)
}

func (m *mockEconomyHandler) GetFlashSaleForItem(ctx context.Context, itemID string) (*entities.FlashSale, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FlashSale), args.Error(1)
}

func (m *mockEconomyHandler) GetFlashPrice(ctx context.Context, itemID string) (*dto.FlashPriceDTO, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FlashPriceDTO), args.Error(1)
}

func (m *mockEconomyHandler) RecordImpression(ctx context.Context, req dto.AdEventRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockEconomyHandler) RecordClick(ctx context.Context, req dto.AdEventRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockEconomyHandler) GetTotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockEconomyHandler) GetAdRevenue(ctx context.Context, adID string) (float64, error) {
	args := m.Called(ctx, adID)
	return args.Get(0).(float64), args.Error(1)
}
