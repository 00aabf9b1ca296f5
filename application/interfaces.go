package application

import (
	"context"

	"dahcoins/application/dto"
	"dahcoins/domain/entities"
	"dahcoins/domain/interfaces"
)

// EconomyHandler defines the interface for the coin economy
// This is implemented by the application layer and called by the HTTP server
type EconomyHandler interface {
	// Wallet and ledger
	GetWallet(ctx context.Context, username string) (*entities.Wallet, error)
	GetLedger(ctx context.Context, limit int) ([]*entities.LedgerEntry, error)
	GetTransactionHistory(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error)
	AddCoins(ctx context.Context, req dto.AddCoinsRequest) (*entities.Wallet, error)
	SpendCoins(ctx context.Context, req dto.SpendCoinsRequest) (*dto.SpendResult, error)
	SendTip(ctx context.Context, req dto.TipRequest) (*interfaces.TipResult, error)

	// Governor
	CanUserEarn(ctx context.Context, username string, requested int64) (*entities.EarnCheck, error)
	RecordPayout(ctx context.Context, req dto.PayoutRequest) (*dto.PayoutResult, error)
	GetRevenueStats(ctx context.Context) (*entities.RevenueStats, error)
	GetUserLimits(ctx context.Context, username string) (*entities.UserLimits, error)

	// Actions
	EarnCoins(ctx context.Context, req dto.EarnRequest) (*entities.EarnResult, error)
	RecordDailyLogin(ctx context.Context, req dto.DailyLoginRequest) (*entities.DailyLoginResult, error)
	AwardQuest(ctx context.Context, req dto.QuestRequest) (*entities.EarnResult, error)

	// Staking
	CreateStake(ctx context.Context, req dto.StakeRequest) (*entities.Stake, error)
	CheckAndUpdateStakes(ctx context.Context, username string) ([]*entities.Stake, error)
	ClaimStake(ctx context.Context, req dto.ClaimStakeRequest) (*entities.Stake, error)
	GetStakes(ctx context.Context, username string) ([]*entities.Stake, error)

	// Store
	RedeemItem(ctx context.Context, req dto.RedeemRequest) (*entities.RedeemResult, error)
	GetRedemptions(ctx context.Context, username string) ([]*entities.Redemption, error)
	MarkDelivered(ctx context.Context, redemptionID int64) (*entities.Redemption, error)
	GetItemsByCategory(ctx context.Context, category entities.ItemCategory) ([]*entities.RewardItem, error)
	GetFeaturedItems(ctx context.Context) ([]*entities.RewardItem, error)
	GetFlashSales(ctx context.Context) ([]*entities.FlashSale, error)
	GetFlashSaleForItem(ctx context.Context, itemID string) (*entities.FlashSale, error)
	GetFlashPrice(ctx context.Context, itemID string) (*dto.FlashPriceDTO, error)

	// Revenue
	RecordImpression(ctx context.Context, req dto.AdEventRequest) error
	RecordClick(ctx context.Context, req dto.AdEventRequest) error
	GetTotalRevenue(ctx context.Context) (float64, error)
	GetAdRevenue(ctx context.Context, adID string) (float64, error)
}

// StakeSweeper completes matured stakes for every user
type StakeSweeper interface {
	SweepMaturedStakes(ctx context.Context) (int, error)
}
