package interfaces

import (
	"context"

	"dahcoins/domain/entities"
)

// LedgerService defines the interface for wallet and ledger operations
type LedgerService interface {
	GetWallet(ctx context.Context, username string) (*entities.Wallet, error)
	GetLedger(ctx context.Context, limit int) ([]*entities.LedgerEntry, error)
	GetTransactionHistory(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error)

	// AddCoins credits the age split of base and records it
	AddCoins(ctx context.Context, username string, age int, event string, base int64, opts ...entities.EntryOption) (*entities.Wallet, error)

	// SpendCoins debits available; false without mutation when funds are insufficient
	SpendCoins(ctx context.Context, username string, amount int64, event string, opts ...entities.EntryOption) (bool, error)

	// CreditAvailable adds amount to available without age split
	CreditAvailable(ctx context.Context, username string, amount int64, event string, opts ...entities.EntryOption) (*entities.Wallet, error)

	SendTip(ctx context.Context, from, to string, amount int64) (*TipResult, error)
}

// TipResult describes the outcome of a tip
type TipResult struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
	SenderWallet    *entities.Wallet `json:"senderWallet,omitempty"`
	RecipientWallet *entities.Wallet `json:"recipientWallet,omitempty"`
}

// RevenueService defines the interface for the revenue pool tracker
type RevenueService interface {
	RecordImpression(ctx context.Context, adID, username string) error
	RecordClick(ctx context.Context, adID, username string) error
	GetTotalRevenue(ctx context.Context) (float64, error)
	GetAdRevenue(ctx context.Context, adID string) (float64, error)
}

// EarningGovernor defines the interface for issuance limits
type EarningGovernor interface {
	CanUserEarn(ctx context.Context, username string, requested int64) (*entities.EarnCheck, error)
	RecordPayout(ctx context.Context, username string, coins int64, reason string) error
	GetRevenueStats(ctx context.Context) (*entities.RevenueStats, error)
	GetUserLimits(ctx context.Context, username string) (*entities.UserLimits, error)
}

// ActionDispatcher defines the interface for rewarding user actions
type ActionDispatcher interface {
	EarnCoins(ctx context.Context, username string, age int, action entities.Action) (*entities.EarnResult, error)
	RecordDailyLogin(ctx context.Context, username string, age int) (*entities.DailyLoginResult, error)
	AwardQuest(ctx context.Context, username string, age int, title string, reward int64) (*entities.EarnResult, error)
}

// StakingService defines the interface for the staking engine
type StakingService interface {
	CreateStake(ctx context.Context, username string, amount int64, durationDays int) (*entities.Stake, error)
	CheckAndUpdateStakes(ctx context.Context, username string) ([]*entities.Stake, error)
	ClaimStake(ctx context.Context, username string, stakeID int64) (*entities.Stake, error)
	GetStakes(ctx context.Context, username string) ([]*entities.Stake, error)

	// SweepMatured completes matured stakes for every user
	SweepMatured(ctx context.Context) (int, error)
}

// CatalogService defines the interface for catalog and flash sale queries
type CatalogService interface {
	GetItem(ctx context.Context, itemID string) (*entities.RewardItem, error)
	GetItemsByCategory(ctx context.Context, category entities.ItemCategory) ([]*entities.RewardItem, error)
	GetFeaturedItems(ctx context.Context) ([]*entities.RewardItem, error)
	GetFlashSales(ctx context.Context) ([]*entities.FlashSale, error)
	GetFlashSaleForItem(ctx context.Context, itemID string) (*entities.FlashSale, error)

	// GetFlashPrice returns the effective price and the sale that produced it, if any
	GetFlashPrice(ctx context.Context, item *entities.RewardItem) (int64, *entities.FlashSale, error)
}

// RedemptionService defines the interface for the redemption store
type RedemptionService interface {
	RedeemItem(ctx context.Context, username, itemID string, viaFlashSale bool) (*entities.RedeemResult, error)
	GetRedemptions(ctx context.Context, username string) ([]*entities.Redemption, error)
	MarkDelivered(ctx context.Context, redemptionID int64) (*entities.Redemption, error)
}
