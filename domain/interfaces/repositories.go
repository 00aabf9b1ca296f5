package interfaces

import (
	"context"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"
)

// WalletRepository defines the interface for wallet balance storage
type WalletRepository interface {
	// Get returns the wallet or nil if the user has never had a balance change
	Get(ctx context.Context, username string) (*entities.Wallet, error)

	// GetForUpdate creates the wallet if needed and locks its row for the rest of the transaction
	GetForUpdate(ctx context.Context, username string) (*entities.Wallet, error)

	// ApplyDelta atomically adds the deltas; returns ErrInsufficientFunds if available would go negative
	ApplyDelta(ctx context.Context, username string, availableDelta, lockedDelta int64) (*entities.Wallet, error)
}

// LedgerRepository defines the interface for the append-only ledger
type LedgerRepository interface {
	Append(ctx context.Context, entry *entities.LedgerEntry) error
	GetByUser(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error)
	GetRecent(ctx context.Context, limit int) ([]*entities.LedgerEntry, error)

	// SumDeltas returns the sum of available and locked deltas for the user
	SumDeltas(ctx context.Context, username string) (int64, error)
}

// RevenueRepository defines the interface for ad revenue aggregation
type RevenueRepository interface {
	// AddRevenue increments the per-ad and global totals and returns the new global total
	AddRevenue(ctx context.Context, adID string, amount float64) (float64, error)
	RecordEvent(ctx context.Context, event *entities.AdEvent) error
	GetTotalRevenue(ctx context.Context) (float64, error)
	GetAdRevenue(ctx context.Context, adID string) (float64, error)
}

// PayoutRepository defines the interface for issuance accounting
type PayoutRepository interface {
	// GetUsage returns coins already paid to the user for the given day and month keys
	GetUsage(ctx context.Context, username, dayKey, monthKey string) (daily int64, monthly int64, err error)
	IncrementUsage(ctx context.Context, username, dayKey, monthKey string, coins int64) error
	GetTotalPaidOut(ctx context.Context) (int64, error)

	// AddToTotal increments total paid out only if the result stays within ceiling
	AddToTotal(ctx context.Context, coins int64, ceiling float64) (bool, error)

	AppendHistory(ctx context.Context, record *entities.PayoutRecord) error
	TrimHistory(ctx context.Context, keep int) error
	GetHistory(ctx context.Context, limit int) ([]*entities.PayoutRecord, error)
	CountHistory(ctx context.Context) (int64, error)
}

// CooldownRepository defines the interface for per-user action cooldowns
type CooldownRepository interface {
	// GetExpiry returns when the cooldown ends, or nil if none was ever set
	GetExpiry(ctx context.Context, username string, action entities.Action) (*time.Time, error)
	SetExpiry(ctx context.Context, username string, action entities.Action, expiresAt time.Time) error
}

// LoginStreakRepository defines the interface for daily check-in state
type LoginStreakRepository interface {
	Get(ctx context.Context, username string) (*entities.LoginStreak, error)
	Upsert(ctx context.Context, streak *entities.LoginStreak) error
}

// StakeRepository defines the interface for stake persistence
type StakeRepository interface {
	Create(ctx context.Context, stake *entities.Stake) error
	GetByID(ctx context.Context, id int64) (*entities.Stake, error)
	GetByUser(ctx context.Context, username string) ([]*entities.Stake, error)

	// CompleteMatured flips the user's active stakes with end_time <= now and returns them
	CompleteMatured(ctx context.Context, username string, now time.Time) ([]*entities.Stake, error)

	// CompleteAllMatured does the same across every user
	CompleteAllMatured(ctx context.Context, now time.Time) ([]*entities.Stake, error)

	// MarkClaimed transitions completed -> claimed; false if the stake was not completed
	MarkClaimed(ctx context.Context, id int64, claimedAt time.Time) (bool, error)
}

// CatalogRepository defines the interface for the reward catalog
type CatalogRepository interface {
	GetItem(ctx context.Context, itemID string) (*entities.RewardItem, error)
	GetAll(ctx context.Context) ([]*entities.RewardItem, error)
	GetByCategory(ctx context.Context, category entities.ItemCategory) ([]*entities.RewardItem, error)
	GetFeatured(ctx context.Context) ([]*entities.RewardItem, error)

	// DecrementStock takes one unit of a stock-limited item; false if none remain
	DecrementStock(ctx context.Context, itemID string) (bool, error)
}

// FlashSaleRepository defines the interface for flash sales
type FlashSaleRepository interface {
	Create(ctx context.Context, sale *entities.FlashSale) error
	GetActive(ctx context.Context, now time.Time) ([]*entities.FlashSale, error)
	GetActiveForItem(ctx context.Context, itemID string, now time.Time) (*entities.FlashSale, error)

	// Claim takes one claim if the sale is open at now; false if exhausted or closed
	Claim(ctx context.Context, saleID int64, now time.Time) (bool, error)
}

// RedemptionRepository defines the interface for redemption records
type RedemptionRepository interface {
	Create(ctx context.Context, redemption *entities.Redemption) error
	GetByID(ctx context.Context, id int64) (*entities.Redemption, error)
	GetByUser(ctx context.Context, username string) ([]*entities.Redemption, error)

	// UpdateStatus moves a redemption from one status to another; false if it was not in from
	UpdateStatus(ctx context.Context, id int64, from, to entities.RedemptionStatus) (bool, error)
}

// IdempotencyRepository defines the interface for client-supplied request keys
type IdempotencyRepository interface {
	// Reserve claims key for the operation; when the key was used before it returns false and the stored response
	Reserve(ctx context.Context, key, username, operation string) (reserved bool, response []byte, err error)
	Complete(ctx context.Context, key string, response []byte) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
