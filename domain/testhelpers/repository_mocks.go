package testhelpers

import (
	"context"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Get(ctx context.Context, username string) (*entities.Wallet, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetForUpdate(ctx context.Context, username string) (*entities.Wallet, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ApplyDelta(ctx context.Context, username string, availableDelta, lockedDelta int64) (*entities.Wallet, error) {
	args := m.Called(ctx, username, availableDelta, lockedDelta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByUser(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) GetRecent(ctx context.Context, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumDeltas(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

// MockRevenueRepository is a mock implementation of RevenueRepository
type MockRevenueRepository struct {
	mock.Mock
}

func (m *MockRevenueRepository) AddRevenue(ctx context.Context, adID string, amount float64) (float64, error) {
	args := m.Called(ctx, adID, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRevenueRepository) RecordEvent(ctx context.Context, event *entities.AdEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRevenueRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRevenueRepository) GetAdRevenue(ctx context.Context, adID string) (float64, error) {
	args := m.Called(ctx, adID)
	return args.Get(0).(float64), args.Error(1)
}

// MockPayoutRepository is a mock implementation of PayoutRepository
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) GetUsage(ctx context.Context, username, dayKey, monthKey string) (int64, int64, error) {
	args := m.Called(ctx, username, dayKey, monthKey)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutRepository) IncrementUsage(ctx context.Context, username, dayKey, monthKey string, coins int64) error {
	args := m.Called(ctx, username, dayKey, monthKey, coins)
	return args.Error(0)
}

func (m *MockPayoutRepository) GetTotalPaidOut(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayoutRepository) AddToTotal(ctx context.Context, coins int64, ceiling float64) (bool, error) {
	args := m.Called(ctx, coins, ceiling)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayoutRepository) AppendHistory(ctx context.Context, record *entities.PayoutRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPayoutRepository) TrimHistory(ctx context.Context, keep int) error {
	args := m.Called(ctx, keep)
	return args.Error(0)
}

func (m *MockPayoutRepository) GetHistory(ctx context.Context, limit int) ([]*entities.PayoutRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PayoutRecord), args.Error(1)
}

func (m *MockPayoutRepository) CountHistory(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCooldownRepository is a mock implementation of CooldownRepository
type MockCooldownRepository struct {
	mock.Mock
}

func (m *MockCooldownRepository) GetExpiry(ctx context.Context, username string, action entities.Action) (*time.Time, error) {
	args := m.Called(ctx, username, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockCooldownRepository) SetExpiry(ctx context.Context, username string, action entities.Action, expiresAt time.Time) error {
	args := m.Called(ctx, username, action, expiresAt)
	return args.Error(0)
}

// MockLoginStreakRepository is a mock implementation of LoginStreakRepository
type MockLoginStreakRepository struct {
	mock.Mock
}

func (m *MockLoginStreakRepository) Get(ctx context.Context, username string) (*entities.LoginStreak, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoginStreak), args.Error(1)
}

func (m *MockLoginStreakRepository) Upsert(ctx context.Context, streak *entities.LoginStreak) error {
	args := m.Called(ctx, streak)
	return args.Error(0)
}

// MockStakeRepository is a mock implementation of StakeRepository
type MockStakeRepository struct {
	mock.Mock
}

func (m *MockStakeRepository) Create(ctx context.Context, stake *entities.Stake) error {
	args := m.Called(ctx, stake)
	return args.Error(0)
}

func (m *MockStakeRepository) GetByID(ctx context.Context, id int64) (*entities.Stake, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) GetByUser(ctx context.Context, username string) ([]*entities.Stake, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) CompleteMatured(ctx context.Context, username string, now time.Time) ([]*entities.Stake, error) {
	args := m.Called(ctx, username, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) CompleteAllMatured(ctx context.Context, now time.Time) ([]*entities.Stake, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) MarkClaimed(ctx context.Context, id int64, claimedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, claimedAt)
	return args.Bool(0), args.Error(1)
}

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetItem(ctx context.Context, itemID string) (*entities.RewardItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RewardItem), args.Error(1)
}

func (m *MockCatalogRepository) GetAll(ctx context.Context) ([]*entities.RewardItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RewardItem), args.Error(1)
}

func (m *MockCatalogRepository) GetByCategory(ctx context.Context, category entities.ItemCategory) ([]*entities.RewardItem, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RewardItem), args.Error(1)
}

func (m *MockCatalogRepository) GetFeatured(ctx context.Context) ([]*entities.RewardItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RewardItem), args.Error(1)
}

func (m *MockCatalogRepository) DecrementStock(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

// MockFlashSaleRepository is a mock implementation of FlashSaleRepository
type MockFlashSaleRepository struct {
	mock.Mock
}

func (m *MockFlashSaleRepository) Create(ctx context.Context, sale *entities.FlashSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockFlashSaleRepository) GetActive(ctx context.Context, now time.Time) ([]*entities.FlashSale, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FlashSale), args.Error(1)
}

func (m *MockFlashSaleRepository) GetActiveForItem(ctx context.Context, itemID string, now time.Time) (*entities.FlashSale, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FlashSale), args.Error(1)
}

func (m *MockFlashSaleRepository) Claim(ctx context.Context, saleID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, saleID, now)
	return args.Bool(0), args.Error(1)
}

// MockRedemptionRepository is a mock implementation of RedemptionRepository
type MockRedemptionRepository struct {
	mock.Mock
}

func (m *MockRedemptionRepository) Create(ctx context.Context, redemption *entities.Redemption) error {
	args := m.Called(ctx, redemption)
	return args.Error(0)
}

func (m *MockRedemptionRepository) GetByID(ctx context.Context, id int64) (*entities.Redemption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Redemption), args.Error(1)
}

func (m *MockRedemptionRepository) GetByUser(ctx context.Context, username string) ([]*entities.Redemption, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Redemption), args.Error(1)
}

func (m *MockRedemptionRepository) UpdateStatus(ctx context.Context, id int64, from, to entities.RedemptionStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockIdempotencyRepository is a mock implementation of IdempotencyRepository
type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) Reserve(ctx context.Context, key, username, operation string) (bool, []byte, error) {
	args := m.Called(ctx, key, username, operation)
	var response []byte
	if args.Get(1) != nil {
		response = args.Get(1).([]byte)
	}
	return args.Bool(0), response, args.Error(2)
}

func (m *MockIdempotencyRepository) Complete(ctx context.Context, key string, response []byte) error {
	args := m.Called(ctx, key, response)
	return args.Error(0)
}
