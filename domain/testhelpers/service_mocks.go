package testhelpers

import (
	"context"

	"dahcoins/domain/entities"
	"dahcoins/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of LedgerService.
// Entry options are not passed to Called so expectations match on the positional arguments only.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetWallet(ctx context.Context, username string) (*entities.Wallet, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockLedgerService) GetLedger(ctx context.Context, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetTransactionHistory(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) AddCoins(ctx context.Context, username string, age int, event string, base int64, opts ...entities.EntryOption) (*entities.Wallet, error) {
	args := m.Called(ctx, username, age, event, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockLedgerService) SpendCoins(ctx context.Context, username string, amount int64, event string, opts ...entities.EntryOption) (bool, error) {
	args := m.Called(ctx, username, amount, event)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) CreditAvailable(ctx context.Context, username string, amount int64, event string, opts ...entities.EntryOption) (*entities.Wallet, error) {
	args := m.Called(ctx, username, amount, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockLedgerService) SendTip(ctx context.Context, from, to string, amount int64) (*interfaces.TipResult, error) {
	args := m.Called(ctx, from, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.TipResult), args.Error(1)
}

// MockEarningGovernor is a mock implementation of EarningGovernor
type MockEarningGovernor struct {
	mock.Mock
}

func (m *MockEarningGovernor) CanUserEarn(ctx context.Context, username string, requested int64) (*entities.EarnCheck, error) {
	args := m.Called(ctx, username, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EarnCheck), args.Error(1)
}

func (m *MockEarningGovernor) RecordPayout(ctx context.Context, username string, coins int64, reason string) error {
	args := m.Called(ctx, username, coins, reason)
	return args.Error(0)
}

func (m *MockEarningGovernor) GetRevenueStats(ctx context.Context) (*entities.RevenueStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RevenueStats), args.Error(1)
}

func (m *MockEarningGovernor) GetUserLimits(ctx context.Context, username string) (*entities.UserLimits, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserLimits), args.Error(1)
}
