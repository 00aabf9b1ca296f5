package application

import (
	"context"

	"dahcoins/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	WalletRepository() interfaces.WalletRepository
	LedgerRepository() interfaces.LedgerRepository
	RevenueRepository() interfaces.RevenueRepository
	PayoutRepository() interfaces.PayoutRepository
	CooldownRepository() interfaces.CooldownRepository
	LoginStreakRepository() interfaces.LoginStreakRepository
	StakeRepository() interfaces.StakeRepository
	CatalogRepository() interfaces.CatalogRepository
	FlashSaleRepository() interfaces.FlashSaleRepository
	RedemptionRepository() interfaces.RedemptionRepository
	IdempotencyRepository() interfaces.IdempotencyRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
