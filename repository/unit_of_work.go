package repository

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/application"
	"dahcoins/database"
	"dahcoins/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db             *database.DB
	tx             pgx.Tx
	ctx            context.Context
	eventPublisher interfaces.EventPublisher
	cooldownStore  interfaces.CooldownRepository

	walletRepo      interfaces.WalletRepository
	ledgerRepo      interfaces.LedgerRepository
	revenueRepo     interfaces.RevenueRepository
	payoutRepo      interfaces.PayoutRepository
	cooldownRepo    interfaces.CooldownRepository
	loginStreakRepo interfaces.LoginStreakRepository
	stakeRepo       interfaces.StakeRepository
	catalogRepo     interfaces.CatalogRepository
	flashSaleRepo   interfaces.FlashSaleRepository
	redemptionRepo  interfaces.RedemptionRepository
	idempotencyRepo interfaces.IdempotencyRepository
}

// UnitOfWorkFactory creates repository-level units of work
type UnitOfWorkFactory struct {
	db            *database.DB
	cooldownStore interfaces.CooldownRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db: db,
	}
}

// WithCooldownStore makes every unit of work use store for cooldowns instead of the cooldown table.
// The store is not transactional.
func (f *UnitOfWorkFactory) WithCooldownStore(store interfaces.CooldownRepository) *UnitOfWorkFactory {
	f.cooldownStore = store
	return f
}

// CreateWithPublisher creates a new UnitOfWork that exposes publisher as its event bus
func (f *UnitOfWorkFactory) CreateWithPublisher(publisher interfaces.EventPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:             f.db,
		eventPublisher: publisher,
		cooldownStore:  f.cooldownStore,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.walletRepo = NewWalletRepositoryScoped(tx)
	u.ledgerRepo = NewLedgerRepositoryScoped(tx)
	u.revenueRepo = NewRevenueRepositoryScoped(tx)
	u.payoutRepo = NewPayoutRepositoryScoped(tx)
	u.loginStreakRepo = NewLoginStreakRepositoryScoped(tx)
	u.stakeRepo = NewStakeRepositoryScoped(tx)
	u.catalogRepo = NewCatalogRepositoryScoped(tx)
	u.flashSaleRepo = NewFlashSaleRepositoryScoped(tx)
	u.redemptionRepo = NewRedemptionRepositoryScoped(tx)
	u.idempotencyRepo = NewIdempotencyRepositoryScoped(tx)
	if u.cooldownStore != nil {
		u.cooldownRepo = u.cooldownStore
	} else {
		u.cooldownRepo = NewCooldownRepositoryScoped(tx)
	}

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

func (u *unitOfWork) WalletRepository() interfaces.WalletRepository {
	if u.walletRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.walletRepo
}

func (u *unitOfWork) LedgerRepository() interfaces.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

func (u *unitOfWork) RevenueRepository() interfaces.RevenueRepository {
	if u.revenueRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.revenueRepo
}

func (u *unitOfWork) PayoutRepository() interfaces.PayoutRepository {
	if u.payoutRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.payoutRepo
}

func (u *unitOfWork) CooldownRepository() interfaces.CooldownRepository {
	if u.cooldownRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.cooldownRepo
}

func (u *unitOfWork) LoginStreakRepository() interfaces.LoginStreakRepository {
	if u.loginStreakRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.loginStreakRepo
}

func (u *unitOfWork) StakeRepository() interfaces.StakeRepository {
	if u.stakeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.stakeRepo
}

func (u *unitOfWork) CatalogRepository() interfaces.CatalogRepository {
	if u.catalogRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.catalogRepo
}

func (u *unitOfWork) FlashSaleRepository() interfaces.FlashSaleRepository {
	if u.flashSaleRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.flashSaleRepo
}

func (u *unitOfWork) RedemptionRepository() interfaces.RedemptionRepository {
	if u.redemptionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.redemptionRepo
}

func (u *unitOfWork) IdempotencyRepository() interfaces.IdempotencyRepository {
	if u.idempotencyRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.idempotencyRepo
}

// EventBus returns the event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.eventPublisher == nil {
		panic("event publisher not configured")
	}
	return u.eventPublisher
}
