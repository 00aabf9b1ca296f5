package infrastructure

import (
	"context"

	"dahcoins/application"
	"dahcoins/domain/interfaces"
)

// unitOfWork wraps the repository UnitOfWork and adds event publishing on commit
type unitOfWork struct {
	inner                  application.UnitOfWork
	transactionalPublisher *NATSTransactionalPublisher
	ctx                    context.Context
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	u.ctx = ctx
	return u.inner.Begin(ctx)
}

// Commit commits the transaction and flushes events on success
func (u *unitOfWork) Commit() error {
	if err := u.inner.Commit(); err != nil {
		return err
	}

	// Events are best-effort once the transaction has committed
	if u.transactionalPublisher != nil {
		_ = u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return u.inner.Rollback()
}

// Repository getters - delegate to inner UnitOfWork
func (u *unitOfWork) WalletRepository() interfaces.WalletRepository {
	return u.inner.WalletRepository()
}

func (u *unitOfWork) LedgerRepository() interfaces.LedgerRepository {
	return u.inner.LedgerRepository()
}

func (u *unitOfWork) RevenueRepository() interfaces.RevenueRepository {
	return u.inner.RevenueRepository()
}

func (u *unitOfWork) PayoutRepository() interfaces.PayoutRepository {
	return u.inner.PayoutRepository()
}

func (u *unitOfWork) CooldownRepository() interfaces.CooldownRepository {
	return u.inner.CooldownRepository()
}

func (u *unitOfWork) LoginStreakRepository() interfaces.LoginStreakRepository {
	return u.inner.LoginStreakRepository()
}

func (u *unitOfWork) StakeRepository() interfaces.StakeRepository {
	return u.inner.StakeRepository()
}

func (u *unitOfWork) CatalogRepository() interfaces.CatalogRepository {
	return u.inner.CatalogRepository()
}

func (u *unitOfWork) FlashSaleRepository() interfaces.FlashSaleRepository {
	return u.inner.FlashSaleRepository()
}

func (u *unitOfWork) RedemptionRepository() interfaces.RedemptionRepository {
	return u.inner.RedemptionRepository()
}

func (u *unitOfWork) IdempotencyRepository() interfaces.IdempotencyRepository {
	return u.inner.IdempotencyRepository()
}

// EventBus returns the transactional event publisher
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("transactional publisher not configured")
	}
	return u.transactionalPublisher
}
