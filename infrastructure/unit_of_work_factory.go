package infrastructure

import (
	"dahcoins/application"
	"dahcoins/database"
	"dahcoins/domain/interfaces"
	"dahcoins/repository"
)

// UnitOfWorkFactory implements the application.UnitOfWorkFactory interface.
// Every unit of work it creates buffers events until commit.
type UnitOfWorkFactory struct {
	repoFactory interface {
		CreateWithPublisher(publisher interfaces.EventPublisher) application.UnitOfWork
	}
	eventPublisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory
func NewUnitOfWorkFactory(db *database.DB, eventPublisher interfaces.EventPublisher) *UnitOfWorkFactory {
	return NewUnitOfWorkFactoryWithCooldowns(db, eventPublisher, nil)
}

// NewUnitOfWorkFactoryWithCooldowns creates a factory whose units of work keep cooldowns in store.
// A nil store keeps cooldowns in Postgres.
func NewUnitOfWorkFactoryWithCooldowns(db *database.DB, eventPublisher interfaces.EventPublisher, store interfaces.CooldownRepository) *UnitOfWorkFactory {
	repoFactory := repository.NewUnitOfWorkFactory(db)
	if store != nil {
		repoFactory = repoFactory.WithCooldownStore(store)
	}
	return &UnitOfWorkFactory{
		repoFactory:    repoFactory,
		eventPublisher: eventPublisher,
	}
}

// Create creates a new UnitOfWork with a transactional event publisher
func (f *UnitOfWorkFactory) Create() application.UnitOfWork {
	transactionalPublisher := NewNATSTransactionalPublisher(f.eventPublisher)

	return &unitOfWork{
		inner:                  f.repoFactory.CreateWithPublisher(transactionalPublisher),
		transactionalPublisher: transactionalPublisher,
	}
}
