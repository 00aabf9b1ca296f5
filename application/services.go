package application

import (
	"dahcoins/domain/interfaces"
	"dahcoins/domain/services"
)

// economyServices are the domain services bound to one unit of work
type economyServices struct {
	ledger     interfaces.LedgerService
	governor   interfaces.EarningGovernor
	revenue    interfaces.RevenueService
	dispatcher interfaces.ActionDispatcher
	staking    interfaces.StakingService
	catalog    interfaces.CatalogService
	redemption interfaces.RedemptionService
}

func newEconomyServices(uow UnitOfWork, governorConfig services.GovernorConfig, revenueConfig services.RevenueConfig) *economyServices {
	bus := uow.EventBus()

	ledger := services.NewLedgerService(uow.WalletRepository(), uow.LedgerRepository(), bus)
	governor := services.NewEarningGovernor(uow.PayoutRepository(), uow.RevenueRepository(), governorConfig)
	catalog := services.NewCatalogService(uow.CatalogRepository(), uow.FlashSaleRepository())

	return &economyServices{
		ledger:   ledger,
		governor: governor,
		revenue:  services.NewRevenueService(uow.RevenueRepository(), bus, revenueConfig),
		dispatcher: services.NewActionDispatcher(
			ledger,
			governor,
			uow.WalletRepository(),
			uow.CooldownRepository(),
			uow.LoginStreakRepository(),
			bus,
		),
		staking: services.NewStakingService(ledger, uow.StakeRepository(), bus),
		catalog: catalog,
		redemption: services.NewRedemptionService(
			catalog,
			uow.CatalogRepository(),
			uow.FlashSaleRepository(),
			uow.RedemptionRepository(),
			uow.WalletRepository(),
			ledger,
			bus,
		),
	}
}
