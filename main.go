package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dahcoins/application"
	"dahcoins/application/dto"
	"dahcoins/cmd"
	"dahcoins/config"
	"dahcoins/database"
	"dahcoins/domain/entities"
	"dahcoins/infrastructure"
)

func main() {
	// Check for admin subcommands
	if len(os.Args) > 1 {
		var err error
		switch os.Args[1] {
		case "migrate":
			err = handleMigrationCommand()
		case "credit":
			err = handleCreditCommand()
		case "flash-sale":
			err = handleFlashSaleCommand()
		default:
			log.Fatalf("unknown command: %s", os.Args[1])
		}
		if err != nil {
			log.Fatalf("%s error: %v", os.Args[1], err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error:", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: dahcoins migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleCreditCommand grants coins outside the governor, e.g. for support refunds
func handleCreditCommand() error {
	if len(os.Args) < 5 {
		return fmt.Errorf("usage: dahcoins credit username age amount [event]")
	}
	age, err := strconv.Atoi(os.Args[3])
	if err != nil {
		return fmt.Errorf("invalid age: %w", err)
	}
	amount, err := strconv.ParseInt(os.Args[4], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	event := "admin_credit"
	if len(os.Args) > 5 {
		event = os.Args[5]
	}

	ctx := context.Background()
	cfg := config.Get()
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	// Admin commands do not publish events
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher())
	handler := application.NewEconomyHandler(uowFactory, cfg)

	wallet, err := handler.AddCoins(ctx, dto.AddCoinsRequest{
		Username: os.Args[2],
		Age:      age,
		Event:    event,
		Amount:   amount,
	})
	if err != nil {
		return err
	}
	log.Printf("%s now has %d available and %d locked", wallet.Username, wallet.Available, wallet.LockedForCollege)
	return nil
}

// handleFlashSaleCommand schedules a discount window for an item starting now
func handleFlashSaleCommand() error {
	if len(os.Args) < 6 {
		return fmt.Errorf("usage: dahcoins flash-sale item-id discount-percent max-claims duration")
	}
	itemID := os.Args[2]
	discount, err := strconv.Atoi(os.Args[3])
	if err != nil {
		return fmt.Errorf("invalid discount: %w", err)
	}
	maxClaims, err := strconv.Atoi(os.Args[4])
	if err != nil {
		return fmt.Errorf("invalid max claims: %w", err)
	}
	duration, err := time.ParseDuration(os.Args[5])
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}

	now := time.Now()
	sale := &entities.FlashSale{
		ItemID:          itemID,
		DiscountPercent: discount,
		StartTime:       now,
		EndTime:         now.Add(duration),
		MaxClaims:       maxClaims,
	}
	if err := sale.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	cfg := config.Get()
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	uow := infrastructure.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher()).Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	item, err := uow.CatalogRepository().GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %s: %w", itemID, entities.ErrNotFound)
	}
	if err := uow.FlashSaleRepository().Create(ctx, sale); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	log.Printf("Flash sale %d: %s at %d%% off (%d claims) until %s",
		sale.ID, item.Name, discount, maxClaims, sale.EndTime.Format(time.RFC3339))
	return nil
}
