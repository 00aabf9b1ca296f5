package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"dahcoins/application"
	"dahcoins/config"
	"dahcoins/database"
	"dahcoins/domain/interfaces"
	"dahcoins/infrastructure"
	"dahcoins/infrastructure/observability"
	"dahcoins/server"

	logrus "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting DAH Coins service...")

	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	// Initialize metrics
	log.Println("Initializing metrics...")
	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Every exit path below releases what was opened so far
	var opened closers
	opened.add("metrics", func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return observability.ShutdownGlobalMetrics(shutdownCtx)
	})

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		opened.closeAll()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	opened.add("database connection", func() error {
		db.Close()
		return nil
	})

	// Initialize event publishing
	var eventPublisher interfaces.EventPublisher
	if cfg.NATSServers != "" {
		log.Printf("Connecting to NATS at %s...", cfg.NATSServers)
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			opened.closeAll()
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		opened.add("NATS connection", natsClient.Close)
		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := natsPublisher.EnsureDomainEventStream(); err != nil {
			opened.closeAll()
			return fmt.Errorf("failed to ensure event stream: %w", err)
		}
		eventPublisher = natsPublisher
		log.Println("NATS connection established successfully")
	} else {
		log.Println("NATS_SERVERS not set, events will be dropped")
		eventPublisher = infrastructure.NewNoopEventPublisher()
	}

	// Initialize cooldown storage
	var cooldownStore interfaces.CooldownRepository
	if cfg.UseRedisCooldowns() {
		log.Printf("Connecting to Redis at %s...", cfg.RedisAddr)
		redisClient, err := infrastructure.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			opened.closeAll()
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		opened.add("Redis client", redisClient.Close)
		cooldownStore = infrastructure.NewRedisCooldownStore(redisClient)
		log.Println("Redis connection established successfully")
	}

	// Initialize unit of work factory and handlers
	log.Println("Initializing unit of work factory...")
	uowFactory := infrastructure.NewUnitOfWorkFactoryWithCooldowns(db, eventPublisher, cooldownStore)
	economyHandler := application.NewEconomyHandler(uowFactory, cfg)

	// Start background workers
	log.Println("Starting maturity sweep worker...")
	sweepWorker := application.NewMaturitySweepWorker(economyHandler, cfg.MaturitySweepSchedule)
	stopSweep, err := sweepWorker.Start(ctx)
	if err != nil {
		opened.closeAll()
		return fmt.Errorf("failed to start maturity sweep worker: %w", err)
	}

	// Start HTTP server
	httpServer := server.NewServer(cfg, economyHandler)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Start()
	}()

	log.Printf("Service is running in %s mode...", cfg.Environment)
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			log.Printf("HTTP server error: %v", err)
		}
	}

	// Cleanup resources
	log.Println("Shutting down service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	stopSweep()
	opened.closeAll()

	log.Println("Shutdown completed")
	return nil
}

func configureLogging(cfg *config.Config) {
	switch cfg.Environment {
	case "production":
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}
}
