package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"dahcoins/database"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	DatabaseName string `envconfig:"DATABASE_NAME"`

	// HTTP server
	HTTPAddr       string  `envconfig:"HTTP_ADDR" default:":8080"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`

	// NATS configuration, empty disables event publishing
	NATSServers string `envconfig:"NATS_SERVERS"`

	// Cooldown storage: "postgres" or "redis"
	CooldownBackend string `envconfig:"COOLDOWN_BACKEND" default:"postgres"`
	RedisAddr       string `envconfig:"REDIS_ADDR" default:"redis:6379"`

	// Issuance limits
	DailyUserCap         int64   `envconfig:"DAILY_USER_CAP" default:"100"`
	MonthlyUserCap       int64   `envconfig:"MONTHLY_USER_CAP" default:"2000"`
	PlatformReserveRatio float64 `envconfig:"PLATFORM_RESERVE_RATIO" default:"0.4"`

	// Ad pricing in dollars
	AdCPM float64 `envconfig:"AD_CPM" default:"2.50"`
	AdCPC float64 `envconfig:"AD_CPC" default:"0.25"`

	// Background jobs
	MaturitySweepSchedule string `envconfig:"MATURITY_SWEEP_SCHEDULE" default:"@every 1m"`

	// OpenTelemetry configuration
	OTelEnabled              bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTelExporterType         string `envconfig:"OTEL_EXPORTER_TYPE" default:"console"`
	OTelOTLPEndpoint         string `envconfig:"OTEL_OTLP_ENDPOINT" default:"otel-collector:4317"`
	OTelServiceName          string `envconfig:"OTEL_SERVICE_NAME" default:"dahcoins"`
	OTelExportIntervalMillis int    `envconfig:"OTEL_EXPORT_INTERVAL_MILLIS" default:"10000"`

	// Environment
	Environment string `envconfig:"ENVIRONMENT" default:"development"` // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// UseRedisCooldowns reports whether cooldowns live in Redis
func (c *Config) UseRedisCooldowns() bool {
	return strings.EqualFold(c.CooldownBackend, "redis")
}

// load loads configuration from environment variables
func load() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.CooldownBackend) {
	case "postgres", "redis":
	default:
		return fmt.Errorf("COOLDOWN_BACKEND must be postgres or redis, got %q", c.CooldownBackend)
	}

	if c.PlatformReserveRatio < 0 || c.PlatformReserveRatio >= 1 {
		return fmt.Errorf("PLATFORM_RESERVE_RATIO must be in [0, 1), got %v", c.PlatformReserveRatio)
	}
	if c.DailyUserCap <= 0 || c.MonthlyUserCap <= 0 {
		return fmt.Errorf("DAILY_USER_CAP and MONTHLY_USER_CAP must be positive")
	}

	if c.Environment == "test" {
		return nil
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	// If DatabaseName is provided, ensure it's not empty
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	return nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:           "test",
		HTTPAddr:              ":0",
		RateLimitRPS:          1000,
		RateLimitBurst:        1000,
		CooldownBackend:       "postgres",
		DailyUserCap:          100,
		MonthlyUserCap:        2000,
		PlatformReserveRatio:  0.4,
		AdCPM:                 2.50,
		AdCPC:                 0.25,
		MaturitySweepSchedule: "@every 1m",
		OTelExporterType:      "none",
		OTelServiceName:       "dahcoins-test",
	}
}
