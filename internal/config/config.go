// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     int
	DBPath   string
	APIToken string
	LogLevel string

	// ReportingCurrency is the single currency all computed values are
	// expressed in.
	ReportingCurrency string
	// ExchangeSuffix is appended to bare symbols (e.g. ".NS" for NSE).
	ExchangeSuffix string
	// MaxConcurrentFetches bounds parallel quote requests per refresh cycle.
	MaxConcurrentFetches int
	// RefreshSchedule is an optional cron spec (e.g. "@every 15m") for
	// automatic refresh cycles. Empty disables scheduling.
	RefreshSchedule string
	// SeedDemo populates the portfolio with demo lots on startup when the
	// database is empty.
	SeedDemo bool
}

// Load reads configuration from the environment, consulting a .env file when
// present (missing .env is not an error).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                 getEnvInt("PORT", 8080),
		DBPath:               getEnv("DB_PATH", "portfolio.db"),
		APIToken:             getEnv("API_TOKEN", "dev-token"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		ReportingCurrency:    getEnv("REPORTING_CURRENCY", "INR"),
		ExchangeSuffix:       getEnv("EXCHANGE_SUFFIX", ".NS"),
		MaxConcurrentFetches: getEnvInt("MAX_CONCURRENT_FETCHES", 4),
		RefreshSchedule:      getEnv("REFRESH_SCHEDULE", ""),
		SeedDemo:             getEnvBool("SEED_DEMO", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
