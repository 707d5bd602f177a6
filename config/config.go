// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	DBPath         string        // DBPath is the sqlite record store file.
	Currency       string        // Currency is the ISO code used to format amounts.
	ExchangeSuffix string        // ExchangeSuffix is appended to tickers for quote lookups (e.g. ".NS").
	QuoteSource    string        // QuoteSource is "yfinance" or "chart".
	QuoteTTL       time.Duration // QuoteTTL is how long a fetched quote is reused.
	QuoteWorkers   int           // QuoteWorkers bounds concurrent quote lookups.
	QuoteRefresh   string        // QuoteRefresh is the cron spec of the quote cache refresh in serve mode.
	Port           int
	LogLevel       string
	LogPretty      bool
}

// Quote sources.
const (
	SourceYFinance = "yfinance"
	SourceChart    = "chart"
)

// Load reads configuration from environment variables, after loading a .env
// file if it exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:         getEnv("CLIENTBOOK_DB", "clientbook.db"),
		Currency:       strings.ToUpper(getEnv("CLIENTBOOK_CURRENCY", "INR")),
		ExchangeSuffix: getEnv("CLIENTBOOK_EXCHANGE_SUFFIX", ".NS"),
		QuoteSource:    getEnv("CLIENTBOOK_QUOTE_SOURCE", SourceYFinance),
		QuoteTTL:       getEnvAsDuration("CLIENTBOOK_QUOTE_TTL", 60*time.Second),
		QuoteWorkers:   getEnvAsInt("CLIENTBOOK_QUOTE_WORKERS", 4),
		QuoteRefresh:   getEnv("CLIENTBOOK_QUOTE_REFRESH", "@every 5m"),
		Port:           getEnvAsInt("CLIENTBOOK_PORT", 8080),
		LogLevel:       getEnv("CLIENTBOOK_LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("CLIENTBOOK_LOG_PRETTY", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	switch c.QuoteSource {
	case SourceYFinance, SourceChart:
	default:
		return fmt.Errorf("unknown quote source %q, want %q or %q", c.QuoteSource, SourceYFinance, SourceChart)
	}
	if c.QuoteWorkers < 1 {
		return fmt.Errorf("quote workers must be at least 1, got %d", c.QuoteWorkers)
	}
	if c.QuoteTTL < 0 {
		return fmt.Errorf("quote ttl must not be negative, got %v", c.QuoteTTL)
	}
	if _, err := cron.ParseStandard(c.QuoteRefresh); err != nil {
		return fmt.Errorf("invalid quote refresh schedule %q: %w", c.QuoteRefresh, err)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
