package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env file
	for _, key := range []string{
		"CLIENTBOOK_DB", "CLIENTBOOK_CURRENCY", "CLIENTBOOK_EXCHANGE_SUFFIX", "CLIENTBOOK_QUOTE_SOURCE",
		"CLIENTBOOK_QUOTE_TTL", "CLIENTBOOK_QUOTE_WORKERS", "CLIENTBOOK_QUOTE_REFRESH",
		"CLIENTBOOK_PORT", "CLIENTBOOK_LOG_LEVEL", "CLIENTBOOK_LOG_PRETTY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "clientbook.db", cfg.DBPath)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, ".NS", cfg.ExchangeSuffix)
	assert.Equal(t, SourceYFinance, cfg.QuoteSource)
	assert.Equal(t, 60*time.Second, cfg.QuoteTTL)
	assert.Equal(t, 4, cfg.QuoteWorkers)
	assert.Equal(t, "@every 5m", cfg.QuoteRefresh)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLIENTBOOK_DB", "/tmp/book.db")
	t.Setenv("CLIENTBOOK_CURRENCY", "usd")
	t.Setenv("CLIENTBOOK_EXCHANGE_SUFFIX", ".BO")
	t.Setenv("CLIENTBOOK_QUOTE_SOURCE", "chart")
	t.Setenv("CLIENTBOOK_QUOTE_TTL", "2m")
	t.Setenv("CLIENTBOOK_QUOTE_WORKERS", "8")
	t.Setenv("CLIENTBOOK_QUOTE_REFRESH", "*/10 * * * *")
	t.Setenv("CLIENTBOOK_PORT", "9090")
	t.Setenv("CLIENTBOOK_LOG_PRETTY", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/book.db", cfg.DBPath)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, ".BO", cfg.ExchangeSuffix)
	assert.Equal(t, SourceChart, cfg.QuoteSource)
	assert.Equal(t, 2*time.Minute, cfg.QuoteTTL)
	assert.Equal(t, 8, cfg.QuoteWorkers)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.LogPretty)
}

func TestLoad_InvalidFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLIENTBOOK_QUOTE_WORKERS", "many")
	t.Setenv("CLIENTBOOK_QUOTE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.QuoteWorkers)
	assert.Equal(t, 60*time.Second, cfg.QuoteTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{DBPath: "x.db", QuoteSource: SourceYFinance, QuoteWorkers: 1, QuoteRefresh: "@hourly", Port: 80}
	}
	require.NoError(t, valid().Validate())

	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"no db", func(c *Config) { c.DBPath = "" }},
		{"bad source", func(c *Config) { c.QuoteSource = "bloomberg" }},
		{"no workers", func(c *Config) { c.QuoteWorkers = 0 }},
		{"negative ttl", func(c *Config) { c.QuoteTTL = -time.Second }},
		{"bad schedule", func(c *Config) { c.QuoteRefresh = "every day" }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CLIENTBOOK_PORT", "")
	require.NoError(t, os.Unsetenv("CLIENTBOOK_PORT")) // godotenv never overrides a set variable
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLIENTBOOK_PORT=7070\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}
