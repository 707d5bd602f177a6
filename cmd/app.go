// Package cmd implements the CLI application to manage client portfolios.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/clientbook/config"
	"github.com/etnz/clientbook/logger"
	"github.com/etnz/clientbook/quote"
	"github.com/etnz/clientbook/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists every subcommand of the application by group.
var Commands = map[string][]subcommands.Command{
	"clients": {
		&clientAddCmd{},
		&clientRenameCmd{},
		&clientDeleteCmd{},
		&clientsCmd{},
	},
	"transactions": {
		&tradeCmd{typ: "buy"},
		&tradeCmd{typ: "sell"},
		&txUpdateCmd{},
		&txDeleteCmd{},
		&historyCmd{},
		&importLegacyCmd{},
	},
	"reports": {
		&insightsCmd{},
		&quoteCmd{},
	},
	"server": {
		&serveCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dbPath   = flag.String("db", "", "Path to the sqlite record store. Overrides CLIENTBOOK_DB.")
	currency = flag.String("currency", "", "ISO code of the currency of amounts. Overrides CLIENTBOOK_CURRENCY.")
	verbose  = flag.Bool("v", false, "Log debug messages.")
	rawMD    = flag.Bool("raw", false, "Print reports as raw markdown instead of rendering them.")
)

// stdout receives reports, it is replaced in tests.
var stdout io.Writer = os.Stdout

// newSource creates the price source of the configuration.
var newSource = func(cfg *config.Config, log zerolog.Logger) quote.Source {
	if cfg.QuoteSource == config.SourceChart {
		opts := quote.ChartOptions{Suffix: cfg.ExchangeSuffix, CacheFor: cfg.QuoteTTL, Log: log}
		// short lived commands share quotes through the disk cache.
		if dir, err := os.UserCacheDir(); err == nil && cfg.QuoteTTL > 0 {
			opts.CacheDir = filepath.Join(dir, "clientbook")
		}
		return quote.NewChart(opts)
	}
	return quote.NewYFinance(cfg.ExchangeSuffix, log)
}

// loadConfig loads the configuration, overridden by the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *currency != "" {
		cfg.Currency = strings.ToUpper(*currency)
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// session holds what a command needs to run.
type session struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Store
}

// openSession loads the configuration and opens the record store.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)
	st, err := store.Open(ctx, cfg.DBPath, log)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, store: st}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn().Err(err).Msg("failed to close the record store")
	}
}

// quotes returns the cached price source of the session.
func (s *session) quotes() *quote.Cache {
	return quote.NewCache(newSource(s.cfg, s.log), s.cfg.QuoteTTL, s.log)
}

// start opens a session for a command, printing the error if it fails.
func start(ctx context.Context) (*session, subcommands.ExitStatus) {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return s, subcommands.ExitSuccess
}

// failure prints err and returns the matching exit status.
func failure(what string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	return subcommands.ExitFailure
}
