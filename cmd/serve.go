package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/clientbook/quote"
	"github.com/etnz/clientbook/server"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the http api" }
func (*serveCmd) Usage() string {
	return `cbk serve [-port <port>]

  Serves the clients, transactions and insights http api, and refreshes the
  quotes of held stocks on the CLIENTBOOK_QUOTE_REFRESH schedule.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "Port to listen on. Overrides CLIENTBOOK_PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()
	if c.port > 0 {
		s.cfg.Port = c.port
	}

	quotes := s.quotes()
	sched, err := scheduleRefresh(s, quotes)
	if err != nil {
		return failure("scheduling quote refresh", err)
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	srv := server.New(server.Config{
		Port:     s.cfg.Port,
		Log:      s.log,
		Store:    s.store,
		Quotes:   quotes,
		Currency: s.cfg.Currency,
		Workers:  s.cfg.QuoteWorkers,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return failure("serving", err)
		}
	case <-quit:
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		s.log.Error().Err(err).Msg("Server forced to shutdown")
	}
	fmt.Fprintln(os.Stderr, "Server stopped")
	return subcommands.ExitSuccess
}

// scheduleRefresh registers the refresh of the quotes of every held stock.
func scheduleRefresh(s *session, quotes *quote.Cache) (*cron.Cron, error) {
	log := s.log.With().Str("component", "scheduler").Logger()
	sched := cron.New()
	_, err := sched.AddFunc(s.cfg.QuoteRefresh, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		stocks, err := s.store.AllStocksHeld(ctx)
		if err != nil {
			log.Error().Err(err).Str("job", "quote-refresh").Msg("Job failed")
			return
		}
		n := quotes.Refresh(ctx, stocks, s.cfg.QuoteWorkers)
		log.Debug().Str("job", "quote-refresh").Int("stocks", len(stocks)).Int("quotes", n).Msg("Job completed")
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("schedule", s.cfg.QuoteRefresh).Str("job", "quote-refresh").Msg("Job registered")
	return sched, nil
}
