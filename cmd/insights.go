package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/clientbook"
	"github.com/etnz/clientbook/quote"
	"github.com/etnz/clientbook/renderer"
	"github.com/etnz/clientbook/store"
	"github.com/google/subcommands"
)

// --- insights Command ---

type insightsCmd struct {
	client string
	json   bool
}

func (*insightsCmd) Name() string { return "insights" }
func (*insightsCmd) Synopsis() string {
	return "display the deployed amount, profits and positions of a client"
}
func (*insightsCmd) Usage() string {
	return `cbk insights -c <client> [-json]

  Displays the amount deployed by a client, its realized profit, and the
  unrealized profit of its positions at current market prices. Stocks
  without a current price are left out of the positions.
`
}

func (c *insightsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "c", "", "Client name or id")
	f.BoolVar(&c.json, "json", false, "Print the insights as json")
}

func (c *insightsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	client, err := s.store.ResolveClient(ctx, c.client)
	if err != nil {
		return failure("finding client", err)
	}
	txs, err := s.store.ListTransactions(ctx, client.ID, store.Filter{})
	if err != nil {
		return failure("listing transactions", err)
	}
	prices := quote.Fetch(ctx, s.quotes(), clientbook.StocksHeld(txs), s.cfg.QuoteWorkers)
	insights := clientbook.NewInsights(client, s.cfg.Currency, txs, prices)

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(insights); err != nil {
			return failure("encoding insights", err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.InsightsMarkdown(insights))
	return subcommands.ExitSuccess
}

// --- quote Command ---

type quoteCmd struct {
	client string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display the current price of stocks" }
func (*quoteCmd) Usage() string {
	return `cbk quote [-c <client>] [<stock>...]

  Displays the current price of the given stocks, or else of the stocks held
  by a client, or else of every stock held.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "c", "", "Client name or id")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	var stocks []string
	for _, arg := range f.Args() {
		if stock := clientbook.NormalizeStock(arg); stock != "" {
			stocks = append(stocks, stock)
		}
	}
	var err error
	switch {
	case len(stocks) > 0:
	case c.client != "":
		var client clientbook.Client
		if client, err = s.store.ResolveClient(ctx, c.client); err != nil {
			return failure("finding client", err)
		}
		stocks, err = s.store.ListStocksHeld(ctx, client.ID)
	default:
		stocks, err = s.store.AllStocksHeld(ctx)
	}
	if err != nil {
		return failure("listing stocks", err)
	}
	if len(stocks) == 0 {
		fmt.Fprintln(stdout, renderer.NoPositions)
		return subcommands.ExitSuccess
	}

	prices := quote.Fetch(ctx, s.quotes(), stocks, s.cfg.QuoteWorkers)
	printMarkdown(renderer.QuotesMarkdown(stocks, prices, s.cfg.Currency))
	return subcommands.ExitSuccess
}
