package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/clientbook"
	"github.com/etnz/clientbook/date"
	"github.com/etnz/clientbook/renderer"
	"github.com/etnz/clientbook/store"
	"github.com/google/subcommands"
)

type historyCmd struct {
	client string
	stock  string
	typ    string
	from   string
	to     string
	head   int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the transactions of a client" }
func (*historyCmd) Usage() string {
	return `cbk history -c <client> [-s <stock>] [-t buy|sell] [-from <date>] [-to <date>] [-head <n>]

  Lists the transactions of a client, oldest first, with options for filtering and limiting the output.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "c", "", "Client name or id")
	f.StringVar(&c.stock, "s", "", "Only list transactions of this stock")
	f.StringVar(&c.typ, "t", "", "Only list buys or sells")
	f.StringVar(&c.from, "from", "", "Only list transactions on or after this date")
	f.StringVar(&c.to, "to", "", "Only list transactions on or before this date")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" || c.head < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	filter := store.Filter{Stock: c.stock, Limit: c.head}
	var err error
	if c.typ != "" {
		if filter.Type, err = clientbook.ParseTransactionType(c.typ); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing type: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if filter.Range, err = date.ParseRange(c.from, c.to); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing dates: %v\n", err)
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
	txs, err := s.store.ListTransactions(ctx, client.ID, filter)
	if err != nil {
		return failure("listing transactions", err)
	}
	printMarkdown(renderer.HistoryMarkdown(client, txs, s.cfg.Currency))
	return subcommands.ExitSuccess
}
