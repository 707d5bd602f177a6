package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type importLegacyCmd struct {
	from string
}

func (*importLegacyCmd) Name() string     { return "import-legacy" }
func (*importLegacyCmd) Synopsis() string { return "import clients and transactions from a legacy database" }
func (*importLegacyCmd) Usage() string {
	return `cbk import-legacy -from <portfolio.db>

  Imports a legacy sqlite database, where transactions reference clients by
  name, into the record store. Clients are matched by name.
`
}

func (c *importLegacyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Path to the legacy database")
}

func (c *importLegacyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	stats, err := s.store.ImportLegacy(ctx, c.from)
	if err != nil {
		return failure("importing legacy database", err)
	}
	fmt.Fprintf(stdout, "Imported %d transactions, %d new clients, %d existing clients\n",
		stats.Transactions, stats.Clients, stats.Reused)
	return subcommands.ExitSuccess
}
