package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/clientbook"
	"github.com/etnz/clientbook/date"
	"github.com/etnz/clientbook/renderer"
	"github.com/google/subcommands"
)

// --- buy and sell Commands ---

// tradeCmd records a buy or a sell, depending on typ.
type tradeCmd struct {
	typ      string
	client   string
	date     string
	stock    string
	quantity string
	price    string
}

func (c *tradeCmd) Name() string { return c.typ }
func (c *tradeCmd) Synopsis() string {
	if c.typ == "sell" {
		return "record a sale of shares by a client"
	}
	return "record a purchase of shares by a client"
}
func (c *tradeCmd) Usage() string {
	return fmt.Sprintf(`cbk %s -c <client> -s <stock> -q <quantity> -p <price> [-d <date>]

  Records a %s transaction. The stock is the ticker without exchange suffix.
`, c.typ, c.typ)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "c", "", "Client name or id")
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.stock, "s", "", "Stock ticker")
	f.StringVar(&c.quantity, "q", "", "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share")
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" || c.stock == "" || c.quantity == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	typ, err := clientbook.ParseTransactionType(c.typ)
	if err != nil {
		return failure("parsing transaction type", err)
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return failure("parsing date", err)
	}
	quantity, err := clientbook.ParseQuantity(c.quantity)
	if err != nil {
		return failure("parsing quantity", err)
	}
	price, err := clientbook.ParseMoney(c.price)
	if err != nil {
		return failure("parsing price", err)
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
	tx, err := s.store.AddTransaction(ctx, clientbook.Transaction{
		ClientID: client.ID,
		Stock:    c.stock,
		Type:     typ,
		Quantity: quantity,
		Price:    price,
		Date:     on,
	})
	if err != nil {
		return failure("recording transaction", err)
	}
	fmt.Fprintf(stdout, "%s: %s\n", client.Name, renderer.Transaction(tx, s.cfg.Currency))
	return subcommands.ExitSuccess
}

// --- tx-update Command ---

type txUpdateCmd struct {
	id       int64
	quantity string
	price    string
}

func (*txUpdateCmd) Name() string     { return "tx-update" }
func (*txUpdateCmd) Synopsis() string { return "change the price or quantity of a transaction" }
func (*txUpdateCmd) Usage() string {
	return `cbk tx-update -id <transaction id> [-q <quantity>] [-p <price>]

  Updates the price and quantity of a transaction. Values not given are kept.
`
}

func (c *txUpdateCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Transaction id, as listed by history")
	f.StringVar(&c.quantity, "q", "", "New number of shares")
	f.StringVar(&c.price, "p", "", "New price per share")
}

func (c *txUpdateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 || (c.quantity == "" && c.price == "") {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	tx, err := s.store.Transaction(ctx, c.id)
	if err != nil {
		return failure("finding transaction", err)
	}
	price, quantity := tx.Price, tx.Quantity
	if c.price != "" {
		if price, err = clientbook.ParseMoney(c.price); err != nil {
			return failure("parsing price", err)
		}
	}
	if c.quantity != "" {
		if quantity, err = clientbook.ParseQuantity(c.quantity); err != nil {
			return failure("parsing quantity", err)
		}
	}
	if tx, err = s.store.UpdateTransaction(ctx, c.id, price, quantity); err != nil {
		return failure("updating transaction", err)
	}
	fmt.Fprintf(stdout, "Updated %s\n", renderer.Transaction(tx, s.cfg.Currency))
	return subcommands.ExitSuccess
}

// --- tx-delete Command ---

type txDeleteCmd struct {
	id int64
}

func (*txDeleteCmd) Name() string     { return "tx-delete" }
func (*txDeleteCmd) Synopsis() string { return "delete a transaction" }
func (*txDeleteCmd) Usage() string {
	return `cbk tx-delete -id <transaction id>

  Deletes a transaction.
`
}

func (c *txDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Transaction id, as listed by history")
}

func (c *txDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	if err := s.store.DeleteTransaction(ctx, c.id); err != nil {
		return failure("deleting transaction", err)
	}
	fmt.Fprintf(stdout, "Transaction #%d deleted\n", c.id)
	return subcommands.ExitSuccess
}
