package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/clientbook"
	md "github.com/nao1215/markdown"
)

// NoPositions is printed when no position can be valued.
const NoPositions = "No stocks held currently."

// InsightsMarkdown renders the portfolio insights of a client.
func InsightsMarkdown(in *clientbook.Insights) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := in.Currency

	doc.H1(fmt.Sprintf("Portfolio of %s", in.Client.Name))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Remaining Value"),
			md.Bold(in.Remaining.Format(cur)),
		},
		Rows: [][]string{
			{"Deployed Amount", in.Deployed.Format(cur)},
			{"Realized Profit", in.Realized.SignedFormat(cur)},
			{"Unrealized Profit", in.Unrealized.SignedFormat(cur)},
		},
	})

	doc.H2("Positions")
	if !in.HasPositions() {
		doc.PlainText(NoPositions)
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Stock", "Average Buy Price", "Current Price", "Quantity", "Unrealized Profit"},
			Rows:   [][]string{},
		}
		for _, p := range in.Positions {
			table.Rows = append(table.Rows, []string{
				p.Stock,
				p.AverageBuyPrice.Format(cur),
				p.CurrentPrice.Format(cur),
				p.Quantity.String(),
				p.UnrealizedProfit.SignedFormat(cur),
			})
		}
		doc.Table(table)
	}

	if len(in.Missing) > 0 {
		doc.PlainText(fmt.Sprintf("No current price for %s.", strings.Join(in.Missing, ", ")))
	}

	return doc.String()
}

// QuotesMarkdown renders the current price of stocks, in the given order.
func QuotesMarkdown(stocks []string, prices clientbook.Quotes, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Quotes")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Stock", "Price"},
		Rows:      [][]string{},
	}
	for _, stock := range stocks {
		cell := "n/a"
		if p, ok := prices.Price(stock); ok {
			cell = p.Format(currency)
		}
		table.Rows = append(table.Rows, []string{stock, cell})
	}
	doc.Table(table)

	return doc.String()
}
