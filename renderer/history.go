package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/clientbook"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the transactions of a client, as listed.
func HistoryMarkdown(client clientbook.Client, txs []clientbook.Transaction, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Transactions of %s", client.Name))
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"ID", "Date", "Type", "Stock", "Quantity", "Price", "Amount"},
		Rows:   [][]string{},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(tx.ID),
			tx.Date.String(),
			tx.Type.String(),
			tx.Stock,
			tx.Quantity.String(),
			tx.Price.Format(currency),
			tx.Amount().Format(currency),
		})
	}
	doc.Table(table)

	return doc.String()
}

// ClientsMarkdown renders the list of clients.
func ClientsMarkdown(clients []clientbook.Client) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Clients")
	if len(clients) == 0 {
		doc.PlainText("No clients.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Name", "ID", "Since"},
		Rows:      [][]string{},
	}
	for _, c := range clients {
		table.Rows = append(table.Rows, []string{c.Name, c.ID, c.CreatedAt.Format("2006-01-02")})
	}
	doc.Table(table)

	return doc.String()
}
