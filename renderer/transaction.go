package renderer

import (
	"fmt"

	"github.com/etnz/clientbook"
)

// Transaction renders a transaction to a one line string.
func Transaction(tx clientbook.Transaction, currency string) string {
	switch tx.Type {
	case clientbook.Buy:
		return fmt.Sprintf("#%d bought %s %s at %s for %s on %s", tx.ID, tx.Quantity, tx.Stock,
			tx.Price.Format(currency), tx.Amount().Format(currency), tx.Date)
	case clientbook.Sell:
		return fmt.Sprintf("#%d sold %s %s at %s for %s on %s", tx.ID, tx.Quantity, tx.Stock,
			tx.Price.Format(currency), tx.Amount().Format(currency), tx.Date)
	default:
		return fmt.Sprintf("#%d %s %s", tx.ID, tx.Type, tx.Stock)
	}
}
