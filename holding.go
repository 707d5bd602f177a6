package clientbook

// Position is the buy side of a stock held by a client.
//
// It is derived from every Buy of the stock; sells never reduce it.
type Position struct {
	Stock    string
	Quantity Quantity // Quantity is the gross quantity bought.
	Cost     Money    // Cost is the total amount spent on the buys.
	buys     int
	sumPrice Money // sum of per-transaction prices, for the unweighted mean
}

// AverageBuyPrice returns the quantity-weighted average price of the buys.
// It is zero when nothing was bought.
func (p Position) AverageBuyPrice() Money {
	if p.Quantity.IsZero() {
		return Money{}
	}
	return p.Cost.Div(p.Quantity)
}

// meanBuyPrice returns the unweighted mean of the buy prices, and false if
// there was no buy at all.
func (p Position) meanBuyPrice() (Money, bool) {
	if p.buys == 0 {
		return Money{}, false
	}
	return p.sumPrice.Div(Q(p.buys)), true
}

// Positions aggregates the Buy transactions per stock.
//
// Stocks are returned in order of their first appearance in txs, whatever
// the type of that first transaction. Stocks that were never bought are left
// out.
func Positions(txs []Transaction) []Position {
	index := make(map[string]int)
	var order []string
	acc := make(map[string]*Position)

	for _, tx := range txs {
		if _, seen := index[tx.Stock]; !seen {
			index[tx.Stock] = len(order)
			order = append(order, tx.Stock)
		}
		if tx.Type != Buy {
			continue
		}
		p, ok := acc[tx.Stock]
		if !ok {
			p = &Position{Stock: tx.Stock}
			acc[tx.Stock] = p
		}
		p.Quantity = p.Quantity.Add(tx.Quantity)
		p.Cost = p.Cost.Add(tx.Amount())
		p.sumPrice = p.sumPrice.Add(tx.Price)
		p.buys++
	}

	positions := make([]Position, 0, len(acc))
	for _, stock := range order {
		if p, ok := acc[stock]; ok {
			positions = append(positions, *p)
		}
	}
	return positions
}

// StocksHeld returns the stocks with at least one buy, in order of first
// appearance.
func StocksHeld(txs []Transaction) []string {
	positions := Positions(txs)
	stocks := make([]string, 0, len(positions))
	for _, p := range positions {
		stocks = append(stocks, p.Stock)
	}
	return stocks
}
