package clientbook

// The accounting engine.
//
// Every function takes the full transaction history of a single client, in
// any order, and is a pure computation over it.
//
// Two cost bases coexist: realized profit uses the unweighted mean of the buy
// prices, unrealized profit uses the quantity-weighted average. Neither is
// reduced by sells.

// DeployedAmount returns the total amount spent on buys.
func DeployedAmount(txs []Transaction) Money {
	var total Money
	for _, tx := range txs {
		if tx.Type == Buy {
			total = total.Add(tx.Amount())
		}
	}
	return total
}

// RealizedProfit returns the profit booked by sells, rounded to two decimals.
//
// Each sell contributes (sell price - mean buy price) * sold quantity, where
// the mean is the unweighted mean of the prices of every buy of the same
// stock, regardless of dates. A sell of a stock never bought contributes
// nothing.
func RealizedProfit(txs []Transaction) Money {
	positions := make(map[string]Position)
	for _, p := range Positions(txs) {
		positions[p.Stock] = p
	}

	var total Money
	for _, tx := range txs {
		if tx.Type != Sell {
			continue
		}
		mean, ok := positions[tx.Stock].meanBuyPrice()
		if !ok {
			continue
		}
		total = total.Add(tx.Price.Sub(mean).Mul(tx.Quantity))
	}
	return total.Round()
}

// PositionReport is the unrealized profit of a single stock.
type PositionReport struct {
	Stock            string   `json:"stock"`
	AverageBuyPrice  Money    `json:"average_buy_price"`
	CurrentPrice     Money    `json:"current_price"`
	Quantity         Quantity `json:"quantity"`
	UnrealizedProfit Money    `json:"unrealized_profit"`
}

// UnrealizedPositions returns the unrealized profit of every stock bought.
//
// The quantity is the gross quantity bought, and the cost basis is the
// quantity-weighted average buy price. Stocks without a current price are
// skipped. Reports are in order of first appearance of the stock in txs, and
// their amounts are rounded to two decimals.
func UnrealizedPositions(txs []Transaction, quotes Quotes) []PositionReport {
	if quotes == nil {
		quotes = NoQuotes
	}
	reports := []PositionReport{}
	for _, p := range Positions(txs) {
		if p.Quantity.IsZero() {
			continue
		}
		current, ok := quotes.Price(p.Stock)
		if !ok {
			continue
		}
		// current*qty - cost is (current - avg)*qty without the division loss.
		unrealized := current.Mul(p.Quantity).Sub(p.Cost)
		reports = append(reports, PositionReport{
			Stock:            p.Stock,
			AverageBuyPrice:  p.AverageBuyPrice().Round(),
			CurrentPrice:     current.Round(),
			Quantity:         p.Quantity,
			UnrealizedProfit: unrealized.Round(),
		})
	}
	return reports
}

// TotalUnrealized sums the unrealized profit of reports.
func TotalUnrealized(reports []PositionReport) Money {
	var total Money
	for _, r := range reports {
		total = total.Add(r.UnrealizedProfit)
	}
	return total
}

// RemainingValue returns the deployed capital marked to market.
func RemainingValue(deployed, unrealized Money) Money {
	return deployed.Add(unrealized)
}
