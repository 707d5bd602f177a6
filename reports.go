package clientbook

// Insights gathers the portfolio figures of a client.
type Insights struct {
	Client     Client           `json:"client"`
	Currency   string           `json:"currency"`
	Deployed   Money            `json:"deployed_amount"`
	Realized   Money            `json:"realized_profit"`
	Positions  []PositionReport `json:"positions"`
	Unrealized Money            `json:"unrealized_profit"`
	Remaining  Money            `json:"remaining_value"`
	Missing    []string         `json:"missing_quotes,omitempty"` // Missing lists stocks held without a current price.
}

// NewInsights computes the insights of a client from its transactions and
// the current prices.
func NewInsights(client Client, currency string, txs []Transaction, quotes Quotes) *Insights {
	if quotes == nil {
		quotes = NoQuotes
	}
	positions := UnrealizedPositions(txs, quotes)
	deployed := DeployedAmount(txs)
	unrealized := TotalUnrealized(positions)

	var missing []string
	for _, stock := range StocksHeld(txs) {
		if _, ok := quotes.Price(stock); !ok {
			missing = append(missing, stock)
		}
	}

	return &Insights{
		Client:     client,
		Currency:   currency,
		Deployed:   deployed,
		Realized:   RealizedProfit(txs),
		Positions:  positions,
		Unrealized: unrealized,
		Remaining:  RemainingValue(deployed, unrealized),
		Missing:    missing,
	}
}

// HasPositions reports whether at least one position could be valued.
func (i *Insights) HasPositions() bool { return len(i.Positions) > 0 }
