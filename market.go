package clientbook

// Quotes gives the current market price of stocks.
//
// A missing price is a normal state (unknown ticker, feed outage, market
// closed without data): the stock is then left out of the unrealized report.
type Quotes interface {
	Price(stock string) (Money, bool)
}

// Prices is a Quotes backed by a map of stock tickers to prices.
type Prices map[string]Money

// Price implements Quotes.
func (p Prices) Price(stock string) (Money, bool) {
	m, ok := p[stock]
	return m, ok
}

// NoQuotes is a Quotes without any price.
var NoQuotes Quotes = Prices(nil)
