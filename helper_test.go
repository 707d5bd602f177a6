package clientbook

import (
	"time"

	"github.com/etnz/clientbook/date"
)

// day is a helper for test to create a date in January 2025.
func day(d int) date.Date { return date.New(2025, time.January, d) }

// buy is a helper for test to create a buy of a test client.
func buy(stock string, quantity int, price float64) Transaction {
	return NewBuy(day(1), "c1", stock, Q(quantity), M(price))
}

// sell is a helper for test to create a sell of a test client.
func sell(stock string, quantity int, price float64) Transaction {
	return NewSell(day(2), "c1", stock, Q(quantity), M(price))
}
