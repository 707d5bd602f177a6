// Package quote looks up the current market price of stocks.
//
// A failed lookup is never an error for the callers: the stock is simply
// reported as absent and left out of the unrealized report.
package quote

import (
	"context"
	"sync"

	"github.com/etnz/clientbook"
	"golang.org/x/sync/errgroup"
)

// Source looks up the current price of a stock ticker, as stored in the
// record store (without any exchange suffix).
//
// Implementations must be safe for concurrent use.
type Source interface {
	Lookup(ctx context.Context, stock string) (clientbook.Money, bool)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context, stock string) (clientbook.Money, bool)

// Lookup implements Source.
func (f SourceFunc) Lookup(ctx context.Context, stock string) (clientbook.Money, bool) {
	return f(ctx, stock)
}

// Static is a Source with fixed prices.
type Static map[string]clientbook.Money

// Lookup implements Source.
func (s Static) Lookup(_ context.Context, stock string) (clientbook.Money, bool) {
	p, ok := s[stock]
	return p, ok
}

// Fetch looks up every stock concurrently, with at most workers lookups in
// flight, and returns the prices found. Stocks without a price are absent
// from the result.
func Fetch(ctx context.Context, src Source, stocks []string, workers int) clientbook.Prices {
	if workers < 1 {
		workers = 1
	}
	prices := make(clientbook.Prices, len(stocks))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	seen := make(map[string]bool, len(stocks))
	for _, stock := range stocks {
		if seen[stock] {
			continue
		}
		seen[stock] = true
		g.Go(func() error {
			p, ok := src.Lookup(ctx, stock)
			if !ok {
				return nil
			}
			mu.Lock()
			prices[stock] = p
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // lookups never fail
	return prices
}

// valid reports whether a price returned by a remote feed is usable.
func valid(price float64) bool { return price > 0 }

// money converts a feed price to Money, rounded to the cent.
func money(price float64) clientbook.Money { return clientbook.M(price).Round() }
