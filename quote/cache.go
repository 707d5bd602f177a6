package quote

import (
	"context"
	"sync"
	"time"

	"github.com/etnz/clientbook"
	"github.com/rs/zerolog"
)

// Cache is a Source that remembers the prices of another Source for a
// while. Absent prices are not remembered.
type Cache struct {
	src Source
	ttl time.Duration
	log zerolog.Logger
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedQuote
}

type cachedQuote struct {
	price   clientbook.Money
	fetched time.Time
}

// NewCache returns a Cache over src keeping prices for ttl.
func NewCache(src Source, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{
		src:     src,
		ttl:     ttl,
		log:     log.With().Str("component", "quote-cache").Logger(),
		now:     time.Now,
		entries: make(map[string]cachedQuote),
	}
}

// Lookup implements Source.
func (c *Cache) Lookup(ctx context.Context, stock string) (clientbook.Money, bool) {
	c.mu.RLock()
	e, ok := c.entries[stock]
	c.mu.RUnlock()
	if ok && c.now().Sub(e.fetched) < c.ttl {
		return e.price, true
	}
	return c.load(ctx, stock)
}

func (c *Cache) load(ctx context.Context, stock string) (clientbook.Money, bool) {
	p, ok := c.src.Lookup(ctx, stock)
	if !ok {
		return clientbook.Money{}, false
	}
	c.mu.Lock()
	c.entries[stock] = cachedQuote{price: p, fetched: c.now()}
	c.mu.Unlock()
	return p, true
}

// Refresh reloads the prices of stocks from the underlying Source, whatever
// their age, and returns how many were found.
func (c *Cache) Refresh(ctx context.Context, stocks []string, workers int) int {
	found := Fetch(ctx, SourceFunc(c.load), stocks, workers)
	c.log.Debug().Int("stocks", len(stocks)).Int("found", len(found)).Msg("quotes refreshed")
	return len(found)
}

// Len returns the number of prices in the cache, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
