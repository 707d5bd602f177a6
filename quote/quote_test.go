package quote

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/clientbook"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counting wraps a Source and counts lookups.
type counting struct {
	src   Source
	calls atomic.Int32
	busy  atomic.Int32
	peak  atomic.Int32
	delay time.Duration
}

func (c *counting) Lookup(ctx context.Context, stock string) (clientbook.Money, bool) {
	c.calls.Add(1)
	n := c.busy.Add(1)
	defer c.busy.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(c.delay)
	return c.src.Lookup(ctx, stock)
}

func TestFetch(t *testing.T) {
	src := &counting{
		src:   Static{"INFY": clientbook.M(1500), "TCS": clientbook.M(3500.5)},
		delay: 10 * time.Millisecond,
	}
	prices := Fetch(context.Background(), src, []string{"INFY", "TCS", "WIPRO", "INFY", "HDFC"}, 2)

	require.Len(t, prices, 2)
	assert.True(t, prices["INFY"].Equal(clientbook.M(1500)))
	assert.True(t, prices["TCS"].Equal(clientbook.M(3500.5)))
	_, ok := prices.Price("WIPRO")
	assert.False(t, ok)
	assert.EqualValues(t, 4, src.calls.Load(), "duplicates are looked up once")
	assert.LessOrEqual(t, src.peak.Load(), int32(2))
}

func TestFetch_Empty(t *testing.T) {
	prices := Fetch(context.Background(), Static{}, nil, 0)
	assert.NotNil(t, prices)
	assert.Empty(t, prices)
}

func TestCache(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	src := &counting{src: Static{"INFY": clientbook.M(1500)}}
	c := NewCache(src, time.Minute, zerolog.Nop())
	c.now = func() time.Time { return now }
	ctx := context.Background()

	p, ok := c.Lookup(ctx, "INFY")
	require.True(t, ok)
	assert.True(t, p.Equal(clientbook.M(1500)))
	_, ok = c.Lookup(ctx, "INFY")
	assert.True(t, ok)
	assert.EqualValues(t, 1, src.calls.Load())

	// absent prices are retried.
	_, ok = c.Lookup(ctx, "WIPRO")
	assert.False(t, ok)
	_, ok = c.Lookup(ctx, "WIPRO")
	assert.False(t, ok)
	assert.EqualValues(t, 3, src.calls.Load())

	now = now.Add(time.Minute)
	_, ok = c.Lookup(ctx, "INFY")
	assert.True(t, ok)
	assert.EqualValues(t, 4, src.calls.Load(), "expired entries are reloaded")
	assert.Equal(t, 1, c.Len())
}

func TestCache_Refresh(t *testing.T) {
	prices := Static{"INFY": clientbook.M(1500), "TCS": clientbook.M(3500)}
	src := &counting{src: prices}
	c := NewCache(src, time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, _ = c.Lookup(ctx, "INFY")
	prices["INFY"] = clientbook.M(1600)

	n := c.Refresh(ctx, []string{"INFY", "TCS", "WIPRO"}, 2)
	assert.Equal(t, 2, n)
	p, _ := c.Lookup(ctx, "INFY")
	assert.True(t, p.Equal(clientbook.M(1600)), "refresh ignores the age of entries")
	assert.EqualValues(t, 4, src.calls.Load())
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1234.57", money(1234.5678).String())
	assert.False(t, valid(0))
	assert.False(t, valid(-1))
}
