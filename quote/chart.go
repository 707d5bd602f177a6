package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/clientbook"
	"github.com/rs/zerolog"
)

// DefaultChartURL is the Yahoo Finance chart api.
const DefaultChartURL = "https://query2.finance.yahoo.com"

// ChartOptions configures a Chart source.
type ChartOptions struct {
	BaseURL  string        // BaseURL defaults to DefaultChartURL.
	Suffix   string        // Suffix is appended to stocks to make the Yahoo symbol, e.g. ".NS".
	CacheDir string        // CacheDir keeps responses on disk when not empty.
	CacheFor time.Duration // CacheFor is the lifetime of disk cache entries, a minute by default.
	Log      zerolog.Logger
}

// Chart is a Source reading the Yahoo Finance v8 chart json.
type Chart struct {
	base   string
	suffix string
	client *http.Client
	log    zerolog.Logger
}

// NewChart returns a Chart source.
func NewChart(opts ChartOptions) *Chart {
	c := &Chart{
		base:   strings.TrimSuffix(opts.BaseURL, "/"),
		suffix: opts.Suffix,
		client: &http.Client{Timeout: 8 * time.Second},
		log:    opts.Log.With().Str("source", "chart").Logger(),
	}
	if c.base == "" {
		c.base = DefaultChartURL
	}
	if opts.CacheDir != "" {
		period := opts.CacheFor
		if period <= 0 {
			period = time.Minute
		}
		c.client = cachedClient(opts.CacheDir, period, c.log)
	}
	return c
}

// Lookup implements Source.
func (c *Chart) Lookup(ctx context.Context, stock string) (clientbook.Money, bool) {
	symbol := stock + c.suffix
	price, err := c.price(ctx, symbol)
	if err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("no quote")
		return clientbook.Money{}, false
	}
	return money(price), true
}

func (c *Chart) price(ctx context.Context, symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.base, url.PathEscape(symbol))
	var jobj any
	if err := jwget(ctx, c.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", symbol, err)
	}

	if v, err := jsonpath.Get("$.chart.result[0].meta.regularMarketPrice", jobj); err == nil {
		if p, ok := first(v).(float64); ok && valid(p) {
			return p, nil
		}
	}

	// meta missing: use the last close of the day.
	v, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", symbol, err)
	}
	closes, _ := v.([]any)
	for i := len(closes) - 1; i >= 0; i-- {
		if p, ok := closes[i].(float64); ok && valid(p) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("no price for %q", symbol)
}

// first keeps the first value when jsonpath returns a list of one answer.
func first(v any) any {
	if list, ok := v.([]any); ok && len(list) > 0 {
		return list[0]
	}
	return v
}
