package quote

import (
	"context"

	"github.com/etnz/clientbook"
	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// YFinance is a Source backed by go-yfinance.
type YFinance struct {
	suffix string
	log    zerolog.Logger
}

// NewYFinance returns a YFinance source. suffix is appended to stocks to
// make the Yahoo symbol, e.g. ".NS" for the National Stock Exchange of India.
func NewYFinance(suffix string, log zerolog.Logger) *YFinance {
	return &YFinance{
		suffix: suffix,
		log:    log.With().Str("source", "yfinance").Logger(),
	}
}

// Lookup implements Source. It uses the last daily close, or else the
// regular market price.
func (y *YFinance) Lookup(ctx context.Context, stock string) (clientbook.Money, bool) {
	if ctx.Err() != nil {
		return clientbook.Money{}, false
	}
	symbol := stock + y.suffix
	t, err := ticker.New(symbol)
	if err != nil {
		y.log.Warn().Err(err).Str("symbol", symbol).Msg("failed to create ticker")
		return clientbook.Money{}, false
	}
	defer t.Close()

	bars, err := t.History(models.HistoryParams{Period: "1d", Interval: "1d", AutoAdjust: true})
	if err == nil && len(bars) > 0 {
		if p := bars[len(bars)-1].Close; valid(p) {
			return money(p), true
		}
	}

	q, err := t.Quote()
	if err != nil || q == nil || !valid(q.RegularMarketPrice) {
		y.log.Warn().Err(err).Str("symbol", symbol).Msg("no quote")
		return clientbook.Money{}, false
	}
	return money(q.RegularMarketPrice), true
}
