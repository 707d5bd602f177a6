package clientbook

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value, as a major unit amount.
//
// The portfolio of a client is kept in a single currency, so Money carries no
// currency of its own: the currency is only needed to format it.
type Money struct {
	value decimal.Decimal
}

// M returns a Money from a numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal string like "1234.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

func (m Money) Equal(n Money) bool   { return m.value.Equal(n.value) }
func (m Money) IsZero() bool         { return m.value.IsZero() }
func (m Money) IsNegative() bool     { return m.value.IsNegative() }
func (m Money) Add(n Money) Money    { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money    { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value)} }

// Round returns m rounded to two decimal places, half away from zero.
// Amounts are exact decimals, so 0.125 rounds to 0.13.
func (m Money) Round() Money { return Money{value: m.value.Round(2)} }

// String returns the amount with exactly two decimals, without currency.
func (m Money) String() string { return m.value.StringFixed(2) }

// Format returns the amount formatted for a given ISO currency code, using the
// currency grapheme and thousand separators (e.g. "₹1,234.50").
// An unknown or empty currency code falls back to String.
func (m Money) Format(currency string) string {
	if currency == "" {
		return m.String()
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return m.String() + " " + currency
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedFormat is like Format with an explicit "+" for positive amounts.
func (m Money) SignedFormat(currency string) string {
	if m.value.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

// MarshalJSON writes the exact amount as a string, with at least two
// decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	if m.value.Equal(m.value.Round(2)) {
		return json.Marshal(m.value.StringFixed(2))
	}
	return json.Marshal(m.value.String())
}

func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }

// Value implements driver.Valuer, prices are stored as exact decimal text.
func (m Money) Value() (driver.Value, error) { return m.value.String(), nil }

// Scan implements sql.Scanner.
func (m *Money) Scan(src any) error { return m.value.Scan(src) }
