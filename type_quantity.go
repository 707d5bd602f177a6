package clientbook

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a number of shares. Transactions only ever hold whole shares,
// but sums and averages are kept exact.
type Quantity struct {
	value decimal.Decimal
}

// Q returns a Quantity from a numeric value.
func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a whole, positive number of shares.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	q := Quantity{value: d}
	if !q.IsWhole() {
		return Quantity{}, fmt.Errorf("invalid quantity %q: must be a whole number of shares", s)
	}
	return q, nil
}

func (q Quantity) Equal(p Quantity) bool   { return q.value.Equal(p.value) }
func (q Quantity) Add(p Quantity) Quantity { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) IsPositive() bool        { return q.value.IsPositive() }
func (q Quantity) IsZero() bool            { return q.value.IsZero() }
func (q Quantity) IsWhole() bool           { return q.value.IsInteger() }
func (q Quantity) String() string          { return q.value.String() }

func (q Quantity) MarshalJSON() ([]byte, error) { return []byte(q.value.String()), nil }

func (q *Quantity) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }

// Value implements driver.Valuer, quantities are stored as integers.
func (q Quantity) Value() (driver.Value, error) { return q.value.IntPart(), nil }

// Scan implements sql.Scanner.
func (q *Quantity) Scan(src any) error { return q.value.Scan(src) }
