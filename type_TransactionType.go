package clientbook

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TransactionType tells whether shares were bought or sold.
type TransactionType int

const (
	// Buy records shares entering the portfolio.
	Buy TransactionType = iota + 1
	// Sell records shares leaving the portfolio.
	Sell
)

func (t TransactionType) String() string {
	switch t {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses "buy" or "sell", ignoring case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

func (t TransactionType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TransactionType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Value implements driver.Valuer, types are stored as "Buy" or "Sell".
func (t TransactionType) Value() (driver.Value, error) {
	if t != Buy && t != Sell {
		return nil, fmt.Errorf("invalid transaction type %d", int(t))
	}
	return t.String(), nil
}

// Scan implements sql.Scanner.
func (t *TransactionType) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into a transaction type", src)
	}
	v, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
