package clientbook

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/clientbook/date"
)

// Client is the owner of a portfolio.
//
// Clients are identified by an immutable ID; the Name is display metadata that
// can be changed without touching the client's transactions.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is a single buy or sell of a stock by a client.
type Transaction struct {
	ID       int64           `json:"id"`
	ClientID string          `json:"client_id"`
	Stock    string          `json:"stock"` // Stock is the ticker, without exchange suffix.
	Type     TransactionType `json:"type"`
	Quantity Quantity        `json:"quantity"`
	Price    Money           `json:"price"` // Price is per share.
	Date     date.Date       `json:"date"`
}

// NewBuy creates a new buy transaction.
func NewBuy(on date.Date, clientID, stock string, quantity Quantity, price Money) Transaction {
	return Transaction{ClientID: clientID, Stock: NormalizeStock(stock), Type: Buy, Quantity: quantity, Price: price, Date: on}
}

// NewSell creates a new sell transaction.
func NewSell(on date.Date, clientID, stock string, quantity Quantity, price Money) Transaction {
	return Transaction{ClientID: clientID, Stock: NormalizeStock(stock), Type: Sell, Quantity: quantity, Price: price, Date: on}
}

// Amount returns quantity times price.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// NormalizeStock returns the canonical form of a ticker: trimmed and upper case.
func NormalizeStock(stock string) string {
	return strings.ToUpper(strings.TrimSpace(stock))
}

// Validate checks a transaction for correctness and applies quick fixes where
// applicable (normalized ticker, today's date when missing). It returns the
// validated transaction or an error detailing every validation failure.
func (t Transaction) Validate() (Transaction, error) {
	t.Stock = NormalizeStock(t.Stock)
	if t.Date.IsZero() {
		t.Date = date.Today()
	}

	var errs []error
	if t.ClientID == "" {
		errs = append(errs, errors.New("client is missing"))
	}
	if t.Stock == "" {
		errs = append(errs, errors.New("stock ticker is missing"))
	} else if strings.ContainsAny(t.Stock, ". ") {
		errs = append(errs, fmt.Errorf("stock ticker %q must not contain an exchange suffix or spaces", t.Stock))
	}
	if t.Type != Buy && t.Type != Sell {
		errs = append(errs, fmt.Errorf("invalid transaction type %d", int(t.Type)))
	}
	if !t.Quantity.IsPositive() || !t.Quantity.IsWhole() {
		errs = append(errs, fmt.Errorf("quantity must be a positive whole number, got %s", t.Quantity))
	}
	if t.Price.IsNegative() {
		errs = append(errs, fmt.Errorf("price must not be negative, got %s", t.Price))
	}
	if len(errs) > 0 {
		return t, &ValidationError{errors.Join(errs...)}
	}
	return t, nil
}

// ValidationError reports invalid user input.
type ValidationError struct{ err error }

func (e *ValidationError) Error() string { return e.err.Error() }
func (e *ValidationError) Unwrap() error { return e.err }

// IsValidationError reports whether err was caused by invalid user input.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ValidateClientName checks a client display name.
func ValidateClientName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{errors.New("client name is missing")}
	}
	return name, nil
}
