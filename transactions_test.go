package clientbook

import (
	"encoding/json"
	"testing"

	"github.com/etnz/clientbook/date"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{"valid buy", buy("INFY", 1, 100), false},
		{"free shares", buy("INFY", 1, 0), false},
		{"missing client", NewBuy(day(1), "", "INFY", Q(1), M(1)), true},
		{"missing stock", buy(" ", 1, 100), true},
		{"exchange suffix", buy("INFY.NS", 1, 100), true},
		{"zero quantity", buy("INFY", 0, 100), true},
		{"negative quantity", sell("INFY", -3, 100), true},
		{"fractional quantity", NewBuy(day(1), "c1", "INFY", Q(1.5), M(1)), true},
		{"negative price", buy("INFY", 1, -0.01), true},
		{"unknown type", Transaction{ClientID: "c1", Stock: "INFY", Quantity: Q(1), Price: M(1), Date: day(1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tx.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false, want true", err)
			}
		})
	}
}

func TestTransaction_ValidateFixes(t *testing.T) {
	tx := Transaction{ClientID: "c1", Stock: " infy ", Type: Buy, Quantity: Q(1), Price: M(1)}
	got, err := tx.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.Stock != "INFY" {
		t.Errorf("Validate().Stock = %q, want %q", got.Stock, "INFY")
	}
	if got.Date != date.Today() {
		t.Errorf("Validate().Date = %v, want today", got.Date)
	}
}

func TestTransaction_JSON(t *testing.T) {
	tx := NewSell(day(3), "c1", "TCS", Q(2), M(3500.5))
	tx.ID = 7
	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"id":7,"client_id":"c1","stock":"TCS","type":"Sell","quantity":2,"price":"3500.50","date":"2025-01-03"}`
	if string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}

	var got Transaction
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Type != Sell || !got.Price.Equal(tx.Price) || !got.Quantity.Equal(tx.Quantity) || got.Date != tx.Date {
		t.Errorf("Unmarshal() = %+v, want %+v", got, tx)
	}
}

func TestParseTransactionType(t *testing.T) {
	for in, want := range map[string]TransactionType{"buy": Buy, "Buy": Buy, " SELL ": Sell} {
		got, err := ParseTransactionType(in)
		if err != nil || got != want {
			t.Errorf("ParseTransactionType(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseTransactionType("dividend"); err == nil {
		t.Errorf("ParseTransactionType(dividend) expected an error")
	}
}

func TestValidateClientName(t *testing.T) {
	if got, err := ValidateClientName("  Asha Rao "); err != nil || got != "Asha Rao" {
		t.Errorf("ValidateClientName() = %q, %v", got, err)
	}
	if _, err := ValidateClientName("   "); !IsValidationError(err) {
		t.Errorf("ValidateClientName(blank) error = %v, want a validation error", err)
	}
}
