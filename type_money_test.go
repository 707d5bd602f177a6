package clientbook

import (
	"encoding/json"
	"testing"
)

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		m        Money
		currency string
		want     string
	}{
		{M(1234.5), "INR", "₹1,234.50"},
		{M(-1234.5), "INR", "-₹1,234.50"},
		{M(0.005), "USD", "$0.01"},
		{M(1234.5), "", "1234.50"},
		{M(12), "XYZ", "12.00 XYZ"},
	}
	for _, tt := range tests {
		if got := tt.m.Format(tt.currency); got != tt.want {
			t.Errorf("M(%v).Format(%q) = %q, want %q", tt.m, tt.currency, got, tt.want)
		}
	}
}

func TestMoney_SignedFormat(t *testing.T) {
	if got, want := M(10).SignedFormat("INR"), "+₹10.00"; got != want {
		t.Errorf("SignedFormat() = %q, want %q", got, want)
	}
	if got, want := M(-10).SignedFormat("INR"), "-₹10.00"; got != want {
		t.Errorf("SignedFormat() = %q, want %q", got, want)
	}
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("1500.25")
	if err != nil || !m.Equal(M(1500.25)) {
		t.Errorf("ParseMoney() = %v, %v, want 1500.25", m, err)
	}
	if _, err := ParseMoney("1,500"); err == nil {
		t.Errorf("ParseMoney(1,500) expected an error")
	}
}

func TestMoney_JSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100.125", `"100.125"`},
		{"1500.5", `"1500.50"`},
		{"38000", `"38000.00"`},
		{"-0.0001", `"-0.0001"`},
	}
	for _, tt := range tests {
		m, err := ParseMoney(tt.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q) error = %v", tt.in, err)
		}
		b, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("json.Marshal(%v) error = %v", tt.in, err)
		}
		if string(b) != tt.want {
			t.Errorf("json.Marshal(%s) = %s, want %s", tt.in, b, tt.want)
		}
		var got Money
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("json.Unmarshal(%s) error = %v", b, err)
		}
		if !got.Equal(m) {
			t.Errorf("json round trip of %s = %v, want %s", tt.in, got.value, tt.in)
		}
	}
}

func TestTransaction_JSONKeepsPrice(t *testing.T) {
	price, err := ParseMoney("100.125")
	if err != nil {
		t.Fatalf("ParseMoney() error = %v", err)
	}
	tx := NewBuy(day(1), "c1", "INFY", Q(3), price)
	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var got Transaction
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !got.Price.Equal(price) {
		t.Errorf("price round trip = %v, want 100.125", got.Price.value)
	}
}
