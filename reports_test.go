package clientbook

import (
	"slices"
	"testing"
)

func TestNewInsights(t *testing.T) {
	client := Client{ID: "c1", Name: "Asha"}
	txs := []Transaction{
		buy("INFY", 10, 100),
		buy("INFY", 10, 200),
		sell("INFY", 5, 250),
		buy("DELISTED", 4, 50),
	}
	in := NewInsights(client, "INR", txs, Prices{"INFY": M(180)})

	if in.Client != client || in.Currency != "INR" {
		t.Errorf("NewInsights() client = %v %q", in.Client, in.Currency)
	}
	if want := M(3200); !in.Deployed.Equal(want) {
		t.Errorf("Deployed = %v, want %v", in.Deployed, want)
	}
	if want := M(500); !in.Realized.Equal(want) {
		t.Errorf("Realized = %v, want %v", in.Realized, want)
	}
	if len(in.Positions) != 1 || in.Positions[0].Stock != "INFY" {
		t.Errorf("Positions = %v, want only INFY", in.Positions)
	}
	if want := M(600); !in.Unrealized.Equal(want) {
		t.Errorf("Unrealized = %v, want %v", in.Unrealized, want)
	}
	if want := M(3800); !in.Remaining.Equal(want) {
		t.Errorf("Remaining = %v, want %v", in.Remaining, want)
	}
	if want := []string{"DELISTED"}; !slices.Equal(in.Missing, want) {
		t.Errorf("Missing = %v, want %v", in.Missing, want)
	}
	if !in.HasPositions() {
		t.Errorf("HasPositions() = false, want true")
	}
}

func TestNewInsights_Empty(t *testing.T) {
	in := NewInsights(Client{ID: "c1"}, "INR", nil, nil)
	if !in.Deployed.IsZero() || !in.Realized.IsZero() || !in.Unrealized.IsZero() || !in.Remaining.IsZero() {
		t.Errorf("NewInsights(nil) = %+v, want zero figures", in)
	}
	if in.HasPositions() || len(in.Missing) != 0 {
		t.Errorf("NewInsights(nil) should have no positions")
	}
}
