package app

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundPrice_OutOfRange(t *testing.T) {
	if _, ok := roundPrice(decimal.RequireFromString("1e19")); ok {
		t.Fatalf("expected out-of-range result")
	}
	if _, ok := roundPrice(decimal.RequireFromString("-1e19")); ok {
		t.Fatalf("expected out-of-range result")
	}
	if got, ok := roundPrice(decimal.RequireFromString("13822.5")); !ok || got != 13823 {
		t.Fatalf("got %d %v", got, ok)
	}
}
