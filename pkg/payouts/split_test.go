package payouts

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		gross  string
		fee    string
		payout string
	}{
		{name: "round thousand", gross: "1000.00", fee: "200.00", payout: "800.00"},
		{name: "zero", gross: "0", fee: "0.00", payout: "0.00"},
		{name: "cent amount", gross: "0.01", fee: "0.00", payout: "0.01"},
		{name: "odd cents", gross: "333.33", fee: "66.67", payout: "266.66"},
		{name: "repeating split", gross: "99.99", fee: "20.00", payout: "79.99"},
		{name: "per creator share", gross: "166.67", fee: "33.33", payout: "133.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(decimal.RequireFromString(tt.gross))
			if got.PlatformFee.String() != tt.fee {
				t.Fatalf("fee = %s, want %s", got.PlatformFee, tt.fee)
			}
			if got.CreatorPayout.String() != tt.payout {
				t.Fatalf("payout = %s, want %s", got.CreatorPayout, tt.payout)
			}
		})
	}
}

func TestSplitNoDrift(t *testing.T) {
	// fee + payout must reconstruct the gross exactly for any amount.
	for cents := int64(0); cents < 5000; cents++ {
		gross := decimal.New(cents, -2)
		got := Split(gross)
		if !got.PlatformFee.Add(got.CreatorPayout).Equal(gross) {
			t.Fatalf("drift at %s: fee %s + payout %s", gross, got.PlatformFee, got.CreatorPayout)
		}
	}
}

func TestSplitRoundsGrossFirst(t *testing.T) {
	got := Split(decimal.RequireFromString("10.005"))
	if got.Gross.String() != "10.01" {
		t.Fatalf("gross = %s, want 10.01", got.Gross)
	}
	if !got.PlatformFee.Add(got.CreatorPayout).Equal(got.Gross) {
		t.Fatalf("fee %s + payout %s != gross %s", got.PlatformFee, got.CreatorPayout, got.Gross)
	}
}
