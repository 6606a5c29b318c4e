package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{in: "5000.00", want: 500000},
		{in: "0.01", want: 1},
		{in: "13000", want: 1300000},
		{in: "99.99", want: 9999},
	}

	for _, tt := range tests {
		if got := toMinorUnits(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Fatalf("toMinorUnits(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFromMinorUnits(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 500000, want: "5000"},
		{in: 1, want: "0.01"},
		{in: 9999, want: "99.99"},
	}

	for _, tt := range tests {
		if got := fromMinorUnits(tt.in); !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("fromMinorUnits(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	for _, in := range []string{"5000.00", "0.01", "123456.78"} {
		amount := decimal.RequireFromString(in)
		if got := fromMinorUnits(toMinorUnits(amount)); !got.Equal(amount) {
			t.Fatalf("round trip of %s yielded %s", in, got)
		}
	}
}
