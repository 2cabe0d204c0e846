package currency_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"essenza/internal/currency"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatConventions(t *testing.T) {
	cases := []struct {
		amount string
		code   currency.Code
		want   string
	}{
		{"1234.56", currency.EUR, "1.234,56 €"},
		{"1234.56", currency.USD, "$1,234.56"},
		{"1234.56", currency.GBP, "£1,234.56"},
		{"0", currency.EUR, "0,00 €"},
		{"6", currency.USD, "$6.00"},
		{"1234567.8", currency.EUR, "1.234.567,80 €"},
		// Discounts display as negative amounts.
		{"-6.00", currency.EUR, "-6,00 €"},
		{"-6.00", currency.USD, "-$6.00"},
	}
	for _, tc := range cases {
		got, err := currency.Format(d(tc.amount), tc.code)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.amount, tc.code, err)
		}
		if got != tc.want {
			t.Fatalf("%s %s: want %q, got %q", tc.amount, tc.code, tc.want, got)
		}
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	// The real contract: same amount+currency renders identically
	// wherever it is called.
	a, _ := currency.Format(d("35.70"), currency.EUR)
	b, _ := currency.Format(d("35.70"), currency.EUR)
	if a != b {
		t.Fatalf("non-deterministic formatting: %q vs %q", a, b)
	}
}

func TestUnsupportedCurrency(t *testing.T) {
	_, err := currency.Format(d("1"), currency.Code("JPY"))
	if !errors.Is(err, currency.ErrUnsupportedCurrency) {
		t.Fatalf("want ErrUnsupportedCurrency, got %v", err)
	}
}

func TestWithDecimals(t *testing.T) {
	got, err := currency.Format(d("1234.5678"), currency.USD, currency.WithDecimals(3))
	if err != nil {
		t.Fatal(err)
	}
	if got != "$1,234.568" {
		t.Fatalf("want $1,234.568, got %q", got)
	}
	got, err = currency.Format(d("1234.56"), currency.EUR, currency.WithDecimals(0))
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.235 €" {
		t.Fatalf("want 1.235 €, got %q", got)
	}
}

func TestValid(t *testing.T) {
	if !currency.Valid(currency.EUR) || currency.Valid("XXX") {
		t.Fatal("Valid misreports the supported set")
	}
}
