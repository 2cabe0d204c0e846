package payment_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"essenza/internal/currency"
	"essenza/internal/payment"
)

func TestTokenize(t *testing.T) {
	p := &payment.SandboxProvider{}
	tok, err := p.Tokenize(context.Background(), decimal.RequireFromString("35.70"), currency.EUR)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(tok, "tok_") {
		t.Fatalf("unexpected token %q", tok)
	}
}

func TestTokenizeFailure(t *testing.T) {
	p := &payment.SandboxProvider{Fail: func(decimal.Decimal) error {
		return errors.New("card declined")
	}}
	_, err := p.Tokenize(context.Background(), decimal.RequireFromString("10"), currency.EUR)
	if !errors.Is(err, payment.ErrTokenization) {
		t.Fatalf("want ErrTokenization, got %v", err)
	}
}

func TestTokenizeRejectsSubCentAmounts(t *testing.T) {
	// Anything that does not convert exactly to minor units is a bug
	// upstream, not something to round here.
	p := &payment.SandboxProvider{}
	_, err := p.Tokenize(context.Background(), decimal.RequireFromString("9.999"), currency.EUR)
	if !errors.Is(err, payment.ErrTokenization) {
		t.Fatalf("want ErrTokenization, got %v", err)
	}
}

func TestTokenizeUnsupportedCurrency(t *testing.T) {
	p := &payment.SandboxProvider{}
	_, err := p.Tokenize(context.Background(), decimal.RequireFromString("10"), currency.Code("JPY"))
	if !errors.Is(err, payment.ErrTokenization) {
		t.Fatalf("want ErrTokenization, got %v", err)
	}
}
