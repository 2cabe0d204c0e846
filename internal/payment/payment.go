package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"essenza/internal/currency"
)

// ErrTokenization wraps any failure from the payment provider. It is
// an expected runtime condition: callers surface it to the user and
// leave the cart untouched so the attempt can be retried.
var ErrTokenization = errors.New("payment tokenization failed")

// Tokenizer is the only capability the checkout flow holds on the
// payment provider. The amount crosses the boundary as an exact
// decimal; the provider owns the conversion to minor units.
type Tokenizer interface {
	Tokenize(ctx context.Context, amount decimal.Decimal, code currency.Code) (string, error)
}

// SandboxProvider simulates the embedded payment widget: a fixed
// processing delay, then a token. Fail lets tests and demos inject a
// provider-side error.
type SandboxProvider struct {
	Delay time.Duration
	Fail  func(amount decimal.Decimal) error
}

func (p *SandboxProvider) Tokenize(ctx context.Context, amount decimal.Decimal, code currency.Code) (string, error) {
	if !currency.Valid(code) {
		return "", fmt.Errorf("%w: %s", ErrTokenization, currency.ErrUnsupportedCurrency)
	}
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: negative amount", ErrTokenization)
	}
	// The provider charges in minor units; the amount handed over must
	// convert exactly, with no rounding ambiguity at the cents boundary.
	minor := amount.Mul(decimal.NewFromInt(100))
	if !minor.Equal(minor.Truncate(0)) {
		return "", fmt.Errorf("%w: amount %s not representable in minor units", ErrTokenization, amount)
	}
	if p.Fail != nil {
		if err := p.Fail(amount); err != nil {
			return "", fmt.Errorf("%w: %v", ErrTokenization, err)
		}
	}
	select {
	case <-time.After(p.Delay):
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrTokenization, ctx.Err())
	}
	return "tok_" + uuid.NewString(), nil
}
