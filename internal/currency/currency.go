package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Code is an ISO-4217 currency code from the supported set.
type Code string

const (
	EUR Code = "EUR"
	USD Code = "USD"
	GBP Code = "GBP"
)

// ErrUnsupportedCurrency is returned for any code outside the supported
// set. There is deliberately no fallback symbol.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

type layout struct {
	symbol   string
	prefix   bool
	thousand string
	decimal  string
}

// The per-currency convention is a product decision; what matters is that
// it is applied in exactly one place.
var layouts = map[Code]layout{
	EUR: {symbol: "€", prefix: false, thousand: ".", decimal: ","},
	USD: {symbol: "$", prefix: true, thousand: ",", decimal: "."},
	GBP: {symbol: "£", prefix: true, thousand: ",", decimal: "."},
}

// Option adjusts formatting, currently only the decimal precision.
type Option func(*options)

type options struct {
	decimals int32
}

func WithDecimals(n int32) Option {
	return func(o *options) { o.decimals = n }
}

// Valid reports whether code is in the supported set.
func Valid(code Code) bool {
	_, ok := layouts[code]
	return ok
}

// Format renders amount in the given currency. Negative amounts keep a
// leading minus (used for displaying discounts).
func Format(amount decimal.Decimal, code Code, opts ...Option) (string, error) {
	lay, ok := layouts[code]
	if !ok {
		return "", ErrUnsupportedCurrency
	}
	o := options{decimals: 2}
	for _, opt := range opts {
		opt(&o)
	}

	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(o.decimals)

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if lay.prefix {
		b.WriteString(lay.symbol)
	}
	b.WriteString(group(intPart, lay.thousand))
	if fracPart != "" {
		b.WriteString(lay.decimal)
		b.WriteString(fracPart)
	}
	if !lay.prefix {
		b.WriteString(" ")
		b.WriteString(lay.symbol)
	}
	return b.String(), nil
}

func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
