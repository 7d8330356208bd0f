package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Limits on amounts accepted from user input. Anything past them cannot be
// a real price and would make decimal arithmetic arbitrarily expensive.
const (
	MaxInputLength = 32
	MaxExponent    = 20
)

// ErrInvalidAmount is returned by Parse for input that is not a usable amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Parse reads a decimal amount such as "12.50", ".5", "5." or "1e3".
// Input longer than MaxInputLength or with an exponent beyond ±MaxExponent
// is rejected.
func Parse(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > MaxInputLength {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, ErrInvalidAmount)
	}
	if exp := amount.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Zero, fmt.Errorf("%q exponent out of range: %w", raw, ErrInvalidAmount)
	}
	return amount, nil
}
