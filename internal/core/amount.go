package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value with two-decimal display precision.
//
// Decoding is deliberately lenient: the backend is not trusted to return
// clean numerics, so values arriving as strings, numbers, null, or garbage
// all decode, with anything non-numeric or negative coerced to zero. One
// bad record must never corrupt a whole aggregate.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func AmountFromFloat(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	return a.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}
