// Package money provides an exact decimal amount type used for every total,
// entry and budget limit in the ledger.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotANumber is returned when text cannot be parsed as a decimal amount.
var ErrNotANumber = errors.New("amount is not a number")

// Money is an immutable exact decimal value. The zero value is 0.
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{}

// numeral is an optional sign, digits and an optional fractional part.
// Exponent forms such as "1e3" are not amounts.
var numeral = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)$`)

// Parse reads a standard decimal numeral such as "12", "-3.5" or "+0.25".
// The scale of the text is kept, so "100.50" prints back as "100.50".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrNotANumber
	}
	if !numeral.MatchString(s) {
		return Zero, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromInt returns a whole amount.
func FromInt(v int64) Money {
	return Money{d: decimal.NewFromInt(v)}
}

// FromDecimal wraps an existing decimal value.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// Decimal exposes the underlying value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// Sign returns -1, 0 or 1.
func (m Money) Sign() int {
	return m.d.Sign()
}

// Cmp compares by value: -1 if m < o, 0 if equal, 1 if m > o.
// Scale is ignored, so 1.50 and 1.5 compare equal.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal reports value equality.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool { return m.d.IsZero() }

// IsNegative reports whether m is below zero.
func (m Money) IsNegative() bool { return m.d.IsNegative() }

// IsPositive reports whether m is above zero.
func (m Money) IsPositive() bool { return m.d.IsPositive() }

// String returns the plain decimal text at the amount's scale. Sums take the
// largest scale of their terms, so "30.10" + "19.90" prints "50.00".
func (m Money) String() string {
	if exp := m.d.Exponent(); exp < 0 {
		return m.d.StringFixed(-exp)
	}
	return m.d.String()
}

// Value stores the amount as exact decimal text, scale included.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan reads an amount stored by Value.
func (m *Money) Scan(src any) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("failed to scan money: %w", err)
	}
	m.d = d
	return nil
}

// Sum adds all amounts.
func Sum(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
