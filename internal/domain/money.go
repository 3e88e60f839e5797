package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. It marshals to a JSON string with two
// fractional digits ("2250.00") so that values cross the cache and API
// boundaries without ever passing through binary floating point.
type Money struct {
	dec decimal.Decimal
}

// ZeroMoney returns an amount of 0.00.
func ZeroMoney() Money {
	return Money{}
}

// ParseMoney parses a decimal string such as "99.99".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{dec: d}, nil
}

// Add returns m + other without loss of precision.
func (m Money) Add(other Money) Money {
	return Money{dec: m.dec.Add(other.dec)}
}

// Equal reports whether the two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.dec.Equal(other.dec)
}

// IsZero reports whether the amount is 0.
func (m Money) IsZero() bool {
	return m.dec.IsZero()
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.dec.StringFixed(2)
}

// MarshalJSON encodes the amount as a string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a string-encoded decimal amount.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("money must be a string-encoded decimal: %w", err)
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
