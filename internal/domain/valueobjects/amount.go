// Package valueobjects contains immutable domain value objects.
package valueobjects

import (
	"github.com/shopspring/decimal"

	"github.com/Haleralex/walletflow/internal/domain/errors"
)

// Scale is the number of fractional digits carried by every monetary value.
// Balances and amounts are fixed-point DECIMAL(19,4); arithmetic never rounds.
const Scale = 4

// Amount is a fixed-point monetary value.
//
// Value Object Pattern:
// - Immutable (operations return new values)
// - No identity, compared by value
// - Self-validating at construction
type Amount struct {
	value decimal.Decimal
}

// NewAmountFromString parses a decimal string into an Amount.
// Rejects values that are not valid decimals or carry more than
// four fractional digits. The sign is not checked here; callers
// that require positivity use RequirePositive.
func NewAmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, errors.ValidationError{
			Field:   "amount",
			Message: "must be a valid decimal number",
		}
	}
	if !d.Equal(d.Round(Scale)) {
		return Amount{}, errors.ValidationError{
			Field:   "amount",
			Message: "must have at most 4 decimal places",
		}
	}
	return Amount{value: d}, nil
}

// NewPositiveAmount parses a decimal string and requires it to be
// strictly positive. This is the validation applied to every funding
// and transfer amount entering the system.
func NewPositiveAmount(s string) (Amount, error) {
	a, err := NewAmountFromString(s)
	if err != nil {
		return Amount{}, err
	}
	if !a.IsPositive() {
		return Amount{}, errors.ValidationError{
			Field:   "amount",
			Message: "must be greater than zero",
		}
	}
	return a, nil
}

// ZeroAmount returns the zero monetary value.
func ZeroAmount() Amount {
	return Amount{value: decimal.Zero}
}

// ReconstructAmount hydrates an Amount from a trusted store value.
// Used by repositories; no validation is applied.
func ReconstructAmount(d decimal.Decimal) Amount {
	return Amount{value: d}
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{value: a.value.Add(b.value)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{value: a.value.Sub(b.value)}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.value.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Equal reports whether two amounts represent the same value,
// regardless of representation ("10.5" equals "10.5000").
func (a Amount) Equal(b Amount) bool {
	return a.value.Equal(b.value)
}

// GreaterThanOrEqual reports whether a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool {
	return a.value.GreaterThanOrEqual(b.value)
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.value.LessThan(b.value)
}

// Decimal exposes the underlying decimal for persistence adapters.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// String renders the amount with the full fixed-point scale, e.g. "100.0000".
// This is the canonical wire and storage representation.
func (a Amount) String() string {
	return a.value.StringFixed(Scale)
}

// MarshalJSON renders the amount as a quoted decimal string.
// Floating-point JSON numbers are never emitted for money.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare
// number; unknown producers are tolerated, precision is re-checked.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := NewAmountFromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
