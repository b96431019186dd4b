package kernel

import (
	"fmt"
	"math"

	"localshop/internal/pkg/errs"
)

// Money represents a monetary amount in minor units (cents).
// Monetary arithmetic is done in integers so that cart totals never
// accumulate floating point drift. The remote store sends prices as JSON
// numbers; they are converted at the adapter boundary via MoneyFromFloat.
//
// The zero value of Money is a valid amount of zero.
//
// Example:
//
//	price, _ := kernel.MoneyFromFloat(10.00)
//	total := price.MulInt(2) // 20.00
//	fmt.Println(total)       // Output: 20.00
type Money struct {
	cents int64
}

// NewMoney creates a Money amount from minor units.
// Negative amounts are rejected: the cart and order domain never deal in
// negative prices.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidError("cents")
	}
	return Money{cents: cents}, nil
}

// MoneyFromFloat converts a major-unit amount (e.g. 10.5 meaning 10.50) into
// Money, rounding to the nearest cent. Returns an error for negative or
// non-finite input.
func MoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidError("amount")
	}
	cents := int64(math.Round(amount * 100))
	return NewMoney(cents)
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// MulInt returns the amount multiplied by a non-negative integer factor.
// Used for unitPrice x quantity line totals.
func (m Money) MulInt(factor int) Money {
	if factor < 0 {
		factor = 0
	}
	return Money{cents: m.cents * int64(factor)}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// Float64 returns the amount in major units. Intended for display and for
// encoding back onto the wire, not for arithmetic.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// String returns the amount formatted with two decimal places, e.g. "25.00".
// This method implements the fmt.Stringer interface.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
