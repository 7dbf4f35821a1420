package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via one of its constructors.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, MoneyFromDecimal, or MoneyFromString")

// Money is an immutable, non-negative monetary amount in the platform's single
// settlement currency. All pricing, tax, commission and payout arithmetic goes
// through Money so that percentage calculations stay exact.
//
// The zero value is invalid; use the constructors. ZeroMoney() provides a
// valid zero amount.
//
// Example:
//
//	subtotal := kernel.NewMoney(5000)
//	vat := subtotal.MulRate(decimal.RequireFromString("0.075")) // 375
//	total := subtotal.Add(vat)                                  // 5375
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from a whole number of currency units.
// Returns an error for negative amounts.
func NewMoney(units int64) (Money, error) {
	return MoneyFromDecimal(decimal.NewFromInt(units))
}

// MoneyFromDecimal creates a Money value from an exact decimal amount.
// Returns an error for negative amounts.
func MoneyFromDecimal(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is negative", amount.String()))
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a decimal string (e.g. "1500.50") into Money.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return MoneyFromDecimal(amount)
}

// ZeroMoney returns a valid zero amount.
func ZeroMoney() Money {
	m, _ := NewMoney(0)
	return m
}

// Validate checks that the Money value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	sum, _ := MoneyFromDecimal(m.amount.Add(other.amount))
	return sum
}

// SubFloorZero returns m minus other, floored at zero. Used for discount
// application where a discount may exceed the base fee.
func (m Money) SubFloorZero(other Money) Money {
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		return ZeroMoney()
	}
	res, _ := MoneyFromDecimal(diff)
	return res
}

// MulRate returns the amount multiplied by a non-negative rate, e.g. a VAT or
// commission percentage expressed as a decimal fraction.
func (m Money) MulRate(rate decimal.Decimal) Money {
	res, _ := MoneyFromDecimal(m.amount.Mul(rate))
	return res
}

// MulInt returns the amount multiplied by a non-negative integer factor.
func (m Money) MulInt(n int64) Money {
	if n < 0 {
		return ZeroMoney()
	}
	res, _ := MoneyFromDecimal(m.amount.Mul(decimal.NewFromInt(n)))
	return res
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the decimal string form of the amount.
func (m Money) String() string {
	return m.amount.String()
}
