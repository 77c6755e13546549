package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with currency. Amounts are exact
// decimals; money math must never go through binary floating point.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney creates a Money value with the given amount and currency.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{
		Amount:   decimal.Zero,
		Currency: currency,
	}
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Mul multiplies the amount by a decimal factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{
		Amount:   m.Amount.Mul(factor),
		Currency: m.Currency,
	}
}

// MulInt multiplies the amount by an integer factor, e.g. a line quantity.
func (m Money) MulInt(factor int) Money {
	return m.Mul(decimal.NewFromInt(int64(factor)))
}

// Add adds another Money value to this one.
// Returns an error if currencies don't match.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.Currency, other.Currency)
	}
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

// Equal returns true if two Money values have the same amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Amount.Equal(other.Amount) && m.Currency == other.Currency
}

// String returns the amount with two decimal places and the currency code,
// e.g. "12.50 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
