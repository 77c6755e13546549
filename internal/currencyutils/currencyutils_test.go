package currencyutils

import (
	"errors"
	"testing"

	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		amount   decimal.Decimal
		currency string
		hasError bool
	}{
		{"Comma decimal", "12,50 EUR", decimal.NewFromFloat(12.50), "EUR", false},
		{"Point decimal", "7.00 USD", decimal.NewFromFloat(7.00), "USD", false},
		{"Sub-euro price", "0,50 EUR", decimal.NewFromFloat(0.50), "EUR", false},
		{"Surrounding whitespace", " 1,15 EUR ", decimal.NewFromFloat(1.15), "EUR", false},
		{"Missing currency", "12,50", decimal.Zero, "", true},
		{"Lower-case currency", "12,50 eur", decimal.Zero, "", true},
		{"Word instead of code", "12,50 Euro", decimal.Zero, "", true},
		{"Non-numeric amount", "abc EUR", decimal.Zero, "", true},
		{"Empty string", "", decimal.Zero, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			money, err := ParsePrice(tc.input)
			if tc.hasError {
				var priceErr *pipelineerror.UnparseablePriceError
				assert.True(t, errors.As(err, &priceErr), "expected UnparseablePriceError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.amount.Equal(money.Amount), "expected %s but got %s", tc.amount, money.Amount)
			assert.Equal(t, tc.currency, money.Currency)
		})
	}
}

func TestParseBareAmount(t *testing.T) {
	money, err := ParseBareAmount("1,15", "EUR")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(1.15).Equal(money.Amount))
	assert.Equal(t, "EUR", money.Currency)

	_, err = ParseBareAmount("n/a", "EUR")
	var priceErr *pipelineerror.UnparseablePriceError
	assert.True(t, errors.As(err, &priceErr))
}
