// Package currencyutils parses the locale-mixed money strings found in
// CardMarket exports into exact decimal values.
package currencyutils

import (
	"regexp"
	"strings"

	"fjacquet/cardmarket-lexoffice/internal/models"
	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"

	"github.com/shopspring/decimal"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ParsePrice parses a currency-tagged unit price of the form
// "<number>[,.]<fraction> <ISO-code>", e.g. "12,50 EUR" or "7.00 USD".
// The decimal separator may be comma or point; comma is normalized to point
// before the numeric parse. The amount is an exact decimal, never a float.
func ParsePrice(priceStr string) (models.Money, error) {
	fields := strings.Fields(strings.TrimSpace(priceStr))
	if len(fields) != 2 {
		return models.Money{}, &pipelineerror.UnparseablePriceError{
			Value: priceStr,
			Err:   errMissingCurrency,
		}
	}

	amount, err := parseDecimal(fields[0])
	if err != nil {
		return models.Money{}, &pipelineerror.UnparseablePriceError{Value: priceStr, Err: err}
	}

	currency := fields[1]
	if !currencyCodePattern.MatchString(currency) {
		return models.Money{}, &pipelineerror.UnparseablePriceError{
			Value: priceStr,
			Err:   errBadCurrencyCode,
		}
	}

	return models.NewMoney(amount, currency), nil
}

// ParseBareAmount parses an amount without a currency tag, e.g. the
// "shipment costs" column ("1,15"). The currency is supplied by the caller.
func ParseBareAmount(amountStr, currency string) (models.Money, error) {
	amount, err := parseDecimal(strings.TrimSpace(amountStr))
	if err != nil {
		return models.Money{}, &pipelineerror.UnparseablePriceError{Value: amountStr, Err: err}
	}
	return models.NewMoney(amount, currency), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

var (
	errMissingCurrency = &fieldError{"expected '<amount> <currency>'"}
	errBadCurrencyCode = &fieldError{"currency is not a three-letter ISO code"}
)

type fieldError struct {
	msg string
}

func (e *fieldError) Error() string {
	return e.msg
}
