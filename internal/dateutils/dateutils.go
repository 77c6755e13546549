// Package dateutils parses and formats the purchase timestamps found in
// CardMarket exports. Exports carry naive local timestamps in either German
// day-first or ISO order, with or without seconds; lexoffice requires
// ISO-8601 voucher dates with millisecond precision and a UTC offset.
package dateutils

import (
	"strings"
	"time"

	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"
)

// PurchaseDateFormats are the known export formats, tried in order.
// First match wins.
var PurchaseDateFormats = []string{
	"02.01.2006 15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04",
	"2006-01-02 15:04",
}

// VoucherDateLayout renders ISO-8601 with milliseconds and UTC offset,
// e.g. "2024-03-24T14:05:00.000+01:00".
const VoucherDateLayout = "2006-01-02T15:04:05.000-07:00"

var berlin = mustLoadBerlin()

func mustLoadBerlin() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		// The tz database is compiled into the binary on all supported
		// platforms; a load failure means a broken build environment.
		panic("cannot load Europe/Berlin timezone: " + err.Error())
	}
	return loc
}

// ParsePurchaseDate parses a raw export timestamp. The naive timestamp is
// interpreted as civil time in Europe/Berlin, so the resulting instant
// carries the CET/CEST offset valid on that date.
func ParsePurchaseDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	for _, format := range PurchaseDateFormats {
		if t, err := time.ParseInLocation(format, cleaned, berlin); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &pipelineerror.UnparseableDateError{Value: dateStr}
}

// FormatVoucherDate renders a timestamp the way the lexoffice API expects
// voucher and shipping dates.
func FormatVoucherDate(t time.Time) string {
	return t.Format(VoucherDateLayout)
}
