package pipelineerror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"unsupported format",
			&UnsupportedFormatError{FilePath: "orders.txt", Extension: ".txt"},
			"unsupported file type '.txt' for orders.txt: expected .csv or .xlsx",
		},
		{
			"empty input",
			&EmptyInputError{FilePath: "orders.csv"},
			"no order rows found in orders.csv",
		},
		{
			"missing key column",
			&MissingKeyColumnError{Column: "orderid"},
			"key column 'orderid' not found in input",
		},
		{
			"item count mismatch",
			&ItemCountMismatchError{OrderID: "1001", Descriptions: 2, ProductIDs: 1, Names: 2},
			"order 1001: article cells disagree on item count: 2 descriptions, 1 product ids, 2 names",
		},
		{
			"unparseable date",
			&UnparseableDateError{Value: "yesterday"},
			"no valid date format found for 'yesterday'",
		},
		{
			"unknown country",
			&UnknownCountryError{Name: "Atlantis"},
			"country code for 'Atlantis' not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnparseablePriceUnwrap(t *testing.T) {
	cause := errors.New("bad decimal")
	err := &UnparseablePriceError{Value: "cheap", Err: cause}

	assert.Contains(t, err.Error(), "cheap")
	assert.ErrorIs(t, err, cause)
}

func TestValidationRejectedUnwrap(t *testing.T) {
	cause := &UnknownCountryError{Name: "Atlantis"}
	err := &ValidationRejectedError{OrderID: "1001", Reason: "unresolvable country", Err: cause}

	assert.Contains(t, err.Error(), "order 1001 rejected")
	assert.Contains(t, err.Error(), "unresolvable country")

	var countryErr *UnknownCountryError
	require.True(t, errors.As(err, &countryErr))
	assert.Equal(t, "Atlantis", countryErr.Name)
}

func TestValidationRejectedWithoutCause(t *testing.T) {
	err := &ValidationRejectedError{OrderID: "1001", Reason: "no articles"}

	assert.Equal(t, "order 1001 rejected: no articles", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
