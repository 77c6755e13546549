// Package pipelineerror defines the typed errors produced by the conversion
// pipeline. Load-time errors (UnsupportedFormat, EmptyInput,
// MissingKeyColumn) abort a run; the remaining errors are scoped to a single
// shipment, which is skipped while the run continues.
package pipelineerror

import "fmt"

// UnsupportedFormatError indicates the input file extension is not a
// recognized tabular type.
type UnsupportedFormatError struct {
	FilePath  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type '%s' for %s: expected .csv or .xlsx", e.Extension, e.FilePath)
}

// EmptyInputError indicates the input file contained no data rows.
type EmptyInputError struct {
	FilePath string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no order rows found in %s", e.FilePath)
}

// MissingKeyColumnError indicates the order-identifier column is absent from
// the input entirely, so rows cannot be grouped into shipments.
type MissingKeyColumnError struct {
	Column string
}

func (e *MissingKeyColumnError) Error() string {
	return fmt.Sprintf("key column '%s' not found in input", e.Column)
}

// ItemCountMismatchError indicates the pipe-delimited description, product id
// and product name cells of a row disagree on how many articles they encode.
type ItemCountMismatchError struct {
	OrderID      string
	Descriptions int
	ProductIDs   int
	Names        int
}

func (e *ItemCountMismatchError) Error() string {
	return fmt.Sprintf("order %s: article cells disagree on item count: %d descriptions, %d product ids, %d names",
		e.OrderID, e.Descriptions, e.ProductIDs, e.Names)
}

// UnparseableDateError indicates a purchase date matched none of the known
// date formats.
type UnparseableDateError struct {
	Value string
}

func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("no valid date format found for '%s'", e.Value)
}

// UnknownCountryError indicates a country name could not be resolved to an
// ISO alpha-2 code, neither exactly nor by substring.
type UnknownCountryError struct {
	Name string
}

func (e *UnknownCountryError) Error() string {
	return fmt.Sprintf("country code for '%s' not found", e.Name)
}

// UnparseablePriceError indicates a price string did not match the expected
// "<amount>[,.]<fraction> <currency>" shape.
type UnparseablePriceError struct {
	Value string
	Err   error
}

func (e *UnparseablePriceError) Error() string {
	return fmt.Sprintf("failed to parse price '%s': %v", e.Value, e.Err)
}

func (e *UnparseablePriceError) Unwrap() error {
	return e.Err
}

// ValidationRejectedError indicates a payload-builder gate failed for a
// shipment. The shipment is never partially submitted.
type ValidationRejectedError struct {
	OrderID string
	Reason  string
	Err     error
}

func (e *ValidationRejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("order %s rejected: %s: %v", e.OrderID, e.Reason, e.Err)
	}
	return fmt.Sprintf("order %s rejected: %s", e.OrderID, e.Reason)
}

func (e *ValidationRejectedError) Unwrap() error {
	return e.Err
}
