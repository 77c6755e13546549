package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps run logs filterable by shipment and file.
const (
	FieldFile      = "file_path"
	FieldOrderID   = "order_id"
	FieldRunID     = "run_id"
	FieldReason    = "reason"
	FieldCount     = "count"
	FieldRow       = "row"
	FieldDelimiter = "delimiter"
	FieldCurrency  = "currency"
	FieldCountry   = "country"
	FieldStatus    = "status"
)
