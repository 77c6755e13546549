// Package invoice builds lexoffice invoice-creation payloads from
// reconstructed shipments.
package invoice

// TaxRegime selects how line items are taxed. CardMarket sellers under the
// German small-business regime issue tax-free invoices; regular sellers
// issue net invoices at the standard VAT rate.
type TaxRegime string

const (
	// TaxRegimeVATFree issues tax-free invoices: every line at 0%.
	TaxRegimeVATFree TaxRegime = "vatfree"
	// TaxRegimeNet issues net invoices at the configured standard rate.
	TaxRegimeNet TaxRegime = "net"
)

// Valid reports whether the regime is one of the supported variants.
func (r TaxRegime) Valid() bool {
	return r == TaxRegimeVATFree || r == TaxRegimeNet
}

// Payload is the request body for POST /v1/invoices. It is built fresh per
// shipment and never mutated after construction.
type Payload struct {
	Customer           Customer            `json:"customer"`
	Address            *Address            `json:"address,omitempty"`
	TotalPrice         *TotalPrice         `json:"totalPrice,omitempty"`
	ShippingConditions *ShippingConditions `json:"shippingConditions,omitempty"`
	Archived           bool                `json:"archived"`
	VoucherDate        string              `json:"voucherDate"`
	LineItems          []LineItem          `json:"lineItems"`
	TaxConditions      TaxConditions       `json:"taxConditions"`
}

// Customer is the billed party.
type Customer struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// Address is a postal address; as a top-level payload field it mirrors the
// customer address for shipping and carries the name as well.
type Address struct {
	Name        string `json:"name,omitempty"`
	Street      string `json:"street"`
	Zip         string `json:"zip"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
}

// TotalPrice carries the invoice currency; lexoffice computes the totals
// from the line items.
type TotalPrice struct {
	Currency string `json:"currency"`
}

// ShippingConditions dates the shipment.
type ShippingConditions struct {
	ShippingDate string `json:"shippingDate"`
	ShippingType string `json:"shippingType"`
}

// LineItem is one invoice position.
type LineItem struct {
	Type               string    `json:"type"`
	Name               string    `json:"name"`
	Quantity           int       `json:"quantity"`
	UnitName           string    `json:"unitName"`
	UnitPrice          UnitPrice `json:"unitPrice"`
	DiscountPercentage int       `json:"discountPercentage"`
	LineItemAmount     string    `json:"lineItemAmount"`
}

// UnitPrice is the net unit price of a line item. Amounts are rendered as
// strings with two decimal places so no precision is lost in transit.
type UnitPrice struct {
	Currency          string `json:"currency"`
	NetAmount         string `json:"netAmount"`
	TaxRatePercentage int    `json:"taxRatePercentage"`
}

// TaxConditions carries the tax regime flag.
type TaxConditions struct {
	TaxType TaxRegime `json:"taxType"`
}
