// Package models holds the data types flowing through the conversion
// pipeline: the typed CSV row, the reconstructed shipment and its articles,
// and an exact-decimal money value.
package models

// OrderRow is one record of a CardMarket order export. Column headers are
// trimmed and lower-cased by the loader before these tags are matched, so
// the tags are the normalized header names. Every field is a raw string;
// normalization happens later, per field, in the payload builder.
type OrderRow struct {
	OrderID              string `csv:"orderid"`
	Username             string `csv:"username"`
	Name                 string `csv:"name"`
	Street               string `csv:"street"`
	City                 string `csv:"city"`
	Country              string `csv:"country"`
	IsProfessional       string `csv:"is professional"`
	VATNumber            string `csv:"vat number"`
	DateOfPurchase       string `csv:"date of purchase"`
	ArticleCount         string `csv:"article count"`
	MerchandiseValue     string `csv:"merchandise value"`
	ShipmentCosts        string `csv:"shipment costs"`
	TotalValue           string `csv:"total value"`
	Commission           string `csv:"commission"`
	Currency             string `csv:"currency"`
	Description          string `csv:"description"`
	ProductID            string `csv:"product id"`
	LocalizedProductName string `csv:"localized product name"`
}

// Article is one line item of a shipment, decoded from a compact
// " - "-separated description fragment. Absent optional fields are zero
// values; Quantity 0 means the quantity prefix did not match, which the
// payload builder treats as a terminal defect for the whole shipment.
type Article struct {
	Quantity  int
	Name      string
	Number    string
	Rarity    string
	Condition string
	Language  string
	// Price is the raw currency-tagged unit price string, e.g. "0,50 EUR".
	Price string
	// ProductID and LocalizedName are carried verbatim from their cells.
	ProductID     string
	LocalizedName string
}

// Shipment is one buyer order, possibly reconstructed from several export
// rows, mapped to exactly one invoice. Scalar attributes come from the first
// row of the group; Articles is the flattened article list across all rows.
type Shipment struct {
	OrderID        string
	BuyerName      string
	Street         string
	CityAndPostal  string
	Country        string
	DateOfPurchase string
	ShipmentCosts  string
	Currency       string
	Articles       []Article
}
