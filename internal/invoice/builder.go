package invoice

import (
	"strings"

	"fjacquet/cardmarket-lexoffice/internal/countryutils"
	"fjacquet/cardmarket-lexoffice/internal/currencyutils"
	"fjacquet/cardmarket-lexoffice/internal/dateutils"
	"fjacquet/cardmarket-lexoffice/internal/logging"
	"fjacquet/cardmarket-lexoffice/internal/models"
	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"
	"fjacquet/cardmarket-lexoffice/internal/textutils"
)

const (
	// DefaultCurrency is assumed when the export carries no currency column.
	DefaultCurrency = "EUR"

	articleUnitName  = "Stück"
	shippingUnitName = "Pauschale"
	shippingLineName = "Versandkosten"
)

// Builder maps shipments into lexoffice invoice payloads. Every validation
// gate is terminal for its shipment: the result is either a fully valid
// payload or an error, never a partial invoice.
type Builder struct {
	logger       logging.Logger
	regime       TaxRegime
	standardRate int
}

// NewBuilder creates a Builder for the given tax regime. standardRate is
// the percentage applied under the net regime; the vatfree regime always
// taxes at 0%.
func NewBuilder(regime TaxRegime, standardRate int, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Builder{
		logger:       logger,
		regime:       regime,
		standardRate: standardRate,
	}
}

func (b *Builder) taxRate() int {
	if b.regime == TaxRegimeNet {
		return b.standardRate
	}
	return 0
}

// Build converts one shipment into an invoice payload. On any gate failure
// it returns nil and an error identifying the shipment by its order id;
// the shipment is skipped, never partially submitted.
func (b *Builder) Build(shipment models.Shipment) (*Payload, error) {
	log := b.logger.WithField(logging.FieldOrderID, shipment.OrderID)

	customerName := textutils.FixEncoding(shipment.BuyerName)
	street := textutils.FixEncoding(shipment.Street)
	cityAndPostal := textutils.FixEncoding(shipment.CityAndPostal)
	country := textutils.FixEncoding(shipment.Country)
	if customerName == "" || street == "" || cityAndPostal == "" || country == "" {
		return nil, b.reject(log, shipment, "missing customer data", nil)
	}

	postalCode, city, ok := splitCityCompound(cityAndPostal)
	if !ok {
		return nil, b.reject(log, shipment, "city field is not '<postal code> <city>': "+cityAndPostal, nil)
	}

	countryCode, err := countryutils.ResolveCode(country)
	if err != nil {
		return nil, b.reject(log, shipment, "unresolvable country", err)
	}

	if strings.TrimSpace(shipment.DateOfPurchase) == "" {
		return nil, b.reject(log, shipment, "no purchase date", nil)
	}
	purchasedAt, err := dateutils.ParsePurchaseDate(shipment.DateOfPurchase)
	if err != nil {
		return nil, b.reject(log, shipment, "unparseable purchase date", err)
	}
	voucherDate := dateutils.FormatVoucherDate(purchasedAt)

	if len(shipment.Articles) == 0 {
		return nil, b.reject(log, shipment, "no articles", nil)
	}

	currency := shipment.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	rate := b.taxRate()
	lineItems := make([]LineItem, 0, len(shipment.Articles)+1)
	for _, article := range shipment.Articles {
		item, err := b.buildLineItem(article, rate)
		if err != nil {
			return nil, b.reject(log, shipment, "defective article", err)
		}
		lineItems = append(lineItems, item)
	}

	shippingItem, err := b.buildShippingItem(log, shipment, currency, rate)
	if err != nil {
		return nil, b.reject(log, shipment, "unparseable shipment costs", err)
	}
	lineItems = append(lineItems, shippingItem)

	address := Address{
		Name:        customerName,
		Street:      street,
		Zip:         postalCode,
		City:        city,
		CountryCode: countryCode,
	}
	payload := &Payload{
		Customer: Customer{
			Name: customerName,
			Address: Address{
				Street:      street,
				Zip:         postalCode,
				City:        city,
				CountryCode: countryCode,
			},
		},
		Address:    &address,
		TotalPrice: &TotalPrice{Currency: currency},
		ShippingConditions: &ShippingConditions{
			ShippingDate: voucherDate,
			ShippingType: "none",
		},
		Archived:      false,
		VoucherDate:   voucherDate,
		LineItems:     lineItems,
		TaxConditions: TaxConditions{TaxType: b.regime},
	}

	log.Debug("Built invoice payload", logging.F(logging.FieldCount, len(lineItems)))
	return payload, nil
}

func (b *Builder) buildLineItem(article models.Article, taxRate int) (LineItem, error) {
	name := textutils.FixEncoding(article.Name)
	condition := textutils.FixEncoding(article.Condition)
	if name == "" || article.Price == "" || article.Quantity < 1 {
		return LineItem{}, &pipelineerror.ValidationRejectedError{
			Reason: "article is missing name, price or quantity",
		}
	}

	unitPrice, err := currencyutils.ParsePrice(article.Price)
	if err != nil {
		return LineItem{}, err
	}

	if condition != "" {
		name += " (" + condition + ")"
	}

	return LineItem{
		Type:     "custom",
		Name:     name,
		Quantity: article.Quantity,
		UnitName: articleUnitName,
		UnitPrice: UnitPrice{
			Currency:          unitPrice.Currency,
			NetAmount:         unitPrice.Amount.StringFixed(2),
			TaxRatePercentage: taxRate,
		},
		DiscountPercentage: 0,
		LineItemAmount:     unitPrice.MulInt(article.Quantity).Amount.StringFixed(2),
	}, nil
}

// buildShippingItem renders the flat shipping line. A missing shipping cost
// is not a defect: the line is emitted with a zero amount and a warning.
func (b *Builder) buildShippingItem(log logging.Logger, shipment models.Shipment, currency string, taxRate int) (LineItem, error) {
	shippingCost := models.ZeroMoney(currency)
	if strings.TrimSpace(shipment.ShipmentCosts) == "" {
		log.Warn("Shipment has no shipping costs, billing them at zero")
	} else {
		var err error
		shippingCost, err = currencyutils.ParseBareAmount(shipment.ShipmentCosts, currency)
		if err != nil {
			return LineItem{}, err
		}
	}

	return LineItem{
		Type:     "custom",
		Name:     shippingLineName,
		Quantity: 1,
		UnitName: shippingUnitName,
		UnitPrice: UnitPrice{
			Currency:          shippingCost.Currency,
			NetAmount:         shippingCost.Amount.StringFixed(2),
			TaxRatePercentage: taxRate,
		},
		DiscountPercentage: 0,
		LineItemAmount:     shippingCost.Amount.StringFixed(2),
	}, nil
}

func (b *Builder) reject(log logging.Logger, shipment models.Shipment, reason string, err error) error {
	rejection := &pipelineerror.ValidationRejectedError{
		OrderID: shipment.OrderID,
		Reason:  reason,
		Err:     err,
	}
	log.WithError(rejection).Error("Rejecting shipment",
		logging.F(logging.FieldReason, reason))
	return rejection
}

// splitCityCompound splits the combined "postal code city" column at the
// first space: the leading token is the postal code, the remainder the city
// (which may itself contain spaces, "60311 Frankfurt am Main"). Both halves
// must be non-empty.
func splitCityCompound(compound string) (postalCode, city string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(compound), " ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	postalCode = strings.TrimSpace(parts[0])
	city = strings.TrimSpace(parts[1])
	if postalCode == "" || city == "" {
		return "", "", false
	}
	return postalCode, city, true
}
