package invoice

import (
	"errors"
	"testing"

	"fjacquet/cardmarket-lexoffice/internal/logging"
	"fjacquet/cardmarket-lexoffice/internal/models"
	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleShipment() models.Shipment {
	return models.Shipment{
		OrderID:        "1001",
		BuyerName:      "Max Mustermann",
		Street:         "Musterweg 1",
		CityAndPostal:  "60311 Frankfurt am Main",
		Country:        "Deutschland",
		DateOfPurchase: "24.03.2024 14:05:00",
		ShipmentCosts:  "1,15",
		Currency:       "EUR",
		Articles: []models.Article{
			{
				Quantity:  3,
				Name:      "Lightning Bolt",
				Condition: "NM",
				Price:     "0,50 EUR",
			},
		},
	}
}

func TestBuildVatfreePayload(t *testing.T) {
	builder := NewBuilder(TaxRegimeVATFree, 19, logging.NewMockLogger())

	payload, err := builder.Build(sampleShipment())
	require.NoError(t, err)

	assert.Equal(t, "Max Mustermann", payload.Customer.Name)
	require.NotNil(t, payload.Address)
	assert.Equal(t, "Musterweg 1", payload.Address.Street)
	assert.Equal(t, "60311", payload.Address.Zip)
	assert.Equal(t, "Frankfurt am Main", payload.Address.City)
	assert.Equal(t, "DE", payload.Address.CountryCode)

	assert.Equal(t, "2024-03-24T14:05:00.000+01:00", payload.VoucherDate)
	require.NotNil(t, payload.ShippingConditions)
	assert.Equal(t, payload.VoucherDate, payload.ShippingConditions.ShippingDate)
	assert.Equal(t, "none", payload.ShippingConditions.ShippingType)
	assert.False(t, payload.Archived)
	assert.Equal(t, TaxRegimeVATFree, payload.TaxConditions.TaxType)
	require.NotNil(t, payload.TotalPrice)
	assert.Equal(t, "EUR", payload.TotalPrice.Currency)

	require.Len(t, payload.LineItems, 2)

	article := payload.LineItems[0]
	assert.Equal(t, "custom", article.Type)
	assert.Equal(t, "Lightning Bolt (NM)", article.Name)
	assert.Equal(t, 3, article.Quantity)
	assert.Equal(t, "Stück", article.UnitName)
	assert.Equal(t, "EUR", article.UnitPrice.Currency)
	assert.Equal(t, "0.50", article.UnitPrice.NetAmount)
	assert.Equal(t, 0, article.UnitPrice.TaxRatePercentage)
	assert.Equal(t, "1.50", article.LineItemAmount)

	shipping := payload.LineItems[1]
	assert.Equal(t, "Versandkosten", shipping.Name)
	assert.Equal(t, 1, shipping.Quantity)
	assert.Equal(t, "Pauschale", shipping.UnitName)
	assert.Equal(t, "1.15", shipping.UnitPrice.NetAmount)
	assert.Equal(t, "1.15", shipping.LineItemAmount)
}

func TestBuildNetRegimeUsesStandardRate(t *testing.T) {
	builder := NewBuilder(TaxRegimeNet, 19, logging.NewMockLogger())

	payload, err := builder.Build(sampleShipment())
	require.NoError(t, err)

	assert.Equal(t, TaxRegimeNet, payload.TaxConditions.TaxType)
	for _, item := range payload.LineItems {
		assert.Equal(t, 19, item.UnitPrice.TaxRatePercentage)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	builder := NewBuilder(TaxRegimeVATFree, 19, logging.NewMockLogger())

	first, err := builder.Build(sampleShipment())
	require.NoError(t, err)
	second, err := builder.Build(sampleShipment())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildRepairsMojibakeCustomerData(t *testing.T) {
	shipment := sampleShipment()
	shipment.BuyerName = "JÃ¼rgen MÃ¼ller"
	shipment.CityAndPostal = "80331 MÃ¼nchen"

	payload, err := NewBuilder(TaxRegimeVATFree, 19, logging.NewMockLogger()).Build(shipment)
	require.NoError(t, err)

	assert.Equal(t, "Jürgen Müller", payload.Customer.Name)
	assert.Equal(t, "München", payload.Address.City)
}

func TestBuildMissingShippingCostsBilledAtZero(t *testing.T) {
	logger := logging.NewMockLogger()
	shipment := sampleShipment()
	shipment.ShipmentCosts = ""

	payload, err := NewBuilder(TaxRegimeVATFree, 19, logger).Build(shipment)
	require.NoError(t, err)

	shipping := payload.LineItems[len(payload.LineItems)-1]
	assert.Equal(t, "Versandkosten", shipping.Name)
	assert.Equal(t, "0.00", shipping.UnitPrice.NetAmount)
	assert.True(t, logger.HasEntry("WARN", "Shipment has no shipping costs, billing them at zero"))
}

func TestBuildRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Shipment)
	}{
		{"missing buyer name", func(s *models.Shipment) { s.BuyerName = "" }},
		{"missing street", func(s *models.Shipment) { s.Street = "" }},
		{"city without postal code", func(s *models.Shipment) { s.CityAndPostal = "Frankfurt" }},
		{"unknown country", func(s *models.Shipment) { s.Country = "Atlantis" }},
		{"missing purchase date", func(s *models.Shipment) { s.DateOfPurchase = "" }},
		{"unparseable purchase date", func(s *models.Shipment) { s.DateOfPurchase = "yesterday" }},
		{"no articles", func(s *models.Shipment) { s.Articles = nil }},
		{"article without price", func(s *models.Shipment) { s.Articles[0].Price = "" }},
		{"article with bad price", func(s *models.Shipment) { s.Articles[0].Price = "cheap" }},
		{"article with zero quantity", func(s *models.Shipment) { s.Articles[0].Quantity = 0 }},
		{"unparseable shipment costs", func(s *models.Shipment) { s.ShipmentCosts = "free" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewMockLogger()
			shipment := sampleShipment()
			tt.mutate(&shipment)

			payload, err := NewBuilder(TaxRegimeVATFree, 19, logger).Build(shipment)

			assert.Nil(t, payload)
			var rejection *pipelineerror.ValidationRejectedError
			require.True(t, errors.As(err, &rejection))
			assert.Equal(t, "1001", rejection.OrderID)
			assert.True(t, logger.HasEntry("ERROR", "Rejecting shipment"))
		})
	}
}
