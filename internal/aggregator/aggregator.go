// Package aggregator reconstructs shipments from order export rows.
//
// CardMarket writes one row per exported article batch: the first row of an
// order carries the order id and the buyer columns, and every immediately
// following row with an empty order id continues the same order with more
// articles. The aggregator folds those continuation rows back into their
// order (carry-forward grouping) and runs the article cells of every row
// through the article parser.
package aggregator

import (
	"fjacquet/cardmarket-lexoffice/internal/articleparser"
	"fjacquet/cardmarket-lexoffice/internal/logging"
	"fjacquet/cardmarket-lexoffice/internal/models"
	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"
	"fjacquet/cardmarket-lexoffice/internal/tabular"
)

// Aggregator groups loaded rows into shipments.
type Aggregator struct {
	logger logging.Logger
}

// New creates an Aggregator with the provided logger.
func New(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{logger: logger}
}

// Aggregate groups the table's rows into shipments, in original file order.
//
// A row with a non-empty order id opens a new group; empty-id rows fold
// into the preceding group. Scalar attributes come from the first row of a
// group (first wins); the article cells of all rows are parsed and
// flattened in row order. Rows before the first keyed row have no group to
// belong to and are dropped with a warning.
//
// If the key column is absent from the input entirely there is nothing to
// group: Aggregate returns an empty result together with a
// MissingKeyColumnError so the caller can abort the run.
//
// A group whose article cells disagree on the item count is skipped, not
// fatal; Skipped reports how many groups were lost that way.
func (a *Aggregator) Aggregate(table *tabular.Table) (shipments []models.Shipment, skipped int, err error) {
	if !table.HasColumn(tabular.KeyColumn) {
		return []models.Shipment{}, 0, &pipelineerror.MissingKeyColumnError{Column: tabular.KeyColumn}
	}

	var groups [][]models.OrderRow
	for i, row := range table.Rows {
		if row.OrderID != "" {
			groups = append(groups, []models.OrderRow{row})
			continue
		}
		if len(groups) == 0 {
			a.logger.Warn("Dropping continuation row with no preceding order id",
				logging.F(logging.FieldRow, i+1))
			continue
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], row)
	}

	for _, group := range groups {
		shipment, groupErr := a.buildShipment(group)
		if groupErr != nil {
			a.logger.WithError(groupErr).Error("Skipping shipment with inconsistent article cells",
				logging.F(logging.FieldOrderID, group[0].OrderID))
			skipped++
			continue
		}
		shipments = append(shipments, shipment)
	}

	a.logger.Info("Aggregated rows into shipments",
		logging.F(logging.FieldCount, len(shipments)),
		logging.F("skipped", skipped))
	return shipments, skipped, nil
}

func (a *Aggregator) buildShipment(group []models.OrderRow) (models.Shipment, error) {
	first := group[0]
	shipment := models.Shipment{
		OrderID:        first.OrderID,
		BuyerName:      first.Name,
		Street:         first.Street,
		CityAndPostal:  first.City,
		Country:        first.Country,
		DateOfPurchase: first.DateOfPurchase,
		ShipmentCosts:  first.ShipmentCosts,
		Currency:       first.Currency,
	}

	for _, row := range group {
		articles, err := articleparser.ParseArticles(
			first.OrderID, row.Description, row.ProductID, row.LocalizedProductName)
		if err != nil {
			return models.Shipment{}, err
		}
		shipment.Articles = append(shipment.Articles, articles...)
	}
	return shipment, nil
}
