// Package pipeline orchestrates a conversion run: load the export,
// reconstruct shipments, build invoice payloads, submit them at a paced
// rate, and report the run outcome.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"fjacquet/cardmarket-lexoffice/internal/aggregator"
	"fjacquet/cardmarket-lexoffice/internal/invoice"
	"fjacquet/cardmarket-lexoffice/internal/logging"
	"fjacquet/cardmarket-lexoffice/internal/tabular"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Gateway accepts a built invoice payload for submission. The production
// implementation is the lexoffice client; tests plug in fakes.
type Gateway interface {
	Submit(ctx context.Context, payload *invoice.Payload) error
}

// Summary is the outcome of one run. Attempted counts every distinct
// shipment found in the export; each of them ends up either succeeded or
// skipped. No shipment is ever partially submitted.
type Summary struct {
	Attempted int
	Succeeded int
	Skipped   int
}

// Pipeline processes one export file per run, shipments strictly in
// sequence. It holds no state across runs.
type Pipeline struct {
	logger      logging.Logger
	builder     *invoice.Builder
	gateway     Gateway
	minInterval time.Duration
	dryRun      bool
}

// New creates a Pipeline. minInterval is the minimum spacing between
// submissions, respecting the lexoffice request-rate ceiling; zero disables
// pacing. With dryRun set, payloads are built and logged but not submitted.
func New(builder *invoice.Builder, gateway Gateway, minInterval time.Duration, dryRun bool, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{
		logger:      logger,
		builder:     builder,
		gateway:     gateway,
		minInterval: minInterval,
		dryRun:      dryRun,
	}
}

// Run executes one conversion run over the given export file.
//
// Structural problems with the input (unsupported format, empty input,
// missing key column) abort the run with an error. Everything scoped to a
// single shipment only skips that shipment; the run continues and the
// summary reports the counts.
func (p *Pipeline) Run(ctx context.Context, filePath string) (Summary, error) {
	log := p.logger.WithFields(
		logging.Field{Key: logging.FieldRunID, Value: uuid.NewString()},
		logging.Field{Key: logging.FieldFile, Value: filePath},
	)
	log.Info("Starting CardMarket to lexoffice run")

	table, err := tabular.Load(filePath, log)
	if err != nil {
		return Summary{}, fmt.Errorf("loading %s: %w", filePath, err)
	}

	shipments, skipped, err := aggregator.New(log).Aggregate(table)
	if err != nil {
		return Summary{}, fmt.Errorf("grouping shipments: %w", err)
	}

	summary := Summary{
		Attempted: len(shipments) + skipped,
		Skipped:   skipped,
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if p.minInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(p.minInterval), 1)
	}

	for _, shipment := range shipments {
		payload, err := p.builder.Build(shipment)
		if err != nil {
			// Already logged with the order id by the builder.
			summary.Skipped++
			continue
		}

		if p.dryRun {
			log.Info("Dry run, not submitting invoice",
				logging.F(logging.FieldOrderID, shipment.OrderID),
				logging.F(logging.FieldCount, len(payload.LineItems)))
			summary.Succeeded++
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return summary, fmt.Errorf("run cancelled: %w", err)
		}

		if err := p.gateway.Submit(ctx, payload); err != nil {
			log.WithError(err).Error("Invoice submission failed",
				logging.F(logging.FieldOrderID, shipment.OrderID))
			summary.Skipped++
			continue
		}
		summary.Succeeded++
	}

	log.Info("Run finished",
		logging.F("attempted", summary.Attempted),
		logging.F("succeeded", summary.Succeeded),
		logging.F("skipped", summary.Skipped))
	return summary, nil
}
