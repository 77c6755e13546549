// Package process contains the command that runs one conversion.
package process

import (
	"fmt"

	"fjacquet/cardmarket-lexoffice/cmd/root"
	"fjacquet/cardmarket-lexoffice/internal/invoice"
	"fjacquet/cardmarket-lexoffice/internal/lexoffice"
	"fjacquet/cardmarket-lexoffice/internal/logging"
	"fjacquet/cardmarket-lexoffice/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	inputFile string
	dryRun    bool
)

// Cmd is the process command.
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Convert an order export and create the invoices",
	Long: `Process reads a CardMarket order export, groups its rows into
shipments and creates one lexoffice invoice per shipment. Shipments that
fail validation are skipped and reported; the run continues.`,
	RunE: runProcess,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Order export file (.csv or .xlsx)")
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build payloads without submitting them")
	_ = Cmd.MarkFlagRequired("input")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := root.Cfg
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	if !dryRun && cfg.Lexoffice.APIKey == "" {
		return fmt.Errorf("no lexoffice API key configured: set LEXOFFICE_API_KEY or use --dry-run")
	}

	builder := invoice.NewBuilder(
		invoice.TaxRegime(cfg.Invoice.TaxRegime),
		cfg.Invoice.StandardTaxRate,
		logger,
	)
	gateway := lexoffice.NewClient(
		cfg.Lexoffice.APIKey,
		logger,
		lexoffice.WithBaseURL(cfg.Lexoffice.BaseURL),
	)

	p := pipeline.New(builder, gateway, cfg.MinInterval(), dryRun, logger)
	summary, err := p.Run(cmd.Context(), inputFile)
	if err != nil {
		return err
	}

	fmt.Printf("Done: %d of %d invoices created, %d skipped\n",
		summary.Succeeded, summary.Attempted, summary.Skipped)
	if summary.Skipped > 0 {
		return fmt.Errorf("%d of %d shipments were skipped", summary.Skipped, summary.Attempted)
	}
	return nil
}
