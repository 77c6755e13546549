// Package root contains the root command for the application
package root

import (
	"fjacquet/cardmarket-lexoffice/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the configuration loaded for the current invocation
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cardmarket-lexoffice",
		Short: "Convert CardMarket order exports into lexoffice invoices.",
		Long: `cardmarket-lexoffice reads a CardMarket order export (CSV or XLSX),
reconstructs the shipments it contains and creates one lexoffice invoice
per shipment via the lexoffice API.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cardmarket-lexoffice!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
			return nil
		},
	}
)
