// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fkondo/pos-receipts/internal/config"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "pos-receipts",
		Short: "Browse point-of-sale CSV exports as receipts.",
		Long: `pos-receipts groups the line items of a point-of-sale CSV export into
receipts and lets you filter, sort and search them per member.

Column header names are configuration: see the columns section of the
config file or POS_COLUMNS_* environment variables.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to load configuration")
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
		},
	}
)

// Init registers the persistent flags shared by all commands.
func Init() {
	Cmd.PersistentFlags().StringP("file", "f", "", "path to the POS CSV export")
	Cmd.PersistentFlags().StringP("format", "o", "text", "output format: text, json or yaml")
}
