// Package root contains the root command for the application
package root

import (
	"github.com/spf13/cobra"

	"gobudget/internal/config"
	"gobudget/internal/logging"
)

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg is the loaded configuration, available after PersistentPreRun
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "gobudget",
		Short: "A CLI tool to ingest bank exports, label transactions, and track a budget.",
		Long: `gobudget ingests raw bank CSV exports into a deduplicated ledger,
labels each transaction interactively with model-suggested categories and
amounts, and reports spending against a category budget.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to gobudget!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to initialize configuration")
			}
			Cfg = cfg

			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			logging.SetLogger(Log)
		},
	}
)
