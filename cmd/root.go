package cmd

import (
	"github.com/simonvc/shopledger/internal/config"
	"github.com/simonvc/shopledger/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagServer  string
	flagDB      string
	flagEnvFile string

	cfg        *config.Config
	baseLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "shopledger",
	Short:         "Bookkeeping for a small retail shop",
	Long:          "Records sales, purchases, expenses and customer/supplier credit for a single shop, with stock tracking and profit reports.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagEnvFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			loaded.DBPath = flagDB
		}
		if cmd.Flags().Changed("server") {
			loaded.ServerURL = flagServer
		}
		cfg = loaded

		l, err := logger.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		baseLogger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if baseLogger != nil {
			_ = baseLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8888", "Server address (overrides SHOPLEDGER_SERVER)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "ledger.db", "SQLite database path (overrides SHOPLEDGER_DB)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Optional .env file to load")
}

func Execute() error {
	return rootCmd.Execute()
}
