package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/abbis_ledger/internal/platform/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	rootCmd = &cobra.Command{
		Use:   "abbis_ledger",
		Short: "Double-entry ledger posting engine",
		Long: `abbis_ledger keeps a chart of accounts and a journal of balanced entries,
and derives account ledgers, trial balances and financial statements from them.

Run "abbis_ledger serve" to start the HTTP API.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("db-driver", config.DriverSQLite, "storage backend (sqlite, postgres)")
	rootCmd.PersistentFlags().String("sqlite-path", "abbis_ledger.db", "path of the SQLite database file")
	rootCmd.PersistentFlags().String("pgsql-url", "", "PostgreSQL connection URL")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	// Bind flags to viper under the environment variable names
	_ = viper.BindPFlag("DB_DRIVER", rootCmd.PersistentFlags().Lookup("db-driver"))
	_ = viper.BindPFlag("SQLITE_PATH", rootCmd.PersistentFlags().Lookup("sqlite-path"))
	_ = viper.BindPFlag("PGSQL_URL", rootCmd.PersistentFlags().Lookup("pgsql-url"))
	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(tokenCmd())
}

// @title ABBIS Ledger API
// @version 1.0
// @description Double-entry ledger posting engine.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	// Initialize structured logger
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
