package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/core/services"
	"github.com/SscSPs/abbis_ledger/internal/platform/config"
	"github.com/SscSPs/abbis_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/abbis_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/abbis_ledger/pkg/database"
)

// migrate applies the schema for the configured backend.
func migrate(cfg *config.Config, logger *slog.Logger) error {
	if cfg.DBDriver == config.DriverPostgres {
		return database.RunMigrations(database.BackendPostgres, cfg.DatabaseURL, logger)
	}
	return database.RunMigrations(database.BackendSQLite, cfg.SQLitePath, logger)
}

// openStorage connects to the configured backend, optionally migrating it first.
// Callers must invoke the returned provider's Close.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger, runMigrations bool) (portsrepo.RepositoryProvider, error) {
	if runMigrations {
		if err := migrate(cfg, logger); err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
	}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.", slog.String("driver", cfg.DBDriver))
		return pgsql.NewRepositoryProvider(dbPool), nil
	default:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("SQLite database opened.", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), nil
	}
}

// openServices is openStorage plus the service container built over it.
func openServices(ctx context.Context, runMigrations bool) (*portssvc.ServiceContainer, func(), error) {
	repos, err := openStorage(ctx, cfg, logger, runMigrations)
	if err != nil {
		return nil, nil, err
	}
	return services.NewServiceContainer(repos), repos.Close, nil
}
