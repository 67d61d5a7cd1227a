package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/SscSPs/abbis_ledger/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Backend names accepted by RunMigrations.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// RunMigrations applies every pending "up" migration for backend. For postgres
// dsn is the database URL, for sqlite the file path. A temporary connection is
// opened and closed for the run.
func RunMigrations(backend, dsn string, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("backend", backend))

	var (
		driverName string
		openDSN    string
		subdir     string
	)
	switch backend {
	case BackendPostgres:
		// pgx/v5/stdlib keeps migrations on the same driver as the main pool
		driverName, openDSN, subdir = "pgx", dsn, "postgres"
	case BackendSQLite:
		driverName, openDSN, subdir = "sqlite3", SQLiteDSN(dsn), "sqlite"
	default:
		return fmt.Errorf("unsupported migration backend %q", backend)
	}

	migrationDB, err := sql.Open(driverName, openDSN)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	var driver migratedb.Driver
	if backend == BackendPostgres {
		driver, err = postgres.WithInstance(migrationDB, &postgres.Config{})
	} else {
		driver, err = sqlite3.WithInstance(migrationDB, &sqlite3.Config{})
	}
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not create %s driver instance for migrations: %w", backend, err)
	}

	sub, err := fs.Sub(migrations.FS, subdir)
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, backend, driver)
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()

	// Closing the migrate instance also closes migrationDB.
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
