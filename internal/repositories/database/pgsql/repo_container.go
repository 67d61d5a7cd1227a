package pgsql

import (
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/abbis_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
		FiscalPeriodRepo: newPgxFiscalPeriodRepository(dbPool),
		Close:            func() { database.ClosePgxPool(dbPool) },
	}
}
