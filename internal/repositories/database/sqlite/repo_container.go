package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/abbis_ledger/pkg/database"
)

// NewRepositoryProvider wires every SQLite repository onto one database handle.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newSQLiteAccountRepository(db),
		JournalRepo:      newSQLiteJournalRepository(db),
		ReportingRepo:    newSQLiteReportingRepository(db),
		FiscalPeriodRepo: newSQLiteFiscalPeriodRepository(db),
		Close:            func() { database.CloseSQLiteDB(db) },
	}
}
