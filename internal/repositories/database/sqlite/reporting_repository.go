package sqlite

import (
	"context"
	"database/sql"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
)

type SQLiteReportingRepository struct {
	BaseRepository
}

func newSQLiteReportingRepository(db *sql.DB) *SQLiteReportingRepository {
	return &SQLiteReportingRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ReportingRepository = (*SQLiteReportingRepository)(nil)

// GetAccountTotals sums debits and credits per account for entries dated in window.
// Dates are stored as YYYY-MM-DD so string comparison orders them correctly.
func (r *SQLiteReportingRepository) GetAccountTotals(ctx context.Context, window domain.ReportWindow) ([]domain.AccountTotals, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.journal_entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE 1 = 1`
	args := []any{}
	if !window.From.IsZero() {
		query += ` AND e.entry_date >= ?`
		args = append(args, formatDate(window.From))
	}
	if !window.To.IsZero() {
		query += ` AND e.entry_date <= ?`
		args = append(args, formatDate(window.To))
	}
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY ` + accountTypeOrder + `, a.code;`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account totals", err)
	}
	defer rows.Close()

	totals := []domain.AccountTotals{}
	for rows.Next() {
		var (
			t             domain.AccountTotals
			debit, credit int64
		)
		if err := rows.Scan(&t.AccountID, &t.Code, &t.Name, &t.AccountType, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account totals row", err)
		}
		t.Debit, t.Credit = fromCents(debit), fromCents(credit)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account totals rows", err)
	}
	return totals, nil
}

// GetEntryTotals sums the lines of every stored entry.
func (r *SQLiteReportingRepository) GetEntryTotals(ctx context.Context) ([]domain.EntryTotals, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.reference,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entries e
		LEFT JOIN journal_entry_lines l ON l.journal_entry_id = e.entry_id
		GROUP BY e.seq, e.entry_id, e.entry_number, e.reference
		ORDER BY e.seq;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry totals", err)
	}
	defer rows.Close()

	totals := []domain.EntryTotals{}
	for rows.Next() {
		var (
			t             domain.EntryTotals
			debit, credit int64
		)
		if err := rows.Scan(&t.EntryID, &t.EntryNumber, &t.Reference, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry totals row", err)
		}
		t.Debit, t.Credit = fromCents(debit), fromCents(credit)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry totals rows", err)
	}
	return totals, nil
}
