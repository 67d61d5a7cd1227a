package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository implements the ReportingRepository interface for PostgreSQL
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new PostgreSQL reporting repository
func newPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountTotals sums debits and credits per account for entries dated in window.
func (r *PgxReportingRepository) GetAccountTotals(ctx context.Context, window domain.ReportWindow) ([]domain.AccountTotals, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.journal_entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE TRUE`
	args := []any{}
	if !window.From.IsZero() {
		args = append(args, domain.DateOnly(window.From))
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if !window.To.IsZero() {
		args = append(args, domain.DateOnly(window.To))
		query += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY ` + accountTypeOrder + `, a.code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account totals", err)
	}
	defer rows.Close()

	totals := []domain.AccountTotals{}
	for rows.Next() {
		var t domain.AccountTotals
		if err := rows.Scan(&t.AccountID, &t.Code, &t.Name, &t.AccountType, &t.Debit, &t.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account totals row", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account totals rows", err)
	}
	return totals, nil
}

// GetEntryTotals sums the lines of every stored entry.
func (r *PgxReportingRepository) GetEntryTotals(ctx context.Context) ([]domain.EntryTotals, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.reference,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entries e
		LEFT JOIN journal_entry_lines l ON l.journal_entry_id = e.entry_id
		GROUP BY e.seq, e.entry_id, e.entry_number, e.reference
		ORDER BY e.seq;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry totals", err)
	}
	defer rows.Close()

	totals := []domain.EntryTotals{}
	for rows.Next() {
		var t domain.EntryTotals
		if err := rows.Scan(&t.EntryID, &t.EntryNumber, &t.Reference, &t.Debit, &t.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry totals row", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry totals rows", err)
	}
	return totals, nil
}
