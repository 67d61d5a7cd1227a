package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/abbis_ledger/internal/models"
	"github.com/SscSPs/abbis_ledger/internal/utils/mapping"
	"github.com/SscSPs/abbis_ledger/internal/utils/pagination"
	"github.com/mattn/go-sqlite3"
)

const entryColumns = `seq, entry_id, entry_number, entry_date, reference, description, idempotency_key, reverses_entry_id, created_at, created_by`

type SQLiteJournalRepository struct {
	BaseRepository
}

func newSQLiteJournalRepository(db *sql.DB) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.JournalRepositoryFacade = (*SQLiteJournalRepository)(nil)

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var (
		m                    models.JournalEntry
		entryDate, createdAt string
	)
	err := row.Scan(&m.Seq, &m.EntryID, &m.EntryNumber, &entryDate, &m.Reference, &m.Description,
		&m.IdempotencyKey, &m.ReversesEntryID, &createdAt, &m.CreatedBy)
	if err != nil {
		return m, err
	}
	if m.EntryDate, err = parseDate(entryDate); err != nil {
		return m, err
	}
	m.CreatedAt, err = parseTimestamp(createdAt)
	return m, err
}

// SaveEntry inserts the header and all lines within a single transaction.
func (r *SQLiteJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_number, entry_date, reference, description, idempotency_key, reverses_entry_id, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, entryQuery, m.EntryID, m.EntryNumber, formatDate(m.EntryDate), m.Reference, m.Description,
		m.IdempotencyKey, m.ReversesEntryID, formatTimestamp(m.CreatedAt), m.CreatedBy)
	if err != nil {
		return mapEntryError(err, m)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO journal_entry_lines (line_id, journal_entry_id, account_id, debit, credit, memo)
		VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return apperrors.NewAppError(500, "failed to prepare line insert", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		ml := mapping.ToModelJournalEntryLine(line)
		debit, err := toCents(ml.Debit)
		if err != nil {
			return err
		}
		credit, err := toCents(ml.Credit)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, ml.LineID, ml.JournalEntryID, ml.AccountID, debit, credit, ml.Memo); err != nil {
			if constraintCode(err) == sqlite3.ErrConstraintForeignKey {
				return fmt.Errorf("%w: account %s referenced by entry %s", apperrors.ErrNotFound, ml.AccountID, m.EntryID)
			}
			return apperrors.NewAppError(500, "failed to insert lines for journal entry "+m.EntryID, err)
		}
	}

	return r.Commit(tx)
}

func mapEntryError(err error, m models.JournalEntry) error {
	switch constraintCode(err) {
	case sqlite3.ErrConstraintUnique:
		msg := err.Error()
		switch {
		case strings.Contains(msg, "journal_entries.entry_number"):
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateEntryNumber, m.EntryNumber)
		case strings.Contains(msg, "journal_entries.idempotency_key"):
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateIdempotentKey, m.IdempotencyKey.String)
		case strings.Contains(msg, "journal_entries.reverses_entry_id"):
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, m.ReversesEntryID.String)
		}
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, m.EntryID)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: reversed entry %s", apperrors.ErrNotFound, m.ReversesEntryID.String)
	}
	return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
}

func (r *SQLiteJournalRepository) findEntry(ctx context.Context, where, arg, what string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + where + ` = ?;`
	m, err := scanEntry(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, notFoundOr(err, what, arg)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func (r *SQLiteJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "entry_id", entryID, "journal entry")
}

func (r *SQLiteJournalRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "idempotency_key", key, "idempotency key")
}

func (r *SQLiteJournalRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "reverses_entry_id", entryID, "reversal of")
}

// ListEntries retrieves a page of entries, newest entry date first and
// insertion order breaking ties.
func (r *SQLiteJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastSeq, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` WHERE entry_date < ? OR (entry_date = ? AND seq < ?)`
		day := formatDate(lastDate)
		args = append(args, day, day, lastSeq)
	}
	query += ` ORDER BY entry_date DESC, seq DESC LIMIT ?;`
	args = append(args, fetchLimit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.Seq)
		nextTokenVal = &token
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

func (r *SQLiteJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT seq, line_id, journal_entry_id, account_id, debit, credit, memo
		FROM journal_entry_lines
		WHERE journal_entry_id = ?
		ORDER BY seq;
	`
	rows, err := r.DB.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var (
			m             models.JournalEntryLine
			debit, credit int64
		)
		if err := rows.Scan(&m.Seq, &m.LineID, &m.JournalEntryID, &m.AccountID, &debit, &credit, &m.Memo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		m.Debit, m.Credit = fromCents(debit), fromCents(credit)
		lines = append(lines, mapping.ToDomainJournalEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return lines, nil
}

// ListLedgerLines retrieves every line posted to an account, oldest first.
func (r *SQLiteJournalRepository) ListLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.reference, l.debit, l.credit, l.memo
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.journal_entry_id
		WHERE l.account_id = ?
		ORDER BY e.entry_date ASC, l.seq ASC;
	`
	rows, err := r.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger for account "+accountID, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var (
			l             domain.LedgerLine
			entryDate     string
			debit, credit int64
		)
		if err := rows.Scan(&l.EntryID, &l.EntryNumber, &entryDate, &l.Reference, &debit, &credit, &l.Memo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		if l.EntryDate, err = parseDate(entryDate); err != nil {
			return nil, apperrors.NewAppError(500, "invalid entry date in ledger row", err)
		}
		l.Debit, l.Credit = fromCents(debit), fromCents(credit)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}
	return lines, nil
}
