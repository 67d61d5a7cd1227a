package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/abbis_ledger/internal/models"
	"github.com/SscSPs/abbis_ledger/internal/utils/mapping"
	"github.com/SscSPs/abbis_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `seq, entry_id, entry_number, entry_date, reference, description, idempotency_key, reverses_entry_id, created_at, created_by`

// Named unique constraints on journal_entries, used to tell duplicates apart.
const (
	constraintEntryNumber    = "uq_journal_entries_entry_number"
	constraintIdempotencyKey = "uq_journal_entries_idempotency_key"
	constraintReversesEntry  = "uq_journal_entries_reverses_entry_id"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.Seq,
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.IdempotencyKey,
		&m.ReversesEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveEntry inserts the header and all lines within a single database transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Rollback is a no-op once Commit succeeds
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_number, entry_date, reference, description, idempotency_key, reverses_entry_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Reference,
		m.Description,
		m.IdempotencyKey,
		m.ReversesEntryID,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return r.mapEntryError(err, m)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, journal_entry_id, account_id, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range lines {
		ml := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery, ml.LineID, ml.JournalEntryID, ml.AccountID, ml.Debit, ml.Credit, ml.Memo)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapLineError(err, m.EntryID)
	}

	return r.Commit(ctx, tx)
}

func mapLineError(err error, entryID string) error {
	switch code, _ := pgErrorCode(err); code {
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: account referenced by entry %s", apperrors.ErrNotFound, entryID)
	case pgNumericOutOfRange:
		return fmt.Errorf("%w: a line amount of entry %s does not fit NUMERIC(15,2)", apperrors.ErrValidation, entryID)
	}
	return apperrors.NewAppError(500, "failed to insert lines for journal entry "+entryID, err)
}

func (r *PgxJournalRepository) mapEntryError(err error, m models.JournalEntry) error {
	code, constraint := pgErrorCode(err)
	switch {
	case code == pgUniqueViolation && constraint == constraintEntryNumber:
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateEntryNumber, m.EntryNumber)
	case code == pgUniqueViolation && constraint == constraintIdempotencyKey:
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateIdempotentKey, m.IdempotencyKey.String)
	case code == pgUniqueViolation && constraint == constraintReversesEntry:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, m.ReversesEntryID.String)
	case code == pgUniqueViolation:
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, m.EntryID)
	case code == pgForeignKeyViolation:
		return fmt.Errorf("%w: reversed entry %s", apperrors.ErrNotFound, m.ReversesEntryID.String)
	}
	return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, where, arg, what string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + where + ` = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, notFoundOr(err, what, arg)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "entry_id", entryID, "journal entry")
}

// FindEntryByIdempotencyKey retrieves the entry posted under key.
func (r *PgxJournalRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "idempotency_key", key, "idempotency key")
}

// FindReversalOf retrieves the entry reversing entryID.
func (r *PgxJournalRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "reverses_entry_id", entryID, "reversal of")
}

// ListEntries retrieves a page of entries ordered by entry date then insertion, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	orderByClause := `ORDER BY entry_date DESC, seq DESC`
	args := []any{}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastSeq, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		// Tuple comparison is concise and efficient in Postgres
		query += ` WHERE (entry_date, seq) < ($1, $2)`
		args = append(args, lastDate, lastSeq)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
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

// FindLinesByEntryID retrieves the lines of an entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT seq, line_id, journal_entry_id, account_id, debit, credit, memo
		FROM journal_entry_lines
		WHERE journal_entry_id = $1
		ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var m models.JournalEntryLine
		if err := rows.Scan(&m.Seq, &m.LineID, &m.JournalEntryID, &m.AccountID, &m.Debit, &m.Credit, &m.Memo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		lines = append(lines, mapping.ToDomainJournalEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return lines, nil
}

// ListLedgerLines retrieves every line posted to an account, oldest first.
func (r *PgxJournalRepository) ListLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.reference, l.debit, l.credit, l.memo
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.journal_entry_id
		WHERE l.account_id = $1
		ORDER BY e.entry_date ASC, l.seq ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger for account "+accountID, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var l domain.LedgerLine
		if err := rows.Scan(&l.EntryID, &l.EntryNumber, &l.EntryDate, &l.Reference, &l.Debit, &l.Credit, &l.Memo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		l.EntryDate = domain.DateOnly(l.EntryDate)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}
	return lines, nil
}
