package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const timestampLayout = time.RFC3339Nano

// BaseRepository provides common functionality for all SQLite repositories
type BaseRepository struct {
	DB *sql.DB
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// constraintCode returns the extended SQLite result code of a constraint failure.
func constraintCode(err error) sqlite3.ErrNoExtended {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return sqliteErr.ExtendedCode
	}
	return 0
}

func notFoundOr(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, what, id)
	}
	return apperrors.NewAppError(500, "failed to query "+what+" "+id, err)
}

// Amounts are stored as integer cents. Fractions of a cent and values beyond
// int64 are refused rather than rounded or wrapped.
func toCents(d decimal.Decimal) (int64, error) {
	c := d.Shift(2)
	if !c.Equal(c.Truncate(0)) {
		return 0, fmt.Errorf("%w: amount %s has more than two decimal places", apperrors.ErrValidation, d.String())
	}
	if !c.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: amount %s is out of range", apperrors.ErrValidation, d.String())
	}
	return c.IntPart(), nil
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

func formatDate(t time.Time) string {
	return domain.DateOnly(t).Format(domain.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, s, time.UTC)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}
