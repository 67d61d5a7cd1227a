package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/abbis_ledger/internal/models"
	"github.com/SscSPs/abbis_ledger/internal/utils/mapping"
	"github.com/mattn/go-sqlite3"
)

const periodColumns = `period_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

type SQLiteFiscalPeriodRepository struct {
	BaseRepository
}

func newSQLiteFiscalPeriodRepository(db *sql.DB) *SQLiteFiscalPeriodRepository {
	return &SQLiteFiscalPeriodRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.FiscalPeriodRepository = (*SQLiteFiscalPeriodRepository)(nil)

func scanPeriod(row rowScanner) (models.FiscalPeriod, error) {
	var (
		m                                    models.FiscalPeriod
		start, end, createdAt, lastUpdatedAt string
	)
	err := row.Scan(&m.PeriodID, &m.Name, &start, &end, &m.IsClosed, &createdAt, &m.CreatedBy, &lastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return m, err
	}
	if m.StartDate, err = parseDate(start); err != nil {
		return m, err
	}
	if m.EndDate, err = parseDate(end); err != nil {
		return m, err
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return m, err
	}
	m.LastUpdatedAt, err = parseTimestamp(lastUpdatedAt)
	return m, err
}

func (r *SQLiteFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `INSERT INTO fiscal_periods (` + periodColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.DB.ExecContext(ctx, query, m.PeriodID, m.Name, formatDate(m.StartDate), formatDate(m.EndDate), m.IsClosed,
		formatTimestamp(m.CreatedAt), m.CreatedBy, formatTimestamp(m.LastUpdatedAt), m.LastUpdatedBy)
	if err != nil {
		if code := constraintCode(err); code == sqlite3.ErrConstraintPrimaryKey || code == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrDuplicate, m.PeriodID)
		}
		return apperrors.NewAppError(500, "failed to save fiscal period "+m.PeriodID, err)
	}
	return nil
}

func (r *SQLiteFiscalPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = ?;`
	m, err := scanPeriod(r.DB.QueryRowContext(ctx, query, periodID))
	if err != nil {
		return nil, notFoundOr(err, "fiscal period", periodID)
	}
	p := mapping.ToDomainFiscalPeriod(m)
	return &p, nil
}

func (r *SQLiteFiscalPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods ORDER BY start_date DESC;`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fiscal periods", err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period row", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal period rows", err)
	}
	return periods, nil
}

func (r *SQLiteFiscalPeriodRepository) ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET is_closed = 1, last_updated_at = ?, last_updated_by = ?
		WHERE period_id = ? AND is_closed = 0;
	`
	res, err := r.DB.ExecContext(ctx, query, formatTimestamp(now), userID, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close fiscal period "+periodID, err)
	}
	return requireRow(res, "open fiscal period", periodID)
}

func (r *SQLiteFiscalPeriodRepository) FindClosedPeriodContaining(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE is_closed = 1 AND start_date <= ? AND end_date >= ?
		ORDER BY start_date
		LIMIT 1;
	`
	day := formatDate(date)
	m, err := scanPeriod(r.DB.QueryRowContext(ctx, query, day, day))
	if err != nil {
		return nil, notFoundOr(err, "closed fiscal period containing", day)
	}
	p := mapping.ToDomainFiscalPeriod(m)
	return &p, nil
}
