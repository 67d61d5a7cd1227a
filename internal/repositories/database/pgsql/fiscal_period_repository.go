package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/abbis_ledger/internal/models"
	"github.com/SscSPs/abbis_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) *PgxFiscalPeriodRepository {
	return &PgxFiscalPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalPeriodRepository = (*PgxFiscalPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(&m.PeriodID, &m.Name, &m.StartDate, &m.EndDate, &m.IsClosed,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query, m.PeriodID, m.Name, m.StartDate, m.EndDate, m.IsClosed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrDuplicate, m.PeriodID)
		}
		return apperrors.NewAppError(500, "failed to save fiscal period "+m.PeriodID, err)
	}
	return nil
}

func (r *PgxFiscalPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = $1;`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		return nil, notFoundOr(err, "fiscal period", periodID)
	}
	p := mapping.ToDomainFiscalPeriod(m)
	return &p, nil
}

// ListPeriods returns every period, latest start first.
func (r *PgxFiscalPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods ORDER BY start_date DESC;`
	rows, err := r.Pool.Query(ctx, query)
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

// ClosePeriod sets is_closed. Already closed periods are left untouched.
func (r *PgxFiscalPeriodRepository) ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET is_closed = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE period_id = $3 AND is_closed = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, now, userID, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close fiscal period "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: open fiscal period %s", apperrors.ErrNotFound, periodID)
	}
	return nil
}

// FindClosedPeriodContaining returns a closed period whose range covers date.
func (r *PgxFiscalPeriodRepository) FindClosedPeriodContaining(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE is_closed = TRUE AND start_date <= $1 AND end_date >= $1
		ORDER BY start_date
		LIMIT 1;
	`
	day := domain.DateOnly(date)
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, day))
	if err != nil {
		return nil, notFoundOr(err, "closed fiscal period containing", day.Format(domain.DateLayout))
	}
	p := mapping.ToDomainFiscalPeriod(m)
	return &p, nil
}
