package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
)

// FiscalPeriodRepository defines persistence for fiscal periods.
type FiscalPeriodRepository interface {
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)
	// ListPeriods returns periods ordered by start date, latest first.
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)
	ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error
	// FindClosedPeriodContaining returns apperrors.ErrNotFound when date is open.
	FindClosedPeriodContaining(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)
}
