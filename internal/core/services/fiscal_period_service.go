package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/google/uuid"
)

type fiscalPeriodService struct {
	BaseService
	periodRepo portsrepo.FiscalPeriodRepository
}

// NewFiscalPeriodService creates a new fiscal period service.
func NewFiscalPeriodService(repo portsrepo.FiscalPeriodRepository) portssvc.FiscalPeriodSvcFacade {
	return &fiscalPeriodService{periodRepo: repo}
}

// CreatePeriod opens a new period. Periods may not overlap.
func (s *fiscalPeriodService) CreatePeriod(ctx context.Context, req dto.CreateFiscalPeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: period name is required", apperrors.ErrValidation)
	}
	start, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, req.StartDate)
	}
	end, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, req.EndDate)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start date must be before end date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	existing, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal periods")
		return nil, err
	}
	for _, p := range existing {
		if p.Overlaps(period) {
			return nil, fmt.Errorf("%w: overlaps fiscal period %s", apperrors.ErrValidation, p.Name)
		}
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal period", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("name", name))
	return &period, nil
}

// ListPeriods returns all periods, latest first.
func (s *fiscalPeriodService) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal periods")
		return nil, err
	}
	if periods == nil {
		return []domain.FiscalPeriod{}, nil
	}
	return periods, nil
}

// ClosePeriod closes a period. Closing is one-way.
func (s *fiscalPeriodService) ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal period", slog.String("period_id", periodID))
		}
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: fiscal period %s is already closed", apperrors.ErrConflict, period.Name)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.ClosePeriod(ctx, periodID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to close fiscal period", slog.String("period_id", periodID))
		return nil, err
	}

	period.IsClosed = true
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID
	s.LogInfo(ctx, "Fiscal period closed", slog.String("period_id", periodID))
	return period, nil
}

// FindClosedPeriodFor returns the closed period covering date, or nil.
func (s *fiscalPeriodService) FindClosedPeriodFor(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindClosedPeriodContaining(ctx, domain.DateOnly(date))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up closed fiscal period")
		return nil, err
	}
	return period, nil
}
