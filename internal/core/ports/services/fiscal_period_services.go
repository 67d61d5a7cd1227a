package services

import (
	"context"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/SscSPs/abbis_ledger/internal/dto"
)

// FiscalPeriodReaderSvc defines read operations for fiscal periods
type FiscalPeriodReaderSvc interface {
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)

	// FindClosedPeriodFor returns the closed period containing date, or nil when the date is open.
	FindClosedPeriodFor(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)
}

// FiscalPeriodWriterSvc defines write operations for fiscal periods
type FiscalPeriodWriterSvc interface {
	CreatePeriod(ctx context.Context, req dto.CreateFiscalPeriodRequest, userID string) (*domain.FiscalPeriod, error)

	// ClosePeriod closes a period for good.
	ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.FiscalPeriod, error)
}

// FiscalPeriodSvcFacade combines all fiscal period service interfaces
type FiscalPeriodSvcFacade interface {
	FiscalPeriodReaderSvc
	FiscalPeriodWriterSvc
}
