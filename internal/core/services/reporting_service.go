package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/utils/accounting"
)

// reportingService recomputes every report from stored lines on each call.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

func (s *reportingService) totals(ctx context.Context, report string, window domain.ReportWindow) ([]domain.AccountTotals, error) {
	totals, err := s.reportingRepo.GetAccountTotals(ctx, window)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account totals", slog.String("report", report))
		return nil, err
	}
	return totals, nil
}

// TrialBalance generates a trial balance report
func (s *reportingService) TrialBalance(ctx context.Context, window domain.ReportWindow) (*domain.TrialBalanceReport, error) {
	totals, err := s.totals(ctx, "trial_balance", window)
	if err != nil {
		return nil, err
	}
	report := accounting.BuildTrialBalance(totals)
	if !report.IsBalanced {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}
	return &report, nil
}

// ProfitAndLoss generates a profit and loss report
func (s *reportingService) ProfitAndLoss(ctx context.Context, window domain.ReportWindow) (*domain.PAndLReport, error) {
	totals, err := s.totals(ctx, "profit_and_loss", window)
	if err != nil {
		return nil, err
	}
	report := accounting.BuildProfitAndLoss(totals)
	return &report, nil
}

// BalanceSheet generates a balance sheet report
func (s *reportingService) BalanceSheet(ctx context.Context, window domain.ReportWindow) (*domain.BalanceSheetReport, error) {
	totals, err := s.totals(ctx, "balance_sheet", window)
	if err != nil {
		return nil, err
	}
	report := accounting.BuildBalanceSheet(totals)
	if !report.IsBalanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance", slog.String("warning", report.Warning))
	}
	return &report, nil
}

// IntegrityCheck verifies the stored books against the double-entry identity.
func (s *reportingService) IntegrityCheck(ctx context.Context) (*domain.IntegrityReport, error) {
	entries, err := s.reportingRepo.GetEntryTotals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry totals")
		return nil, err
	}
	report := accounting.BuildIntegrityReport(entries)
	if !report.IsBalanced || len(report.UnbalancedEntries) > 0 {
		s.GetLogger(ctx).Warn("Integrity check found discrepancies",
			slog.String("difference", report.Difference.String()),
			slog.Int("unbalanced_entries", len(report.UnbalancedEntries)))
	}
	return &report, nil
}
