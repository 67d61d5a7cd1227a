package services

import (
	"context"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance lists debit and credit totals per account.
	TrialBalance(ctx context.Context, window domain.ReportWindow) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss generates a profit and loss report for the window.
	ProfitAndLoss(ctx context.Context, window domain.ReportWindow) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report for the window.
	BalanceSheet(ctx context.Context, window domain.ReportWindow) (*domain.BalanceSheetReport, error)

	// IntegrityCheck verifies total debits equal total credits, overall and per entry.
	IntegrityCheck(ctx context.Context) (*domain.IntegrityReport, error)
}
