package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/utils/accounting"
)

type ledgerService struct {
	BaseService
	lineRepo portsrepo.JournalLineReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(lineRepo portsrepo.JournalLineReader) portssvc.LedgerService {
	return &ledgerService{lineRepo: lineRepo}
}

// GetLedger returns the account's lines in posting order with running balances.
// An unknown account has no lines.
func (s *ledgerService) GetLedger(ctx context.Context, accountID string) ([]domain.LedgerLine, error) {
	lines, err := s.lineRepo.ListLedgerLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger lines", slog.String("account_id", accountID))
		return nil, err
	}
	if lines == nil {
		return []domain.LedgerLine{}, nil
	}
	return accounting.ApplyRunningBalance(lines), nil
}
