package repositories

import (
	"context"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
)

// ReportingRepository exposes the raw aggregates the reports are folded from.
type ReportingRepository interface {
	// GetAccountTotals sums debits and credits per account over entries in the
	// window. Only accounts with lines are returned, ordered by type then code.
	GetAccountTotals(ctx context.Context, window domain.ReportWindow) ([]domain.AccountTotals, error)

	// GetEntryTotals sums debits and credits per stored entry.
	GetEntryTotals(ctx context.Context) ([]domain.EntryTotals, error)
}
