package services

import (
	"context"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/SscSPs/abbis_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves a journal entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*domain.EntryPage, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// PostEntry validates and atomically persists a balanced journal entry.
	PostEntry(ctx context.Context, req dto.PostEntryRequest, userID string) (*domain.PostResult, error)

	// ReverseEntry posts a new entry that offsets entryID line for line.
	ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// LedgerService derives per-account histories from posted lines.
type LedgerService interface {
	// GetLedger returns every line posted to accountID with its running balance.
	GetLedger(ctx context.Context, accountID string) ([]domain.LedgerLine, error)
}
