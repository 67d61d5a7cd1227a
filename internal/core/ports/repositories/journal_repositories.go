package repositories

import (
	"context"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entry headers
type JournalReader interface {
	// FindEntryByID retrieves an entry header by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByIdempotencyKey retrieves the entry posted with the given key.
	FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error)

	// FindReversalOf retrieves the entry that reverses entryID, if any.
	FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns entries newest first (entry date, then insertion order)
	// with a token for the next page.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalLineReader defines read operations for journal entry lines
type JournalLineReader interface {
	// FindLinesByEntryID retrieves the lines of one entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListLedgerLines retrieves every line posted to an account ordered by
	// entry date then insertion order. RunningBalance is left zero.
	ListLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerLine, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists the header and every line in one transaction.
	// Unique violations surface as apperrors.ErrDuplicateEntryNumber,
	// ErrDuplicateIdempotentKey or ErrAlreadyReversed.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalLineReader
	JournalWriter
}
