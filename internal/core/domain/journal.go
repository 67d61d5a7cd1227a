package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one atomic, balanced business transaction.
// Entries are immutable once posted; corrections are new offsetting entries.
type JournalEntry struct {
	EntryID         string             `json:"entryID"`
	EntryNumber     string             `json:"entryNumber"`
	EntryDate       time.Time          `json:"entryDate"`
	Reference       string             `json:"reference"`
	Description     string             `json:"description"`
	IdempotencyKey  string             `json:"idempotencyKey,omitempty"`
	ReversesEntryID string             `json:"reversesEntryID,omitempty"`
	CreatedBy       string             `json:"createdBy"`
	CreatedAt       time.Time          `json:"createdAt"`
	Lines           []JournalEntryLine `json:"lines,omitempty"`
}

// JournalEntryLine is a single debit or credit against one account.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Memo           string          `json:"memo"`
}

// PostEntryLine is a submitted line before filtering and validation.
type PostEntryLine struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Memo      string
}

// PostEntryInput is everything needed to post a journal entry.
type PostEntryInput struct {
	EntryDate      time.Time
	Reference      string
	Description    string
	IdempotencyKey string
	Lines          []PostEntryLine
	CreatedBy      string
}

// PostResult wraps a posted entry. Replayed is true when an earlier posting
// with the same idempotency key was returned instead of writing a new one.
type PostResult struct {
	Entry    *JournalEntry
	Replayed bool
}

// EntryPage is one page of entries, newest first.
type EntryPage struct {
	Entries   []JournalEntry
	NextToken *string
}
