package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
// Seq is the storage insertion order used as the listing tie-break.
type JournalEntry struct {
	Seq             int64          `db:"seq"`
	EntryID         string         `db:"entry_id"`
	EntryNumber     string         `db:"entry_number"`
	EntryDate       time.Time      `db:"entry_date"`
	Reference       string         `db:"reference"`
	Description     string         `db:"description"`
	CreatedBy       string         `db:"created_by"`
	CreatedAt       time.Time      `db:"created_at"`
	IdempotencyKey  sql.NullString `db:"idempotency_key"`
	ReversesEntryID sql.NullString `db:"reverses_entry_id"`
}

// JournalEntryLine is a row of the journal_entry_lines table.
// Seq is the storage insertion order and breaks ledger ties within a day.
type JournalEntryLine struct {
	Seq            int64           `db:"seq"`
	LineID         string          `db:"line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	Memo           string          `db:"memo"`
}
