package mapping

import (
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/SscSPs/abbis_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its model.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       domain.DateOnly(d.EntryDate),
		Reference:       d.Reference,
		Description:     d.Description,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
		IdempotencyKey:  NullString(d.IdempotencyKey),
		ReversesEntryID: NullString(d.ReversesEntryID),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain header without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       domain.DateOnly(m.EntryDate),
		Reference:       m.Reference,
		Description:     m.Description,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		IdempotencyKey:  m.IdempotencyKey.String,
		ReversesEntryID: m.ReversesEntryID.String,
	}
}

// ToModelJournalEntryLine converts a domain line to its model. Seq is left to storage.
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Memo:           d.Memo,
	}
}

// ToDomainJournalEntryLine converts a model line to its domain form.
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Memo:           m.Memo,
	}
}
