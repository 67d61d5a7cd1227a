package dto

import (
	"time"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryLineRequest is one row of a journal entry form. Rows with no
// account or with both amounts zero are ignored.
type PostEntryLineRequest struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit    decimal.Decimal `json:"credit" binding:"gte=0"`
	Memo      string          `json:"memo" binding:"max=255"`
}

// PostEntryRequest defines the data needed to post a journal entry.
type PostEntryRequest struct {
	EntryDate      string                 `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Reference      string                 `json:"reference" binding:"max=100"`
	Description    string                 `json:"description" binding:"max=500"`
	IdempotencyKey string                 `json:"idempotencyKey" binding:"max=100"`
	Lines          []PostEntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReverseEntryRequest optionally dates the reversal; today is used otherwise.
type ReverseEntryRequest struct {
	EntryDate string `json:"entryDate" binding:"omitempty,datetime=2006-01-02"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal entry line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	EntryNumber     string                `json:"entryNumber"`
	EntryDate       string                `json:"entryDate"`
	Reference       string                `json:"reference"`
	Description     string                `json:"description"`
	IdempotencyKey  string                `json:"idempotencyKey,omitempty"`
	ReversesEntryID string                `json:"reversesEntryID,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate.Format(domain.DateLayout),
		Reference:       e.Reference,
		Description:     e.Description,
		IdempotencyKey:  e.IdempotencyKey,
		ReversesEntryID: e.ReversesEntryID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:    l.LineID,
				AccountID: l.AccountID,
				Debit:     l.Debit,
				Credit:    l.Credit,
				Memo:      l.Memo,
			}
		}
	}
	return resp
}

// ToListEntriesResponse converts a page of entries to its DTO.
func ToListEntriesResponse(page *domain.EntryPage) ListEntriesResponse {
	entries := make([]JournalEntryResponse, len(page.Entries))
	for i := range page.Entries {
		entries[i] = ToJournalEntryResponse(&page.Entries[i])
	}
	return ListEntriesResponse{Entries: entries, NextToken: page.NextToken}
}
