package dto

import (
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerLineResponse is one line of an account ledger.
type LedgerLineResponse struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      string          `json:"entryDate"`
	Reference      string          `json:"reference"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Memo           string          `json:"memo"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerResponse is the full ledger of one account.
type LedgerResponse struct {
	AccountID string               `json:"accountID"`
	Lines     []LedgerLineResponse `json:"lines"`
}

// ToLedgerResponse converts ledger lines to their DTO.
func ToLedgerResponse(accountID string, lines []domain.LedgerLine) LedgerResponse {
	resp := LedgerResponse{AccountID: accountID, Lines: make([]LedgerLineResponse, len(lines))}
	for i, l := range lines {
		resp.Lines[i] = LedgerLineResponse{
			EntryID:        l.EntryID,
			EntryNumber:    l.EntryNumber,
			EntryDate:      l.EntryDate.Format(domain.DateLayout),
			Reference:      l.Reference,
			Debit:          l.Debit,
			Credit:         l.Credit,
			Memo:           l.Memo,
			RunningBalance: l.RunningBalance,
		}
	}
	return resp
}
