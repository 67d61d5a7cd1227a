package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is one posted line of an account's history with the balance
// accumulated up to and including it.
type LedgerLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Reference      string          `json:"reference"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Memo           string          `json:"memo"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}
