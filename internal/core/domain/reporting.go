package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportWindow restricts reports to entries dated within [From, To].
// A zero bound is open.
type ReportWindow struct {
	From time.Time
	To   time.Time
}

// AccountTotals is the sum of posted debits and credits for one account.
type AccountTotals struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists per-account totals and the overall checksum.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	Revenue         decimal.Decimal `json:"revenue"`
	Expenses        decimal.Decimal `json:"expenses"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	RevenueAccounts []AccountAmount `json:"revenueAccounts"`
	ExpenseAccounts []AccountAmount `json:"expenseAccounts"`
}

// BalanceSheetReport represents a balance sheet report.
// Net income is carried into equity as RetainedEarnings without closing entries.
type BalanceSheetReport struct {
	Assets            decimal.Decimal `json:"assets"`
	Liabilities       decimal.Decimal `json:"liabilities"`
	Equity            decimal.Decimal `json:"equity"`
	RetainedEarnings  decimal.Decimal `json:"retainedEarnings"`
	TotalEquity       decimal.Decimal `json:"totalEquity"`
	IsBalanced        bool            `json:"isBalanced"`
	Warning           string          `json:"warning,omitempty"`
	AssetAccounts     []AccountAmount `json:"assetAccounts"`
	LiabilityAccounts []AccountAmount `json:"liabilityAccounts"`
	EquityAccounts    []AccountAmount `json:"equityAccounts"`
}

// EntryTotals is the sum of the lines of one stored entry.
type EntryTotals struct {
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber"`
	Reference   string          `json:"reference"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryImbalance is a stored entry whose own lines do not balance.
type EntryImbalance struct {
	EntryTotals
	Difference decimal.Decimal `json:"difference"`
}

// IntegrityReport checks the stored books against the double-entry identity.
type IntegrityReport struct {
	TotalDebit        decimal.Decimal  `json:"totalDebit"`
	TotalCredit       decimal.Decimal  `json:"totalCredit"`
	Difference        decimal.Decimal  `json:"difference"`
	EntryCount        int              `json:"entryCount"`
	IsBalanced        bool             `json:"isBalanced"`
	UnbalancedEntries []EntryImbalance `json:"unbalancedEntries"`
}
