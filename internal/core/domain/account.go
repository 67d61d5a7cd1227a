package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists the account types in chart-of-accounts order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	return t.Rank() > 0
}

// Rank is the position of t in the chart of accounts (1-based), 0 if unknown.
// Listings and reports sort by (Rank, Code).
func (t AccountType) Rank() int {
	for i, at := range AccountTypes {
		if at == t {
			return i + 1
		}
	}
	return 0
}

// Account represents a ledger bucket in the chart of accounts.
type Account struct {
	AccountID       string      `json:"accountID"`
	Code            string      `json:"code"` // Unique, human assigned, sort key
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"` // Fixed for the account's lifetime
	ParentAccountID string      `json:"parentAccountID"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
