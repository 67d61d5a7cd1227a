package models

import "database/sql"

// AccountType mirrors domain.AccountType as stored in the account_type column.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	AccountID       string         `db:"account_id"`
	Code            string         `db:"code"`
	Name            string         `db:"name"`
	AccountType     AccountType    `db:"account_type"`
	ParentAccountID sql.NullString `db:"parent_account_id"`
	IsActive        bool           `db:"is_active"`
	AuditFields
}
