package models

import "time"

// FiscalPeriod is a row of the fiscal_periods table.
type FiscalPeriod struct {
	PeriodID  string    `db:"period_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsClosed  bool      `db:"is_closed"`
	AuditFields
}
