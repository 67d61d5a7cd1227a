package domain

import "time"

// FiscalPeriod is a named date range that can be closed to further postings.
// Closing is one-way.
type FiscalPeriod struct {
	PeriodID  string    `json:"periodID"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsClosed  bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether date falls inside the period, bounds inclusive.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// Overlaps reports whether the two periods share at least one day.
func (p FiscalPeriod) Overlaps(other FiscalPeriod) bool {
	return !DateOnly(p.EndDate).Before(DateOnly(other.StartDate)) &&
		!DateOnly(other.EndDate).Before(DateOnly(p.StartDate))
}
