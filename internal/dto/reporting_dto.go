package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
)

// ReportParams are the optional date bounds accepted by every report.
type ReportParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ToWindow parses the bounds. Missing bounds stay open.
func (p ReportParams) ToWindow() (domain.ReportWindow, error) {
	var w domain.ReportWindow
	var err error
	if p.From != "" {
		if w.From, err = time.Parse(domain.DateLayout, p.From); err != nil {
			return w, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, p.From)
		}
	}
	if p.To != "" {
		if w.To, err = time.Parse(domain.DateLayout, p.To); err != nil {
			return w, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, p.To)
		}
	}
	if !w.From.IsZero() && !w.To.IsZero() && w.To.Before(w.From) {
		return w, fmt.Errorf("%w: to date is before from date", apperrors.ErrValidation)
	}
	return w, nil
}

// ReportEnvelope wraps a report with the window it covers.
type ReportEnvelope[T any] struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Report T      `json:"report"`
}

// NewReportEnvelope wraps report with the request's bounds.
func NewReportEnvelope[T any](p ReportParams, report T) ReportEnvelope[T] {
	return ReportEnvelope[T]{From: p.From, To: p.To, Report: report}
}
