package dto

import "github.com/SscSPs/abbis_ledger/internal/core/domain"

// CreateFiscalPeriodRequest defines the data needed to open a fiscal period.
type CreateFiscalPeriodRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID  string `json:"periodID"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsClosed  bool   `json:"isClosed"`
}

func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate.Format(domain.DateLayout),
		EndDate:   p.EndDate.Format(domain.DateLayout),
		IsClosed:  p.IsClosed,
	}
}

func ToFiscalPeriodResponses(ps []domain.FiscalPeriod) []FiscalPeriodResponse {
	res := make([]FiscalPeriodResponse, len(ps))
	for i := range ps {
		res[i] = ToFiscalPeriodResponse(&ps[i])
	}
	return res
}
