package mapping

import (
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/SscSPs/abbis_ledger/internal/models"
)

func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:    d.PeriodID,
		Name:        d.Name,
		StartDate:   domain.DateOnly(d.StartDate),
		EndDate:     domain.DateOnly(d.EndDate),
		IsClosed:    d.IsClosed,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:    m.PeriodID,
		Name:        m.Name,
		StartDate:   domain.DateOnly(m.StartDate),
		EndDate:     domain.DateOnly(m.EndDate),
		IsClosed:    m.IsClosed,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
