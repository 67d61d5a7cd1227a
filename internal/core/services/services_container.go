package services

import (
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, journalOpts ...JournalServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.FiscalPeriod = NewFiscalPeriodService(repos.FiscalPeriodRepo)

	// Posting consults the fiscal period service for closed periods
	opts := append([]JournalServiceOption{WithClosedPeriodChecker(container.FiscalPeriod)}, journalOpts...)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, opts...)

	container.Ledger = NewLedgerService(repos.JournalRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.JournalSvcFacade      = (*journalService)(nil)
	_ portssvc.LedgerService         = (*ledgerService)(nil)
	_ portssvc.ReportingService      = (*reportingService)(nil)
	_ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)
)
