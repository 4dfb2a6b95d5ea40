package services

import (
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since the posting engine validates against it
	container.Account = NewAccountService(repos.AccountRepo)

	container.Journal = NewJournalService(repos.JournalRepo, container.Account)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.JournalRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.JournalRepo)

	return container
}
