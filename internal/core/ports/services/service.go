package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account   AccountService
	Journal   JournalService
	Ledger    LedgerService
	Reporting ReportingService
}
