package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This allows for easy dependency injection of the whole persistence layer.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	JournalRepo   JournalRepository
	ReportingRepo ReportingRepository
}
