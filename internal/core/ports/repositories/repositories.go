package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager     TransactionManager
	BusinessRepo  BusinessRepositoryFacade
	AccountRepo   AccountRepositoryFacade
	VoucherRepo   VoucherRepositoryFacade
	LedgerRepo    LedgerRepository
	ReportingRepo ReportingRepository
	InventoryRepo InventoryRepository
}
