package repositories

// RepositoryProvider bundles the repositories handed to the service layer.
type RepositoryProvider struct {
	BankRepo        BankRepositoryWithTx
	TransactionRepo TransactionRepositoryWithTx
	ReportingRepo   ReportingRepository
}
