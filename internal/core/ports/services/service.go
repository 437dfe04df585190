package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Bank      BankSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
}
