package services

import (
	portsrepo "github.com/rbank-app/budget_backend/internal/core/ports/repositories"
	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Bank service first since the ledger service resolves banks through it
	container.Bank = NewBankService(repos.BankRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo, container.Bank)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
