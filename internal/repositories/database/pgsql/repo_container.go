package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rbank-app/budget_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx repositories for the service layer.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	bankRepo := newPgxBankRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, bankRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BankRepo:        bankRepo,
		TransactionRepo: transactionRepo,
		ReportingRepo:   reportingRepo,
	}
}
