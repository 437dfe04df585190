package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

// BankReader defines read operations for bank data.
// Every lookup is scoped by budget; a bank belonging to another budget is
// indistinguishable from an absent one.
type BankReader interface {
	// FindBankByID retrieves a bank by its ID within a budget.
	FindBankByID(ctx context.Context, budgetID string, bankID string) (*domain.Bank, error)

	// FindBankByName retrieves a bank by its display name within a budget.
	FindBankByName(ctx context.Context, budgetID string, name string) (*domain.Bank, error)

	// ListBanks retrieves all banks for a budget, ordered by name.
	ListBanks(ctx context.Context, budgetID string) ([]domain.Bank, error)
}

// BankWriter defines write operations for bank data.
type BankWriter interface {
	// SaveBank persists a new bank.
	SaveBank(ctx context.Context, bank domain.Bank) error

	// DeleteBank removes a bank within a budget.
	DeleteBank(ctx context.Context, budgetID string, bankID string) error

	// OverrideBankBalance force-sets a bank's balance, bypassing the ledger.
	OverrideBankBalance(ctx context.Context, budgetID string, bankID string, balance decimal.Decimal, now time.Time) error
}

// BankTransactionSupport defines operations used inside multi-record commits.
type BankTransactionSupport interface {
	// FindBanksByIDsForUpdate selects banks and locks their rows for update
	// within a transaction. Rows are locked in bank-ID order.
	FindBanksByIDsForUpdate(ctx context.Context, tx pgx.Tx, bankIDs []string) (map[string]domain.Bank, error)

	// UpdateBankBalancesInTx applies signed balance deltas to multiple banks
	// within a given transaction.
	UpdateBankBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error
}

// BankRepositoryFacade combines all bank-related repository interfaces.
type BankRepositoryFacade interface {
	BankReader
	BankWriter
	BankTransactionSupport
}

// BankRepositoryWithTx extends BankRepositoryFacade with transaction capabilities.
type BankRepositoryWithTx interface {
	BankRepositoryFacade
	TransactionManager
}
