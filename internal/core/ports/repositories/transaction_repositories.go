package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction regardless of budget; the
	// caller is responsible for the budget ownership check.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByBudget retrieves all transactions for a budget with
	// each entry's bank name populated, ordered by creation time.
	ListTransactionsByBudget(ctx context.Context, budgetID string) ([]domain.Transaction, error)

	// ListTransactionsByBank retrieves all transactions posted against one bank.
	ListTransactionsByBank(ctx context.Context, budgetID string, bankID string) ([]domain.Transaction, error)
}

// TransactionWriter defines the atomic multi-record write operations of the
// ledger. Each method either applies all of its effects or none of them.
type TransactionWriter interface {
	// SaveTransaction inserts a transaction and applies balanceDelta to its
	// bank within one database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error

	// DeleteTransaction removes a transaction and applies balanceDelta (the
	// inverse of the original effect) to its bank within one database transaction.
	DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error

	// SaveTransfer moves expenseLeg.Amount from the expense leg's bank to the
	// income leg's bank and records both legs, all within one database
	// transaction. Returns apperrors.ErrInsufficientFunds when the source
	// bank's locked balance is lower than the amount.
	SaveTransfer(ctx context.Context, expenseLeg domain.Transaction, incomeLeg domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
