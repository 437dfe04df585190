package services

import (
	"context"

	"github.com/rbank-app/budget_backend/internal/core/domain"
	"github.com/rbank-app/budget_backend/internal/dto"
)

// LedgerSvcFacade exposes the balance mutation and transfer operations.
type LedgerSvcFacade interface {
	// PostTransaction records a single income/expense entry and applies its
	// signed effect to the target bank's balance as one logical unit. When no
	// bank is specified the budget's default bank is resolved first.
	PostTransaction(ctx context.Context, budgetID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// ReverseAndDeleteTransaction removes a transaction and reverses its
	// balance effect as one logical unit.
	ReverseAndDeleteTransaction(ctx context.Context, budgetID string, transactionID string) error

	// Transfer moves an amount between two banks, recording an expense leg on
	// the source and an income leg on the destination. Returns the legs in
	// [expense, income] order.
	Transfer(ctx context.Context, budgetID string, req dto.TransferRequest) ([]domain.Transaction, error)

	// ListTransactions lists all transactions for the budget with bank names.
	ListTransactions(ctx context.Context, budgetID string) ([]domain.Transaction, error)

	// ListTransactionsByBank lists the transactions posted against one bank.
	ListTransactionsByBank(ctx context.Context, budgetID string, bankID string) ([]domain.Transaction, error)
}
