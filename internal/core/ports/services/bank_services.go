package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

// BankSvcFacade exposes bank account operations to handlers and other services.
type BankSvcFacade interface {
	// EnsureDefaultBank guarantees the canonical payroll bank exists for the
	// budget, creating it with a zero balance when absent. Idempotent under
	// concurrent first-calls.
	EnsureDefaultBank(ctx context.Context, budgetID string) (*domain.Bank, error)

	// CreateBank creates a new bank. Rejects the canonical name with ErrConflict.
	CreateBank(ctx context.Context, budgetID string, name string, balance decimal.Decimal) (*domain.Bank, error)

	// GetBankByID retrieves a bank scoped to the budget.
	GetBankByID(ctx context.Context, budgetID string, bankID string) (*domain.Bank, error)

	// ListBanks lists all banks for the budget.
	ListBanks(ctx context.Context, budgetID string) ([]domain.Bank, error)

	// DeleteBank removes a non-canonical bank. Rejects the canonical bank with
	// ErrConflict.
	DeleteBank(ctx context.Context, budgetID string, bankID string) error

	// OverrideBalance force-sets a bank's balance. This is the administrative
	// escape hatch that breaks the balance/ledger invariant from that point on.
	OverrideBalance(ctx context.Context, budgetID string, bankID string, balance decimal.Decimal) (*domain.Bank, error)
}
