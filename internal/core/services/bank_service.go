package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/apperrors"
	"github.com/rbank-app/budget_backend/internal/core/domain"
	portsrepo "github.com/rbank-app/budget_backend/internal/core/ports/repositories"
	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
)

// bankService provides bank account operations, including the canonical
// payroll bank bootstrap.
type bankService struct {
	BaseService
	bankRepo portsrepo.BankRepositoryFacade
}

// NewBankService creates a new BankService.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade) portssvc.BankSvcFacade {
	return &bankService{bankRepo: bankRepo}
}

// Ensure bankService implements the portssvc.BankSvcFacade interface
var _ portssvc.BankSvcFacade = (*bankService)(nil)

// EnsureDefaultBank looks up the canonical payroll bank for the budget and
// creates it with a zero balance when absent. A concurrent first-call that
// loses the insert race hits the uniqueness constraint and falls back to
// fetching the winner's row, so exactly one canonical bank ever exists.
func (s *bankService) EnsureDefaultBank(ctx context.Context, budgetID string) (*domain.Bank, error) {
	bank, err := s.bankRepo.FindBankByName(ctx, budgetID, domain.DefaultBankName)
	if err == nil {
		return bank, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up default bank: %w", err)
	}

	now := time.Now().UTC()
	newBank := domain.Bank{
		BankID:   uuid.NewString(),
		BudgetID: budgetID,
		Name:     domain.DefaultBankName,
		Balance:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.bankRepo.SaveBank(ctx, newBank); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the create race; the winner's bank is the canonical one.
			return s.bankRepo.FindBankByName(ctx, budgetID, domain.DefaultBankName)
		}
		s.LogError(ctx, err, "Failed to create default bank", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to create default bank: %w", err)
	}

	s.LogInfo(ctx, "Default bank created", slog.String("budget_id", budgetID), slog.String("bank_id", newBank.BankID))
	return &newBank, nil
}

// CreateBank creates a new bank with an optional opening balance.
func (s *bankService) CreateBank(ctx context.Context, budgetID string, name string, balance decimal.Decimal) (*domain.Bank, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: bank name is required", apperrors.ErrValidation)
	}
	if name == domain.DefaultBankName {
		return nil, fmt.Errorf("%w: %q is reserved for the default bank", apperrors.ErrConflict, domain.DefaultBankName)
	}

	now := time.Now().UTC()
	bank := domain.Bank{
		BankID:   uuid.NewString(),
		BudgetID: budgetID,
		Name:     name,
		Balance:  balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.bankRepo.SaveBank(ctx, bank); err != nil {
		s.LogError(ctx, err, "Failed to save bank", slog.String("budget_id", budgetID), slog.String("name", name))
		return nil, fmt.Errorf("failed to save bank: %w", err)
	}

	s.LogInfo(ctx, "Bank created", slog.String("bank_id", bank.BankID), slog.String("budget_id", budgetID))
	return &bank, nil
}

// GetBankByID retrieves a bank scoped to the budget.
func (s *bankService) GetBankByID(ctx context.Context, budgetID string, bankID string) (*domain.Bank, error) {
	bank, err := s.bankRepo.FindBankByID(ctx, budgetID, bankID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank", slog.String("bank_id", bankID))
		}
		return nil, err
	}
	return bank, nil
}

// ListBanks lists all banks for the budget.
func (s *bankService) ListBanks(ctx context.Context, budgetID string) ([]domain.Bank, error) {
	banks, err := s.bankRepo.ListBanks(ctx, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list banks", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

// DeleteBank removes a non-canonical bank.
func (s *bankService) DeleteBank(ctx context.Context, budgetID string, bankID string) error {
	bank, err := s.bankRepo.FindBankByID(ctx, budgetID, bankID)
	if err != nil {
		return err
	}
	if bank.IsCanonical() {
		s.LogWarn(ctx, "Attempt to delete the default bank", slog.String("budget_id", budgetID))
		return fmt.Errorf("%w: the default bank cannot be deleted", apperrors.ErrConflict)
	}

	if err := s.bankRepo.DeleteBank(ctx, budgetID, bankID); err != nil {
		s.LogError(ctx, err, "Failed to delete bank", slog.String("bank_id", bankID))
		return fmt.Errorf("failed to delete bank: %w", err)
	}

	s.LogInfo(ctx, "Bank deleted", slog.String("bank_id", bankID), slog.String("budget_id", budgetID))
	return nil
}

// OverrideBalance force-sets a bank's balance. From this point the bank's
// balance no longer equals the signed sum of its transactions; the new value
// is the baseline for subsequent ledger activity.
func (s *bankService) OverrideBalance(ctx context.Context, budgetID string, bankID string, balance decimal.Decimal) (*domain.Bank, error) {
	bank, err := s.bankRepo.FindBankByID(ctx, budgetID, bankID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.bankRepo.OverrideBankBalance(ctx, budgetID, bankID, balance, now); err != nil {
		s.LogError(ctx, err, "Failed to override bank balance", slog.String("bank_id", bankID))
		return nil, fmt.Errorf("failed to override bank balance: %w", err)
	}

	s.LogInfo(ctx, "Bank balance overridden",
		slog.String("bank_id", bankID),
		slog.String("previous_balance", bank.Balance.String()),
		slog.String("new_balance", balance.String()))

	bank.Balance = balance
	bank.LastUpdatedAt = now
	return bank, nil
}
