package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rbank-app/budget_backend/internal/apperrors"
	"github.com/rbank-app/budget_backend/internal/core/domain"
	portsrepo "github.com/rbank-app/budget_backend/internal/core/ports/repositories"
	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
	"github.com/rbank-app/budget_backend/internal/dto"
)

// ledgerService keeps bank balances consistent with the transaction log.
// Every mutation delegates its writes to a single atomic repository commit.
type ledgerService struct {
	BaseService
	bankSvc portssvc.BankSvcFacade
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(txnRepo portsrepo.TransactionRepositoryFacade, bankSvc portssvc.BankSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		bankSvc: bankSvc,
		txnRepo: txnRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostTransaction records a single income/expense entry against the resolved
// bank and applies its signed effect to the bank's balance. The transaction
// insert and the balance update commit together or not at all.
func (s *ledgerService) PostTransaction(ctx context.Context, budgetID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if req.Kind != domain.Income && req.Kind != domain.Expense {
		return nil, fmt.Errorf("%w: kind must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if req.Period == "" {
		return nil, fmt.Errorf("%w: period is required", apperrors.ErrValidation)
	}

	var bank *domain.Bank
	var err error
	if req.BankID != "" {
		bank, err = s.bankSvc.GetBankByID(ctx, budgetID, req.BankID)
	} else {
		bank, err = s.bankSvc.EnsureDefaultBank(ctx, budgetID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		BudgetID:      budgetID,
		BankID:        bank.BankID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		Period:        req.Period,
		SourceName:    req.SourceName,
		DestName:      req.DestName,
		IsLedger:      req.IsLedger,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, txn.SignedAmount()); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("bank_id", bank.BankID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("bank_id", bank.BankID),
		slog.String("kind", string(txn.Kind)),
		slog.String("amount", txn.Amount.String()))
	txn.BankName = bank.Name
	return &txn, nil
}

// ReverseAndDeleteTransaction removes a transaction and reverses its balance
// effect on the owning bank. The row delete and the balance update commit
// together or not at all.
func (s *ledgerService) ReverseAndDeleteTransaction(ctx context.Context, budgetID string, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction for deletion", slog.String("transaction_id", transactionID))
		}
		return err
	}
	if txn.BudgetID != budgetID {
		s.LogWarn(ctx, "Attempt to delete transaction from another budget",
			slog.String("transaction_id", transactionID))
		return apperrors.ErrForbidden
	}

	if err := s.txnRepo.DeleteTransaction(ctx, *txn, txn.SignedAmount().Neg()); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction deleted and reversed",
		slog.String("transaction_id", transactionID),
		slog.String("bank_id", txn.BankID))
	return nil
}

// Transfer moves an amount from a source bank to a destination bank as a
// double-entry pair: an expense leg on the source and an income leg on the
// destination, sharing period, amount and the two bank names. A leg is marked
// as a ledger entry when its bank is not the canonical payroll bank.
func (s *ledgerService) Transfer(ctx context.Context, budgetID string, req dto.TransferRequest) ([]domain.Transaction, error) {
	if req.SourceBankID == "" || req.DestBankID == "" || req.Period == "" {
		return nil, fmt.Errorf("%w: sourceBankID, destBankID, amount and period are required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.SourceBankID == req.DestBankID {
		return nil, fmt.Errorf("%w: source and destination banks must differ", apperrors.ErrValidation)
	}

	source, err := s.bankSvc.GetBankByID(ctx, budgetID, req.SourceBankID)
	if err != nil {
		return nil, err
	}
	dest, err := s.bankSvc.GetBankByID(ctx, budgetID, req.DestBankID)
	if err != nil {
		return nil, err
	}

	// Fast pre-check; the repository re-checks against the locked row so a
	// concurrent withdrawal cannot slip an overdraft through.
	if req.Amount.GreaterThan(source.Balance) {
		return nil, fmt.Errorf("%w: transfer of %s exceeds balance %s of bank %s",
			apperrors.ErrInsufficientFunds, req.Amount.String(), source.Balance.String(), source.Name)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	expenseLeg := domain.Transaction{
		TransactionID: uuid.NewString(),
		BudgetID:      budgetID,
		BankID:        source.BankID,
		Kind:          domain.Expense,
		Amount:        req.Amount,
		Period:        req.Period,
		SourceName:    source.Name,
		DestName:      dest.Name,
		IsLedger:      !source.IsCanonical(),
		AuditFields:   audit,
	}
	incomeLeg := domain.Transaction{
		TransactionID: uuid.NewString(),
		BudgetID:      budgetID,
		BankID:        dest.BankID,
		Kind:          domain.Income,
		Amount:        req.Amount,
		Period:        req.Period,
		SourceName:    source.Name,
		DestName:      dest.Name,
		IsLedger:      !dest.IsCanonical(),
		AuditFields:   audit,
	}

	if err := s.txnRepo.SaveTransfer(ctx, expenseLeg, incomeLeg); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to save transfer",
				slog.String("source_bank_id", source.BankID),
				slog.String("dest_bank_id", dest.BankID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("source_bank_id", source.BankID),
		slog.String("dest_bank_id", dest.BankID),
		slog.String("amount", req.Amount.String()))

	expenseLeg.BankName = source.Name
	incomeLeg.BankName = dest.Name
	return []domain.Transaction{expenseLeg, incomeLeg}, nil
}

// ListTransactions lists all transactions for the budget with bank names populated.
func (s *ledgerService) ListTransactions(ctx context.Context, budgetID string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactionsByBudget(ctx, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// ListTransactionsByBank lists the transactions posted against one bank.
func (s *ledgerService) ListTransactionsByBank(ctx context.Context, budgetID string, bankID string) ([]domain.Transaction, error) {
	// Resolve the bank first so a foreign or unknown bank reads as NotFound.
	if _, err := s.bankSvc.GetBankByID(ctx, budgetID, bankID); err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactionsByBank(ctx, budgetID, bankID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank transactions", slog.String("bank_id", bankID))
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	return txns, nil
}
