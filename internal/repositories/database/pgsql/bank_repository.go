package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/apperrors"
	"github.com/rbank-app/budget_backend/internal/core/domain"
	portsrepo "github.com/rbank-app/budget_backend/internal/core/ports/repositories"
	"github.com/rbank-app/budget_backend/internal/models"
)

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank data.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryWithTx {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBankRepository implements portsrepo.BankRepositoryWithTx
var _ portsrepo.BankRepositoryWithTx = (*PgxBankRepository)(nil)

// Helper to convert domain.Bank to models.Bank for DB storage
func toModelBank(d domain.Bank) models.Bank {
	return models.Bank{
		BankID:   d.BankID,
		BudgetID: d.BudgetID,
		Name:     d.Name,
		Balance:  d.Balance,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// Helper to convert models.Bank from DB to domain.Bank
func toDomainBank(m models.Bank) domain.Bank {
	return domain.Bank{
		BankID:   m.BankID,
		BudgetID: m.BudgetID,
		Name:     m.Name,
		Balance:  m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// SaveBank inserts a new bank. A unique violation (duplicate canonical bank
// within a budget) maps to apperrors.ErrDuplicate so the caller can resolve
// the create race by re-fetching.
func (r *PgxBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	modelBank := toModelBank(bank)

	query := `
		INSERT INTO banks (bank_id, budget_id, name, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelBank.BankID,
		modelBank.BudgetID,
		modelBank.Name,
		modelBank.Balance,
		modelBank.CreatedAt,
		modelBank.LastUpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return fmt.Errorf("%w: bank %q already exists in budget", apperrors.ErrDuplicate, modelBank.Name)
		}
		return apperrors.NewAppError(500, "failed to save bank "+modelBank.BankID, err)
	}
	return nil
}

// FindBankByID retrieves a bank by its ID, scoped to the budget.
func (r *PgxBankRepository) FindBankByID(ctx context.Context, budgetID string, bankID string) (*domain.Bank, error) {
	query := `
		SELECT bank_id, budget_id, name, balance, created_at, last_updated_at
		FROM banks
		WHERE bank_id = $1 AND budget_id = $2;
	`
	return r.scanBankRow(r.Pool.QueryRow(ctx, query, bankID, budgetID))
}

// FindBankByName retrieves a bank by its display name, scoped to the budget.
func (r *PgxBankRepository) FindBankByName(ctx context.Context, budgetID string, name string) (*domain.Bank, error) {
	query := `
		SELECT bank_id, budget_id, name, balance, created_at, last_updated_at
		FROM banks
		WHERE budget_id = $1 AND name = $2
		LIMIT 1;
	`
	return r.scanBankRow(r.Pool.QueryRow(ctx, query, budgetID, name))
}

func (r *PgxBankRepository) scanBankRow(row pgx.Row) (*domain.Bank, error) {
	var m models.Bank
	err := row.Scan(
		&m.BankID,
		&m.BudgetID,
		&m.Name,
		&m.Balance,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan bank row", err)
	}
	bank := toDomainBank(m)
	return &bank, nil
}

// ListBanks retrieves all banks for a budget, ordered by name.
func (r *PgxBankRepository) ListBanks(ctx context.Context, budgetID string) ([]domain.Bank, error) {
	query := `
		SELECT bank_id, budget_id, name, balance, created_at, last_updated_at
		FROM banks
		WHERE budget_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query banks for budget "+budgetID, err)
	}
	defer rows.Close()

	banks := []domain.Bank{}
	for rows.Next() {
		var m models.Bank
		if err := rows.Scan(&m.BankID, &m.BudgetID, &m.Name, &m.Balance, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank row", err)
		}
		banks = append(banks, toDomainBank(m))
	}
	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank rows", rows.Err())
	}
	return banks, nil
}

// DeleteBank removes a bank within a budget.
func (r *PgxBankRepository) DeleteBank(ctx context.Context, budgetID string, bankID string) error {
	query := `DELETE FROM banks WHERE bank_id = $1 AND budget_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, bankID, budgetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bank "+bankID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// OverrideBankBalance force-sets a bank's balance, bypassing the ledger.
func (r *PgxBankRepository) OverrideBankBalance(ctx context.Context, budgetID string, bankID string, balance decimal.Decimal, now time.Time) error {
	query := `
		UPDATE banks
		SET balance = $3, last_updated_at = $4
		WHERE bank_id = $1 AND budget_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, bankID, budgetID, balance, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to override balance for bank "+bankID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBanksByIDsForUpdate retrieves banks by IDs and locks the rows for the
// duration of the surrounding transaction. Rows are locked in bank-ID order
// so two concurrent multi-bank operations cannot deadlock each other.
func (r *PgxBankRepository) FindBanksByIDsForUpdate(ctx context.Context, tx pgx.Tx, bankIDs []string) (map[string]domain.Bank, error) {
	if len(bankIDs) == 0 {
		return map[string]domain.Bank{}, nil
	}

	query := `
		SELECT bank_id, budget_id, name, balance, created_at, last_updated_at
		FROM banks
		WHERE bank_id = ANY($1)
		ORDER BY bank_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, bankIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query banks for update", err)
	}
	defer rows.Close()

	banksMap := make(map[string]domain.Bank)
	for rows.Next() {
		var m models.Bank
		if err := rows.Scan(&m.BankID, &m.BudgetID, &m.Name, &m.Balance, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked bank row", err)
		}
		banksMap[m.BankID] = toDomainBank(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked bank rows", err)
	}

	if len(banksMap) != len(bankIDs) {
		missing := []string{}
		for _, id := range bankIDs {
			if _, found := banksMap[id]; !found {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: could not find or lock banks: %v", apperrors.ErrNotFound, missing)
	}

	return banksMap, nil
}

// UpdateBankBalancesInTx applies signed balance deltas to multiple banks
// within a transaction. Callers must hold row locks on the affected banks.
func (r *PgxBankRepository) UpdateBankBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE banks
		SET balance = balance + $2, last_updated_at = $3
		WHERE bank_id = $1;
	`

	batch := &pgx.Batch{}
	bankIDs := make([]string, 0, len(balanceChanges))
	for bankID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, bankID, delta, now)
			bankIDs = append(bankIDs, bankID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = apperrors.NewAppError(500, "failed to update balance for bank "+bankIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: bank %s not found during balance update", apperrors.ErrNotFound, bankIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = apperrors.NewAppError(500, "failed to close balance update batch", err)
	}
	return batchErr
}
