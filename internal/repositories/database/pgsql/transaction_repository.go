package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/apperrors"
	"github.com/rbank-app/budget_backend/internal/core/domain"
	portsrepo "github.com/rbank-app/budget_backend/internal/core/ports/repositories"
	"github.com/rbank-app/budget_backend/internal/models"
)

type PgxTransactionRepository struct {
	BaseRepository
	bankRepo portsrepo.BankRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool, bankRepo portsrepo.BankRepositoryFacade) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bankRepo:       bankRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		BudgetID:      d.BudgetID,
		BankID:        d.BankID,
		Kind:          models.TransactionKind(d.Kind),
		Amount:        d.Amount,
		Period:        d.Period,
		SourceName:    d.SourceName,
		DestName:      d.DestName,
		IsLedger:      d.IsLedger,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		BudgetID:      m.BudgetID,
		BankID:        m.BankID,
		Kind:          domain.TransactionKind(m.Kind),
		Amount:        m.Amount,
		Period:        m.Period,
		SourceName:    m.SourceName,
		DestName:      m.DestName,
		IsLedger:      m.IsLedger,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, budget_id, bank_id, kind, amount, period, source_name, dest_name, is_ledger, created_at, last_updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

func queueTransactionInsert(batch *pgx.Batch, m models.Transaction) {
	batch.Queue(insertTransactionQuery,
		m.TransactionID,
		m.BudgetID,
		m.BankID,
		m.Kind,
		m.Amount,
		m.Period,
		m.SourceName,
		m.DestName,
		m.IsLedger,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
}

// SaveTransaction inserts a ledger entry and applies balanceDelta to its bank
// within one database transaction. The bank row is locked first so concurrent
// postings against the same bank serialize instead of losing updates.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.bankRepo.FindBanksByIDsForUpdate(ctx, tx, []string{txn.BankID}); err != nil {
		return err
	}

	m := toModelTransaction(txn)
	_, err = tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID, m.BudgetID, m.BankID, m.Kind, m.Amount, m.Period,
		m.SourceName, m.DestName, m.IsLedger, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	changes := map[string]decimal.Decimal{txn.BankID: balanceDelta}
	if err := r.bankRepo.UpdateBankBalancesInTx(ctx, tx, changes, txn.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a ledger entry and applies balanceDelta (the
// inverse of the entry's original effect) to its bank within one database
// transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.bankRepo.FindBanksByIDsForUpdate(ctx, tx, []string{txn.BankID}); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	changes := map[string]decimal.Decimal{txn.BankID: balanceDelta}
	if err := r.bankRepo.UpdateBankBalancesInTx(ctx, tx, changes, txn.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveTransfer applies a two-leg transfer as one database transaction: both
// bank rows are locked (in bank-ID order), the source balance is re-checked
// against the locked row, both balances are updated and both legs inserted.
// Either all four writes commit or none do.
func (r *PgxTransactionRepository) SaveTransfer(ctx context.Context, expenseLeg domain.Transaction, incomeLeg domain.Transaction) error {
	sourceID := expenseLeg.BankID
	destID := incomeLeg.BankID
	amount := expenseLeg.Amount

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockedBanks, err := r.bankRepo.FindBanksByIDsForUpdate(ctx, tx, []string{sourceID, destID})
	if err != nil {
		return err
	}

	// Decide insufficient funds on the locked balance, not the caller's
	// possibly stale read.
	source := lockedBanks[sourceID]
	if amount.GreaterThan(source.Balance) {
		return fmt.Errorf("%w: transfer of %s exceeds balance %s of bank %s",
			apperrors.ErrInsufficientFunds, amount.String(), source.Balance.String(), source.Name)
	}

	changes := map[string]decimal.Decimal{
		sourceID: amount.Neg(),
		destID:   amount,
	}
	if err := r.bankRepo.UpdateBankBalancesInTx(ctx, tx, changes, expenseLeg.LastUpdatedAt); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	queueTransactionInsert(batch, toModelTransaction(expenseLeg))
	queueTransactionInsert(batch, toModelTransaction(incomeLeg))

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transfer legs", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a ledger entry by ID, unscoped; the service
// layer owns the budget ownership check so it can distinguish Forbidden from
// NotFound.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, budget_id, bank_id, kind, amount, period, source_name, dest_name, is_ledger, created_at, last_updated_at
		FROM transactions
		WHERE transaction_id = $1;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.BudgetID,
		&m.BankID,
		&m.Kind,
		&m.Amount,
		&m.Period,
		&m.SourceName,
		&m.DestName,
		&m.IsLedger,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	txn := toDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByBudget retrieves all transactions for a budget with each
// entry's bank name populated.
func (r *PgxTransactionRepository) ListTransactionsByBudget(ctx context.Context, budgetID string) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.budget_id, t.bank_id, b.name, t.kind, t.amount, t.period, t.source_name, t.dest_name, t.is_ledger, t.created_at, t.last_updated_at
		FROM transactions t
		JOIN banks b ON t.bank_id = b.bank_id
		WHERE t.budget_id = $1
		ORDER BY t.created_at, t.transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for budget "+budgetID, err)
	}
	defer rows.Close()

	return scanTransactionRowsWithBankName(rows)
}

// ListTransactionsByBank retrieves all transactions posted against one bank.
func (r *PgxTransactionRepository) ListTransactionsByBank(ctx context.Context, budgetID string, bankID string) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.budget_id, t.bank_id, b.name, t.kind, t.amount, t.period, t.source_name, t.dest_name, t.is_ledger, t.created_at, t.last_updated_at
		FROM transactions t
		JOIN banks b ON t.bank_id = b.bank_id
		WHERE t.budget_id = $1 AND t.bank_id = $2
		ORDER BY t.created_at, t.transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID, bankID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for bank "+bankID, err)
	}
	defer rows.Close()

	return scanTransactionRowsWithBankName(rows)
}

func scanTransactionRowsWithBankName(rows pgx.Rows) ([]domain.Transaction, error) {
	txns := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		var bankName string
		err := rows.Scan(
			&m.TransactionID,
			&m.BudgetID,
			&m.BankID,
			&bankName,
			&m.Kind,
			&m.Amount,
			&m.Period,
			&m.SourceName,
			&m.DestName,
			&m.IsLedger,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txn := toDomainTransaction(m)
		txn.BankName = bankName
		txns = append(txns, txn)
	}
	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", rows.Err())
	}
	return txns, nil
}
