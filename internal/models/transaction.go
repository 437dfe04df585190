package models

import "github.com/shopspring/decimal"

// TransactionKind mirrors domain.TransactionKind for storage.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// Transaction is the database representation of a ledger entry.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	BudgetID      string          `db:"budget_id"`
	BankID        string          `db:"bank_id"`
	Kind          TransactionKind `db:"kind"`
	Amount        decimal.Decimal `db:"amount"`
	Period        string          `db:"period"`
	SourceName    string          `db:"source_name"`
	DestName      string          `db:"dest_name"`
	IsLedger      bool            `db:"is_ledger"`
	AuditFields
}
