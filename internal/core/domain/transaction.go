package domain

import "github.com/shopspring/decimal"

// TransactionKind indicates whether a transaction adds to or subtracts from a bank.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// Transaction represents a single ledger entry posted against one bank.
// Amount is a non-negative magnitude; the sign is implied by Kind.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	BudgetID      string          `json:"budgetID"` // must equal the owning bank's BudgetID
	BankID        string          `json:"bankID"`
	BankName      string          `json:"bankName,omitempty"` // populated on list reads
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Period        string          `json:"period"` // free-form grouping label, e.g. "2024-01"
	SourceName    string          `json:"sourceName,omitempty"`
	DestName      string          `json:"destName,omitempty"`
	IsLedger      bool            `json:"isLedger"` // transfer leg against a non-canonical bank
	AuditFields
}

// SignedAmount returns the effect this transaction has on its bank's balance:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
