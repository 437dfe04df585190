package models

import (
	"github.com/shopspring/decimal"
)

// Bank is the database representation of a budget bank account.
type Bank struct {
	BankID   string          `db:"bank_id"`
	BudgetID string          `db:"budget_id"`
	Name     string          `db:"name"`
	Balance  decimal.Decimal `db:"balance"`
	AuditFields
}
