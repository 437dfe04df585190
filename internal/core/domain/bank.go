package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultBankName is the canonical payroll account auto-created per budget.
// It can never be deleted or duplicated within a budget.
const DefaultBankName = "Payroll Bank(RBANK)"

// Bank represents a named account within a budget.
// Balance is only mutated through the ledger service, the transfer protocol,
// or the explicit administrative override.
type Bank struct {
	BankID   string          `json:"bankID"`
	BudgetID string          `json:"budgetID"` // opaque tenant scope, immutable
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	AuditFields
}

// IsCanonical reports whether this bank is the budget's default payroll account.
func (b Bank) IsCanonical() bool {
	return b.Name == DefaultBankName
}
