package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

func TestSignedAmount(t *testing.T) {
	income := domain.Transaction{Kind: domain.Income, Amount: decimal.NewFromInt(120)}
	expense := domain.Transaction{Kind: domain.Expense, Amount: decimal.NewFromInt(45)}

	assert.True(t, income.SignedAmount().Equal(decimal.NewFromInt(120)))
	assert.True(t, expense.SignedAmount().Equal(decimal.NewFromInt(-45)))
}

func TestSignedAmount_ZeroAmount(t *testing.T) {
	txn := domain.Transaction{Kind: domain.Expense, Amount: decimal.Zero}
	assert.True(t, txn.SignedAmount().IsZero())
}

func TestBankIsCanonical(t *testing.T) {
	assert.True(t, domain.Bank{Name: domain.DefaultBankName}.IsCanonical())
	assert.False(t, domain.Bank{Name: "Savings"}.IsCanonical())
	// Matching is exact, not case-insensitive.
	assert.False(t, domain.Bank{Name: "payroll bank(rbank)"}.IsCanonical())
}
