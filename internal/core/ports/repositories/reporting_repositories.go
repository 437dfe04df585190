package repositories

import (
	"context"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries over the ledger.
type ReportingRepository interface {
	// GetMonthlySummary returns per-period income/expense totals for a budget,
	// ordered by ascending period string.
	GetMonthlySummary(ctx context.Context, budgetID string) ([]domain.PeriodSummary, error)
}
