package services

import (
	"context"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

// ReportingSvcFacade exposes read-only rollups over the transaction log.
type ReportingSvcFacade interface {
	// MonthlySummary returns per-period income/expense totals for the budget,
	// ordered by ascending period string.
	MonthlySummary(ctx context.Context, budgetID string) ([]domain.PeriodSummary, error)
}
