package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rbank-app/budget_backend/internal/apperrors"
	"github.com/rbank-app/budget_backend/internal/core/domain"
	portsrepo "github.com/rbank-app/budget_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// GetMonthlySummary aggregates the budget's transactions into per-period
// income/expense totals. Ordering is plain string comparison on the period
// label, matching how the labels are grouped.
func (r *reportingRepository) GetMonthlySummary(ctx context.Context, budgetID string) ([]domain.PeriodSummary, error) {
	query := `
		SELECT
			period,
			SUM(CASE WHEN kind = 'INCOME' THEN amount ELSE 0 END) AS total_income,
			SUM(CASE WHEN kind = 'EXPENSE' THEN amount ELSE 0 END) AS total_expense
		FROM transactions
		WHERE budget_id = $1
		GROUP BY period
		ORDER BY period;
	`

	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly summary for budget "+budgetID, err)
	}
	defer rows.Close()

	summary := []domain.PeriodSummary{}
	for rows.Next() {
		var row domain.PeriodSummary
		if err := rows.Scan(&row.Period, &row.TotalIncome, &row.TotalExpense); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan summary row", err)
		}
		row.Balance = row.TotalIncome.Sub(row.TotalExpense)
		summary = append(summary, row)
	}
	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating summary rows", rows.Err())
	}

	return summary, nil
}
