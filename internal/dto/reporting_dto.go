package dto

import (
	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

// PeriodSummaryResponse is one row of the monthly rollup.
type PeriodSummaryResponse struct {
	Period       string          `json:"period"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// MonthlySummaryResponse wraps the ordered rollup rows.
type MonthlySummaryResponse struct {
	Summary []PeriodSummaryResponse `json:"summary"`
}

// ToMonthlySummaryResponse converts domain rollup rows to the response DTO.
func ToMonthlySummaryResponse(rows []domain.PeriodSummary) MonthlySummaryResponse {
	res := make([]PeriodSummaryResponse, len(rows))
	for i, row := range rows {
		res[i] = PeriodSummaryResponse{
			Period:       row.Period,
			TotalIncome:  row.TotalIncome,
			TotalExpense: row.TotalExpense,
			Balance:      row.Balance,
		}
	}
	return MonthlySummaryResponse{Summary: res}
}
