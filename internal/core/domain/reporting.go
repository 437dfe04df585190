package domain

import "github.com/shopspring/decimal"

// PeriodSummary is one row of the monthly income/expense rollup.
// Balance is TotalIncome minus TotalExpense for the period.
type PeriodSummary struct {
	Period       string          `json:"period"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}
