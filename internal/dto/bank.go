package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

// CreateBankRequest defines the data needed to create a new bank.
type CreateBankRequest struct {
	Name    string          `json:"name" binding:"required"`
	Balance decimal.Decimal `json:"balance"` // optional opening balance, defaults to zero
}

// OverrideBalanceRequest defines the administrative balance override payload.
type OverrideBalanceRequest struct {
	Balance *decimal.Decimal `json:"balance" binding:"required"`
}

// BankResponse defines the data returned for a bank.
type BankResponse struct {
	BankID        string          `json:"bankID"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	IsCanonical   bool            `json:"isCanonical"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToBankResponse converts a domain.Bank to a BankResponse DTO.
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:        b.BankID,
		Name:          b.Name,
		Balance:       b.Balance,
		IsCanonical:   b.IsCanonical(),
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToBankResponses converts a slice of domain.Bank to BankResponse DTOs.
func ToBankResponses(banks []domain.Bank) []BankResponse {
	res := make([]BankResponse, len(banks))
	for i := range banks {
		res[i] = ToBankResponse(&banks[i])
	}
	return res
}

// ListBanksResponse wraps the list of banks.
type ListBanksResponse struct {
	Banks []BankResponse `json:"banks"`
}
