package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbank-app/budget_backend/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to post a ledger entry.
// BankID is optional; when omitted the budget's default bank is used.
type CreateTransactionRequest struct {
	Kind       domain.TransactionKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount     decimal.Decimal        `json:"amount" binding:"required"`
	Period     string                 `json:"period" binding:"required"`
	BankID     string                 `json:"bankID"`
	SourceName string                 `json:"sourceName"`
	DestName   string                 `json:"destName"`
	IsLedger   bool                   `json:"isLedger"`
}

// TransferRequest defines the data needed to move money between two banks.
type TransferRequest struct {
	SourceBankID string          `json:"sourceBankID" binding:"required"`
	DestBankID   string          `json:"destBankID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Period       string          `json:"period" binding:"required"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	BankID        string                 `json:"bankID"`
	BankName      string                 `json:"bankName,omitempty"`
	Kind          domain.TransactionKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	Period        string                 `json:"period"`
	SourceName    string                 `json:"sourceName,omitempty"`
	DestName      string                 `json:"destName,omitempty"`
	IsLedger      bool                   `json:"isLedger"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to a TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		BankID:        t.BankID,
		BankName:      t.BankName,
		Kind:          t.Kind,
		Amount:        t.Amount,
		Period:        t.Period,
		SourceName:    t.SourceName,
		DestName:      t.DestName,
		IsLedger:      t.IsLedger,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// TransferResponse wraps the two legs created by a transfer,
// in [expense, income] order.
type TransferResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
