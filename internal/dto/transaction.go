package dto

import (
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a client payment against a project.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Description string          `json:"description" binding:"omitempty,max=500"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a client payment.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	ProjectID     string          `json:"projectID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListTransactionsResponse wraps a page of transactions with the next token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		ProjectID:     txn.ProjectID,
		Amount:        txn.Amount.Round(2),
		PaymentDate:   txn.PaymentDate,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
