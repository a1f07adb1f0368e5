package services

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for client payment transactions
type TransactionReaderSvc interface {
	// ListTransactionsByProject retrieves a project's payment transactions using
	// token-based pagination. Owner and shared partners may read.
	ListTransactionsByProject(ctx context.Context, projectID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for client payment transactions
type TransactionWriterSvc interface {
	// CreateTransaction records a client payment against a project and refreshes
	// the client ledger. Owner or a partner with edit permissions.
	CreateTransaction(ctx context.Context, projectID string, req dto.CreateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// DeleteTransaction removes a recorded client payment and refreshes the
	// client ledger. Owner or a partner with edit permissions.
	DeleteTransaction(ctx context.Context, projectID string, transactionID string, requestingUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
