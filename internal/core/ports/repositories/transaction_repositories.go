package repositories

import (
	"context"
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for client payment transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByProject retrieves a paginated list of transactions for a
	// project using token-based pagination. It returns the transactions, a token
	// for the next page, and an error.
	ListTransactionsByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumTransactionsByProject returns the total amount paid by the client on a project.
	SumTransactionsByProject(ctx context.Context, projectID string) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for client payment transactions.
// Both methods re-derive the client's paid total inside the same DB transaction
// and rewrite the project's client ledger, so the ledger never drifts from the
// transaction history.
type TransactionWriter interface {
	// SaveTransaction inserts a payment transaction and refreshes the project's
	// client ledger atomically. The project row is locked while the ledger is
	// rewritten; a stale project version yields ErrConflict.
	SaveTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64) error

	// DeleteTransaction removes a payment transaction and refreshes the project's
	// client ledger atomically, same locking rules as SaveTransaction.
	DeleteTransaction(ctx context.Context, projectID string, transactionID string, expectedVersion int64, deletedByUserID string, deletedAt time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
