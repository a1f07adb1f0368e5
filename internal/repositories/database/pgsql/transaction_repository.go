package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	"github.com/gestorlab/freela_backend/internal/models"
	"github.com/gestorlab/freela_backend/internal/utils/mapping"
	"github.com/gestorlab/freela_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, project_id, amount, payment_date, description, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ProjectID,
		&m.Amount,
		&m.PaymentDate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockProjectLedger locks the project row and returns its budget, decoded
// ledger and current version.
func lockProjectLedger(ctx context.Context, tx pgx.Tx, projectID string) (decimal.Decimal, domain.PaymentDetails, int64, error) {
	var (
		budget  decimal.Decimal
		raw     []byte
		version int64
	)
	err := tx.QueryRow(ctx, `SELECT budget, payment_details, version FROM projects WHERE project_id = $1 FOR UPDATE;`, projectID).
		Scan(&budget, &raw, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.PaymentDetails{}, 0, apperrors.ErrNotFound
		}
		return decimal.Zero, domain.PaymentDetails{}, 0, fmt.Errorf("failed to lock project %s: %w", projectID, err)
	}

	details := domain.NewPaymentDetails()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &details); err != nil {
			return decimal.Zero, domain.PaymentDetails{}, 0, fmt.Errorf("%w: malformed payment details for project %s: %v", apperrors.ErrInternal, projectID, err)
		}
		if details.Partners == nil {
			details.Partners = map[string]domain.PartnerLedger{}
		}
	}
	return budget, details, version, nil
}

func sumTransactionsTx(ctx context.Context, tx pgx.Tx, projectID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE project_id = $1;`, projectID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions for project %s: %w", projectID, err)
	}
	return total, nil
}

// SaveTransaction inserts the payment and rewrites the client ledger from the
// new transaction total, all under the project row lock.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64) error {
	modelTxn := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	budget, details, version, err := lockProjectLedger(ctx, tx, txn.ProjectID)
	if err != nil {
		return err
	}
	if version != expectedVersion {
		return fmt.Errorf("project %s was modified concurrently: %w", txn.ProjectID, apperrors.ErrConflict)
	}

	query := `
        INSERT INTO transactions (` + transactionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err = tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.ProjectID,
		modelTxn.Amount,
		modelTxn.PaymentDate,
		modelTxn.Description,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	total, err := sumTransactionsTx(ctx, tx, txn.ProjectID)
	if err != nil {
		return err
	}

	if err := writeLedgerTx(ctx, tx, txn.ProjectID, details.WithClientPayment(total, budget), txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the payment and rewrites the client ledger from
// the remaining transaction total, all under the project row lock.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, projectID string, transactionID string, expectedVersion int64, deletedByUserID string, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	budget, details, version, err := lockProjectLedger(ctx, tx, projectID)
	if err != nil {
		return err
	}
	if version != expectedVersion {
		return fmt.Errorf("project %s was modified concurrently: %w", projectID, apperrors.ErrConflict)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND project_id = $2;`, transactionID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}

	total, err := sumTransactionsTx(ctx, tx, projectID)
	if err != nil {
		return err
	}

	if err := writeLedgerTx(ctx, tx, projectID, details.WithClientPayment(total, budget), deletedByUserID, deletedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

func (r *PgxTransactionRepository) ListTransactionsByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE project_id = $1
    `
	args := []any{projectID}

	if nextToken != nil && *nextToken != "" {
		paymentDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pagination token: %w", apperrors.ErrValidation)
		}
		args = append(args, paymentDate, createdAt)
		query += fmt.Sprintf(" AND (payment_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY payment_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		modelTxn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, modelTxn)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeToken(last.PaymentDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainTransactionSlice(modelTxns), newNextToken, nil
}

func (r *PgxTransactionRepository) SumTransactionsByProject(ctx context.Context, projectID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE project_id = $1;`, projectID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions for project %s: %w", projectID, err)
	}
	return total, nil
}
