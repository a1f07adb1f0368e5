package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	"github.com/gestorlab/freela_backend/internal/models"
	"github.com/gestorlab/freela_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{db: db}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, project_id, description, category, amount, expense_date, receipt_url, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.ProjectID,
		&m.Description,
		&m.Category,
		&m.Amount,
		&m.ExpenseDate,
		&m.ReceiptURL,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	modelExpense := mapping.ToModelExpense(expense)
	query := `
        INSERT INTO expenses (` + expenseColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		modelExpense.ExpenseID,
		modelExpense.ProjectID,
		modelExpense.Description,
		modelExpense.Category,
		modelExpense.Amount,
		modelExpense.ExpenseDate,
		modelExpense.ReceiptURL,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	modelExpense, err := scanExpense(r.db.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	domainExpense := mapping.ToDomainExpense(modelExpense)
	return &domainExpense, nil
}

func (r *PgxExpenseRepository) ListExpensesByOwner(ctx context.Context, ownerID string, projectID *string) ([]domain.Expense, error) {
	query := `
        SELECT ` + expenseColumns + `
        FROM expenses
        WHERE created_by = $1
    `
	args := []any{ownerID}

	if projectID != nil && *projectID != "" {
		args = append(args, *projectID)
		query += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	query += " ORDER BY expense_date DESC, created_at DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses := []models.Expense{}
	for rows.Next() {
		modelExpense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, modelExpense)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
