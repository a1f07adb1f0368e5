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

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, owner_id, legal_name, trade_name, email, phone, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.OwnerID,
		&m.LegalName,
		&m.TradeName,
		&m.Email,
		&m.Phone,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	modelClient := mapping.ToModelClient(client)
	query := `
        INSERT INTO clients (` + clientColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.OwnerID,
		modelClient.LegalName,
		modelClient.TradeName,
		modelClient.Email,
		modelClient.Phone,
		modelClient.CreatedAt,
		modelClient.CreatedBy,
		modelClient.LastUpdatedAt,
		modelClient.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	modelClient, err := scanClient(r.db.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	domainClient := mapping.ToDomainClient(modelClient)
	return &domainClient, nil
}

func (r *PgxClientRepository) ListClientsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + clientColumns + `
        FROM clients
        WHERE owner_id = $1
        ORDER BY legal_name ASC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	modelClients := []models.Client{}
	for rows.Next() {
		modelClient, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		modelClients = append(modelClients, modelClient)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}

	return mapping.ToDomainClientSlice(modelClients), nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	modelClient := mapping.ToModelClient(client)
	query := `
        UPDATE clients
        SET legal_name = $1, trade_name = $2, email = $3, phone = $4, last_updated_at = $5, last_updated_by = $6
        WHERE client_id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelClient.LegalName,
		modelClient.TradeName,
		modelClient.Email,
		modelClient.Phone,
		modelClient.LastUpdatedAt,
		modelClient.LastUpdatedBy,
		modelClient.ClientID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update client query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	// Refuse to orphan projects.
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM projects WHERE client_id = $1;`, clientID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count projects for client %s: %w", clientID, err)
	}
	if count > 0 {
		return fmt.Errorf("client has %d project(s): %w", count, apperrors.ErrConflict)
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
