package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	"github.com/gestorlab/freela_backend/internal/models"
	"github.com/gestorlab/freela_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCollaborationRepository struct {
	db *pgxpool.Pool
}

func newPgxCollaborationRepository(db *pgxpool.Pool) portsrepo.CollaborationRepositoryFacade {
	return &PgxCollaborationRepository{db: db}
}

// Ensure PgxCollaborationRepository implements portsrepo.CollaborationRepositoryFacade
var _ portsrepo.CollaborationRepositoryFacade = (*PgxCollaborationRepository)(nil)

const collaborationColumns = `collaboration_id, requester_id, addressee_id, status, created_at, created_by, last_updated_at, last_updated_by`

func scanCollaboration(row pgx.Row) (models.Collaboration, error) {
	var m models.Collaboration
	err := row.Scan(
		&m.CollaborationID,
		&m.RequesterID,
		&m.AddresseeID,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCollaborationRepository) SaveCollaboration(ctx context.Context, collaboration domain.Collaboration) error {
	modelCollab := mapping.ToModelCollaboration(collaboration)
	query := `
        INSERT INTO collaborations (` + collaborationColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		modelCollab.CollaborationID,
		modelCollab.RequesterID,
		modelCollab.AddresseeID,
		modelCollab.Status,
		modelCollab.CreatedAt,
		modelCollab.CreatedBy,
		modelCollab.LastUpdatedAt,
		modelCollab.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("collaboration already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save collaboration: %w", err)
	}
	return nil
}

func (r *PgxCollaborationRepository) FindCollaborationByID(ctx context.Context, collaborationID string) (*domain.Collaboration, error) {
	query := `SELECT ` + collaborationColumns + ` FROM collaborations WHERE collaboration_id = $1;`
	modelCollab, err := scanCollaboration(r.db.QueryRow(ctx, query, collaborationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find collaboration by ID %s: %w", collaborationID, err)
	}

	domainCollab := mapping.ToDomainCollaboration(modelCollab)
	return &domainCollab, nil
}

// FindCollaborationBetween matches the pair in either direction, so one link
// per pair of users can ever exist.
func (r *PgxCollaborationRepository) FindCollaborationBetween(ctx context.Context, userID string, otherUserID string) (*domain.Collaboration, error) {
	query := `
        SELECT ` + collaborationColumns + `
        FROM collaborations
        WHERE (requester_id = $1 AND addressee_id = $2)
           OR (requester_id = $2 AND addressee_id = $1);
    `
	modelCollab, err := scanCollaboration(r.db.QueryRow(ctx, query, userID, otherUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find collaboration between users: %w", err)
	}

	domainCollab := mapping.ToDomainCollaboration(modelCollab)
	return &domainCollab, nil
}

func (r *PgxCollaborationRepository) ListCollaborationsByUser(ctx context.Context, userID string) ([]domain.Collaboration, error) {
	query := `
        SELECT ` + collaborationColumns + `
        FROM collaborations
        WHERE requester_id = $1 OR addressee_id = $1
        ORDER BY created_at DESC;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collaborations: %w", err)
	}
	defer rows.Close()

	modelCollabs := []models.Collaboration{}
	for rows.Next() {
		modelCollab, err := scanCollaboration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collaboration row: %w", err)
		}
		modelCollabs = append(modelCollabs, modelCollab)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating collaboration rows: %w", rows.Err())
	}

	return mapping.ToDomainCollaborationSlice(modelCollabs), nil
}

func (r *PgxCollaborationRepository) UpdateCollaborationStatus(ctx context.Context, collaborationID string, status domain.CollaborationStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
        UPDATE collaborations
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE collaboration_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(status), updatedAt, updatedByUserID, collaborationID)
	if err != nil {
		return fmt.Errorf("failed to update collaboration status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("collaboration not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCollaborationRepository) DeleteCollaboration(ctx context.Context, collaborationID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM collaborations WHERE collaboration_id = $1;`, collaborationID)
	if err != nil {
		return fmt.Errorf("failed to delete collaboration %s: %w", collaborationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("collaboration not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
