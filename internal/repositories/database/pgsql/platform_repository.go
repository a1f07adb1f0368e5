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

type PgxPlatformRepository struct {
	db *pgxpool.Pool
}

func newPgxPlatformRepository(db *pgxpool.Pool) portsrepo.PlatformRepositoryFacade {
	return &PgxPlatformRepository{db: db}
}

// Ensure PgxPlatformRepository implements portsrepo.PlatformRepositoryFacade
var _ portsrepo.PlatformRepositoryFacade = (*PgxPlatformRepository)(nil)

const platformColumns = `platform_id, name, logo_url, default_commission_percent, created_at, created_by, last_updated_at, last_updated_by`

func scanPlatform(row pgx.Row) (models.Platform, error) {
	var m models.Platform
	err := row.Scan(
		&m.PlatformID,
		&m.Name,
		&m.LogoURL,
		&m.DefaultCommissionPercent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPlatformRepository) SavePlatform(ctx context.Context, platform domain.Platform) error {
	modelPlatform := mapping.ToModelPlatform(platform)
	query := `
        INSERT INTO platforms (` + platformColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		modelPlatform.PlatformID,
		modelPlatform.Name,
		modelPlatform.LogoURL,
		modelPlatform.DefaultCommissionPercent,
		modelPlatform.CreatedAt,
		modelPlatform.CreatedBy,
		modelPlatform.LastUpdatedAt,
		modelPlatform.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save platform: %w", err)
	}
	return nil
}

func (r *PgxPlatformRepository) FindPlatformByID(ctx context.Context, platformID string) (*domain.Platform, error) {
	query := `SELECT ` + platformColumns + ` FROM platforms WHERE platform_id = $1;`
	modelPlatform, err := scanPlatform(r.db.QueryRow(ctx, query, platformID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find platform by ID %s: %w", platformID, err)
	}

	domainPlatform := mapping.ToDomainPlatform(modelPlatform)
	return &domainPlatform, nil
}

func (r *PgxPlatformRepository) ListPlatformsByOwner(ctx context.Context, ownerID string) ([]domain.Platform, error) {
	query := `
        SELECT ` + platformColumns + `
        FROM platforms
        WHERE created_by = $1
        ORDER BY name ASC;
    `
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query platforms: %w", err)
	}
	defer rows.Close()

	modelPlatforms := []models.Platform{}
	for rows.Next() {
		modelPlatform, err := scanPlatform(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan platform row: %w", err)
		}
		modelPlatforms = append(modelPlatforms, modelPlatform)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating platform rows: %w", rows.Err())
	}

	return mapping.ToDomainPlatformSlice(modelPlatforms), nil
}

func (r *PgxPlatformRepository) UpdatePlatform(ctx context.Context, platform domain.Platform) error {
	modelPlatform := mapping.ToModelPlatform(platform)
	query := `
        UPDATE platforms
        SET name = $1, logo_url = $2, default_commission_percent = $3, last_updated_at = $4, last_updated_by = $5
        WHERE platform_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelPlatform.Name,
		modelPlatform.LogoURL,
		modelPlatform.DefaultCommissionPercent,
		modelPlatform.LastUpdatedAt,
		modelPlatform.LastUpdatedBy,
		modelPlatform.PlatformID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update platform query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("platform not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPlatformRepository) DeletePlatform(ctx context.Context, platformID string) error {
	// Projects keep their snapshotted commission percent; only the FK is cleared.
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE projects SET platform_id = NULL WHERE platform_id = $1;`, platformID); err != nil {
		return fmt.Errorf("failed to detach projects from platform %s: %w", platformID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM platforms WHERE platform_id = $1;`, platformID)
	if err != nil {
		return fmt.Errorf("failed to delete platform %s: %w", platformID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("platform not found: %w", apperrors.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit platform delete: %w", err)
	}
	return nil
}
