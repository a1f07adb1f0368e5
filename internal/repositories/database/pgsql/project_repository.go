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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) *PgxProjectRepository {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryWithTx
var _ portsrepo.ProjectRepositoryWithTx = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, owner_id, client_id, name, description, budget, platform_id, platform_commission_percent, owner_commission_type, owner_commission_value, deadline, status, payment_details, version, created_at, created_by, last_updated_at, last_updated_by`

const shareColumns = `share_id, project_id, partner_id, commission_type, commission_value, permissions, payment_status, amount_paid, created_at, created_by, last_updated_at, last_updated_by`

// sortColumns whitelists the ORDER BY targets for project listings.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"deadline":  "deadline",
	"budget":    "budget",
	"name":      "name",
}

func scanProject(row pgx.Row) (models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.OwnerID,
		&m.ClientID,
		&m.Name,
		&m.Description,
		&m.Budget,
		&m.PlatformID,
		&m.PlatformCommissionPercent,
		&m.OwnerCommissionType,
		&m.OwnerCommissionValue,
		&m.Deadline,
		&m.Status,
		&m.PaymentDetails,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanShare(row pgx.Row) (models.ProjectShare, error) {
	var m models.ProjectShare
	err := row.Scan(
		&m.ShareID,
		&m.ProjectID,
		&m.PartnerID,
		&m.CommissionType,
		&m.CommissionValue,
		&m.Permissions,
		&m.PaymentStatus,
		&m.AmountPaid,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockProjectVersion takes a row lock on the project and returns its current
// version. Every ledger write goes through this before touching the row.
func lockProjectVersion(ctx context.Context, tx pgx.Tx, projectID string) (int64, error) {
	var version int64
	err := tx.QueryRow(ctx, `SELECT version FROM projects WHERE project_id = $1 FOR UPDATE;`, projectID).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock project %s: %w", projectID, err)
	}
	return version, nil
}

func insertShareTx(ctx context.Context, tx pgx.Tx, modelShare models.ProjectShare) error {
	query := `
        INSERT INTO project_shares (` + shareColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := tx.Exec(ctx, query,
		modelShare.ShareID,
		modelShare.ProjectID,
		modelShare.PartnerID,
		modelShare.CommissionType,
		modelShare.CommissionValue,
		modelShare.Permissions,
		modelShare.PaymentStatus,
		modelShare.AmountPaid,
		modelShare.CreatedAt,
		modelShare.CreatedBy,
		modelShare.LastUpdatedAt,
		modelShare.LastUpdatedBy,
	)
	return err
}

// writeLedgerTx persists a payment details document and bumps the version.
// The caller must hold the row lock.
func writeLedgerTx(ctx context.Context, tx pgx.Tx, projectID string, details domain.PaymentDetails, updatedByUserID string, updatedAt time.Time) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode payment details", err)
	}
	_, err = tx.Exec(ctx, `
        UPDATE projects
        SET payment_details = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
        WHERE project_id = $4;
    `, raw, updatedAt, updatedByUserID, projectID)
	if err != nil {
		return fmt.Errorf("failed to write payment ledger for project %s: %w", projectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	modelProject, err := scanProject(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}

	domainProject, err := mapping.ToDomainProject(modelProject)
	if err != nil {
		return nil, err
	}
	return &domainProject, nil
}

func (r *PgxProjectRepository) ListProjectsForUser(ctx context.Context, userID string, filter portsrepo.ProjectListFilter) ([]domain.Project, int64, error) {
	where := `
        (p.owner_id = $1 OR EXISTS (
            SELECT 1 FROM project_shares ps WHERE ps.project_id = p.project_id AND ps.partner_id = $1
        ))`
	args := []any{userID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		where += fmt.Sprintf(" AND p.client_id = $%d", len(args))
	}
	if filter.PlatformID != nil {
		args = append(args, *filter.PlatformID)
		where += fmt.Sprintf(" AND p.platform_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(1) FROM projects p WHERE ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := `
        SELECT ` + prefixedProjectColumns() + `
        FROM projects p
        WHERE ` + where + `
        ORDER BY p.` + orderBy + ` ` + direction + ` NULLS LAST, p.project_id ` + direction +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	modelProjects := []models.Project{}
	for rows.Next() {
		modelProject, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project row: %w", err)
		}
		modelProjects = append(modelProjects, modelProject)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating project rows: %w", rows.Err())
	}

	domainProjects, err := mapping.ToDomainProjectSlice(modelProjects)
	if err != nil {
		return nil, 0, err
	}
	return domainProjects, total, nil
}

func prefixedProjectColumns() string {
	return `p.project_id, p.owner_id, p.client_id, p.name, p.description, p.budget, p.platform_id, p.platform_commission_percent, p.owner_commission_type, p.owner_commission_value, p.deadline, p.status, p.payment_details, p.version, p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project, shares []domain.ProjectShare) error {
	modelProject, err := mapping.ToModelProject(project)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        INSERT INTO projects (` + projectColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err = tx.Exec(ctx, query,
		modelProject.ProjectID,
		modelProject.OwnerID,
		modelProject.ClientID,
		modelProject.Name,
		modelProject.Description,
		modelProject.Budget,
		modelProject.PlatformID,
		modelProject.PlatformCommissionPercent,
		modelProject.OwnerCommissionType,
		modelProject.OwnerCommissionValue,
		modelProject.Deadline,
		modelProject.Status,
		modelProject.PaymentDetails,
		modelProject.Version,
		modelProject.CreatedAt,
		modelProject.CreatedBy,
		modelProject.LastUpdatedAt,
		modelProject.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project %s: %w", modelProject.ProjectID, err)
	}

	for _, share := range shares {
		if err := insertShareTx(ctx, tx, mapping.ToModelProjectShare(share)); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("partner already attached: %w", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to insert share for project %s: %w", modelProject.ProjectID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project, shares []domain.ProjectShare, replaceShares bool) error {
	modelProject, err := mapping.ToModelProject(project)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	currentVersion, err := lockProjectVersion(ctx, tx, project.ProjectID)
	if err != nil {
		return err
	}
	if currentVersion != project.Version {
		return fmt.Errorf("project %s was modified concurrently: %w", project.ProjectID, apperrors.ErrConflict)
	}

	query := `
        UPDATE projects
        SET client_id = $1, name = $2, description = $3, budget = $4, platform_id = $5,
            platform_commission_percent = $6, owner_commission_type = $7, owner_commission_value = $8,
            deadline = $9, status = $10, payment_details = $11, version = version + 1,
            last_updated_at = $12, last_updated_by = $13
        WHERE project_id = $14;
    `
	_, err = tx.Exec(ctx, query,
		modelProject.ClientID,
		modelProject.Name,
		modelProject.Description,
		modelProject.Budget,
		modelProject.PlatformID,
		modelProject.PlatformCommissionPercent,
		modelProject.OwnerCommissionType,
		modelProject.OwnerCommissionValue,
		modelProject.Deadline,
		modelProject.Status,
		modelProject.PaymentDetails,
		modelProject.LastUpdatedAt,
		modelProject.LastUpdatedBy,
		modelProject.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", modelProject.ProjectID, err)
	}

	if replaceShares {
		if _, err := tx.Exec(ctx, `DELETE FROM project_shares WHERE project_id = $1;`, project.ProjectID); err != nil {
			return fmt.Errorf("failed to clear shares for project %s: %w", project.ProjectID, err)
		}
		for _, share := range shares {
			if err := insertShareTx(ctx, tx, mapping.ToModelProjectShare(share)); err != nil {
				return fmt.Errorf("failed to insert share for project %s: %w", project.ProjectID, err)
			}
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProjectRepository) UpdatePaymentLedger(ctx context.Context, projectID string, expectedVersion int64, details domain.PaymentDetails, shareUpdate *domain.ProjectShare, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	currentVersion, err := lockProjectVersion(ctx, tx, projectID)
	if err != nil {
		return err
	}
	if currentVersion != expectedVersion {
		return fmt.Errorf("project %s was modified concurrently: %w", projectID, apperrors.ErrConflict)
	}

	if shareUpdate != nil {
		modelShare := mapping.ToModelProjectShare(*shareUpdate)
		cmdTag, err := tx.Exec(ctx, `
            UPDATE project_shares
            SET commission_type = $1, commission_value = $2, permissions = $3,
                payment_status = $4, amount_paid = $5, last_updated_at = $6, last_updated_by = $7
            WHERE project_id = $8 AND partner_id = $9;
        `, modelShare.CommissionType, modelShare.CommissionValue, modelShare.Permissions,
			modelShare.PaymentStatus, modelShare.AmountPaid, updatedAt, updatedByUserID, projectID, modelShare.PartnerID)
		if err != nil {
			return fmt.Errorf("failed to update share ledger for project %s: %w", projectID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("share not found for partner %s: %w", modelShare.PartnerID, apperrors.ErrNotFound)
		}
	}

	if err := writeLedgerTx(ctx, tx, projectID, details, updatedByUserID, updatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE project_id = $1;`, projectID); err != nil {
		return fmt.Errorf("failed to delete transactions for project %s: %w", projectID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM project_shares WHERE project_id = $1;`, projectID); err != nil {
		return fmt.Errorf("failed to delete shares for project %s: %w", projectID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM projects WHERE project_id = $1;`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProjectRepository) FindShareByProjectAndPartner(ctx context.Context, projectID string, partnerID string) (*domain.ProjectShare, error) {
	query := `SELECT ` + shareColumns + ` FROM project_shares WHERE project_id = $1 AND partner_id = $2;`
	modelShare, err := scanShare(r.Pool.QueryRow(ctx, query, projectID, partnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find share for project %s partner %s: %w", projectID, partnerID, err)
	}

	domainShare := mapping.ToDomainProjectShare(modelShare)
	return &domainShare, nil
}

func (r *PgxProjectRepository) FindSharesByProject(ctx context.Context, projectID string) ([]domain.ProjectShare, error) {
	query := `SELECT ` + shareColumns + ` FROM project_shares WHERE project_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares for project %s: %w", projectID, err)
	}
	defer rows.Close()

	modelShares := []models.ProjectShare{}
	for rows.Next() {
		modelShare, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share row: %w", err)
		}
		modelShares = append(modelShares, modelShare)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating share rows: %w", rows.Err())
	}

	return mapping.ToDomainProjectShareSlice(modelShares), nil
}

func (r *PgxProjectRepository) FindSharesByProjectIDs(ctx context.Context, projectIDs []string) (map[string][]domain.ProjectShare, error) {
	result := make(map[string][]domain.ProjectShare, len(projectIDs))
	if len(projectIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + shareColumns + ` FROM project_shares WHERE project_id = ANY($1) ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares for projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		modelShare, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share row: %w", err)
		}
		domainShare := mapping.ToDomainProjectShare(modelShare)
		result[domainShare.ProjectID] = append(result[domainShare.ProjectID], domainShare)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating share rows: %w", rows.Err())
	}

	return result, nil
}

func (r *PgxProjectRepository) AttachShare(ctx context.Context, share domain.ProjectShare, details domain.PaymentDetails, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	currentVersion, err := lockProjectVersion(ctx, tx, share.ProjectID)
	if err != nil {
		return err
	}
	if currentVersion != expectedVersion {
		return fmt.Errorf("project %s was modified concurrently: %w", share.ProjectID, apperrors.ErrConflict)
	}

	if err := insertShareTx(ctx, tx, mapping.ToModelProjectShare(share)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("partner already attached: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert share for project %s: %w", share.ProjectID, err)
	}

	if err := writeLedgerTx(ctx, tx, share.ProjectID, details, share.CreatedBy, share.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProjectRepository) RemoveShare(ctx context.Context, projectID string, partnerID string, details domain.PaymentDetails, expectedVersion int64, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	currentVersion, err := lockProjectVersion(ctx, tx, projectID)
	if err != nil {
		return err
	}
	if currentVersion != expectedVersion {
		return fmt.Errorf("project %s was modified concurrently: %w", projectID, apperrors.ErrConflict)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM project_shares WHERE project_id = $1 AND partner_id = $2;`, projectID, partnerID)
	if err != nil {
		return fmt.Errorf("failed to delete share for project %s partner %s: %w", projectID, partnerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("share not found for partner %s: %w", partnerID, apperrors.ErrNotFound)
	}

	if err := writeLedgerTx(ctx, tx, projectID, details, updatedByUserID, updatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
