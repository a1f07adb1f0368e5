package repositories

import (
	"context"
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
)

// ProjectListFilter holds the optional filters and paging for project listings.
// Zero values mean "no filter".
type ProjectListFilter struct {
	Status     *domain.ProjectStatus
	ClientID   *string
	PlatformID *string
	Search     string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its ID.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjectsForUser retrieves a paginated list of projects the user owns or
	// has a share in, with the total count before paging.
	ListProjectsForUser(ctx context.Context, userID string, filter ProjectListFilter) ([]domain.Project, int64, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project and its initial shares within a DB transaction.
	SaveProject(ctx context.Context, project domain.Project, shares []domain.ProjectShare) error

	// UpdateProject updates a project's details and, when replaceShares is set,
	// replaces the full set of partner shares within the same DB transaction.
	// The project's version is checked and bumped; a stale version yields ErrConflict.
	UpdateProject(ctx context.Context, project domain.Project, shares []domain.ProjectShare, replaceShares bool) error

	// UpdatePaymentLedger atomically writes a recomputed payment ledger and the
	// matching share row. The project row is locked for the duration and its
	// version checked against expectedVersion; a mismatch yields ErrConflict.
	// shareUpdate may be nil when only the owner or client ledger changed.
	UpdatePaymentLedger(ctx context.Context, projectID string, expectedVersion int64, details domain.PaymentDetails, shareUpdate *domain.ProjectShare, updatedByUserID string, updatedAt time.Time) error

	// DeleteProject removes a project together with its shares and transactions.
	DeleteProject(ctx context.Context, projectID string) error
}

// ShareReader defines read operations for project share data
type ShareReader interface {
	// FindShareByProjectAndPartner retrieves the share of one partner on one project.
	FindShareByProjectAndPartner(ctx context.Context, projectID string, partnerID string) (*domain.ProjectShare, error)

	// FindSharesByProject retrieves all partner shares on a project.
	FindSharesByProject(ctx context.Context, projectID string) ([]domain.ProjectShare, error)

	// FindSharesByProjectIDs retrieves shares for multiple projects, grouped by project ID.
	FindSharesByProjectIDs(ctx context.Context, projectIDs []string) (map[string][]domain.ProjectShare, error)
}

// ShareWriter defines write operations for project share data
type ShareWriter interface {
	// AttachShare persists a new share and mirrors an empty partner ledger entry
	// into the project's payment details within one DB transaction. The project
	// version is checked against expectedVersion; a mismatch yields ErrConflict.
	AttachShare(ctx context.Context, share domain.ProjectShare, details domain.PaymentDetails, expectedVersion int64) error

	// RemoveShare deletes a partner's share and their mirrored ledger entry from
	// the project's payment details within one DB transaction. The project
	// version is checked against expectedVersion; a mismatch yields ErrConflict.
	RemoveShare(ctx context.Context, projectID string, partnerID string, details domain.PaymentDetails, expectedVersion int64, updatedByUserID string, updatedAt time.Time) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
// This is a facade for clients that need access to all operations
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
	ShareReader
	ShareWriter
}

// ProjectRepositoryWithTx extends ProjectRepositoryFacade with transaction capabilities
type ProjectRepositoryWithTx interface {
	ProjectRepositoryFacade
	TransactionManager
}
