package services

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// GetProjectByID retrieves a project the user owns or is shared on.
	GetProjectByID(ctx context.Context, projectID string, requestingUserID string) (*domain.Project, error)

	// GetProjectSummary retrieves a project together with its shares and the
	// settlement computed from the requesting user's perspective.
	GetProjectSummary(ctx context.Context, projectID string, requestingUserID string) (*dto.ProjectSummaryResponse, error)

	// ListProjects retrieves a filtered, sorted, paginated list of the user's
	// projects (owned and shared), each with its viewer-relative settlement.
	ListProjects(ctx context.Context, requestingUserID string, params dto.ListProjectsParams) (*dto.ListProjectsResponse, error)
}

// ProjectWriterSvc defines write operations for project data
type ProjectWriterSvc interface {
	// CreateProject persists a new project, optionally creating the client
	// inline and attaching an initial partner share.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)

	// UpdateProject updates a project's details. When the request carries no
	// partner block, all existing shares are removed. Budget or commission
	// changes recompute every expected amount while received amounts persist.
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)

	// DeleteProject removes a project with its shares and payment history.
	// Owner only.
	DeleteProject(ctx context.Context, projectID string, requestingUserID string) error
}

// ReceiptSvc defines the payment ledger operations
type ReceiptSvc interface {
	// RegisterUserReceipt adds a withdrawal to the requesting user's running
	// received total; isFullPayment sets the total to the full expectation.
	// Owners write the owner ledger entry, partners their own share entry.
	RegisterUserReceipt(ctx context.Context, projectID string, req dto.RegisterReceiptRequest, requestingUserID string) (*dto.ProjectSummaryResponse, error)
}

// PartnershipSvc defines operations for managing partner shares on a project
type PartnershipSvc interface {
	// AttachPartner adds a partner share to the project. Requires an accepted
	// collaboration between owner and partner. Owner only.
	AttachPartner(ctx context.Context, projectID string, req dto.AttachPartnerRequest, requestingUserID string) (*domain.ProjectShare, error)

	// UpdatePartnerShare changes a partner's commission terms or permissions. Owner only.
	UpdatePartnerShare(ctx context.Context, projectID string, partnerID string, req dto.UpdateShareRequest, requestingUserID string) (*domain.ProjectShare, error)

	// DetachPartner removes a partner's share and their ledger entry, discarding
	// any recorded receipts for that partner. Owner only.
	DetachPartner(ctx context.Context, projectID string, partnerID string, requestingUserID string) error
}

// ProjectSvcFacade combines all project-related service interfaces
// This is a facade for clients that need access to all operations
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
	ReceiptSvc
	PartnershipSvc
}
