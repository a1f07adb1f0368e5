package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
	"github.com/gestorlab/freela_backend/internal/middleware"
	"github.com/gestorlab/freela_backend/internal/utils/settlement"
)

var (
	ErrCollaborationRequired = errors.New("an accepted collaboration with the partner is required")
	ErrSelfShare             = errors.New("cannot attach yourself as a partner")
	ErrNotShared             = errors.New("partner has no share on this project")
	ErrClientSelection       = errors.New("exactly one of clientID and newClient must be provided")
	ErrNegativeBudget        = errors.New("budget cannot be negative")
	ErrNegativeReceipt       = errors.New("received amount cannot be negative")
)

// projectService provides project, settlement and partnership operations.
type projectService struct {
	projectRepo      portsrepo.ProjectRepositoryFacade
	platformRepo     portsrepo.PlatformRepositoryFacade
	userRepo         portsrepo.UserReader
	clientSvc        portssvc.ClientSvcFacade
	collaborationSvc portssvc.CollaborationReaderSvc
}

// NewProjectService creates a new project service.
func NewProjectService(
	projectRepo portsrepo.ProjectRepositoryFacade,
	platformRepo portsrepo.PlatformRepositoryFacade,
	userRepo portsrepo.UserReader,
	clientSvc portssvc.ClientSvcFacade,
	collaborationSvc portssvc.CollaborationReaderSvc,
) portssvc.ProjectSvcFacade {
	return &projectService{
		projectRepo:      projectRepo,
		platformRepo:     platformRepo,
		userRepo:         userRepo,
		clientSvc:        clientSvc,
		collaborationSvc: collaborationSvc,
	}
}

// Ensure projectService implements the portssvc.ProjectSvcFacade interface
var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func isStakeholder(project *domain.Project, shares []domain.ProjectShare, userID string) bool {
	if project.OwnerID == userID {
		return true
	}
	for _, share := range shares {
		if share.PartnerID == userID {
			return true
		}
	}
	return false
}

// loadForViewer fetches a project with its shares and hides it entirely from
// non-stakeholders.
func (s *projectService) loadForViewer(ctx context.Context, projectID string, viewerID string) (*domain.Project, []domain.ProjectShare, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	shares, err := s.projectRepo.FindSharesByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if !isStakeholder(project, shares, viewerID) {
		return nil, nil, apperrors.ErrNotFound
	}
	return project, shares, nil
}

// partnerNames resolves the display names the settlement breakdown carries.
// A deleted partner account degrades to an empty name rather than an error.
func (s *projectService) partnerNames(ctx context.Context, shares []domain.ProjectShare, cache map[string]string) (map[string]string, error) {
	if cache == nil {
		cache = make(map[string]string)
	}
	for _, share := range shares {
		if _, ok := cache[share.PartnerID]; ok {
			continue
		}
		user, err := s.userRepo.FindUserByID(ctx, share.PartnerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				cache[share.PartnerID] = ""
				continue
			}
			return nil, err
		}
		cache[share.PartnerID] = user.Name
	}
	return cache, nil
}

func (s *projectService) buildSummary(ctx context.Context, project *domain.Project, shares []domain.ProjectShare, viewerID string) (*dto.ProjectSummaryResponse, error) {
	names, err := s.partnerNames(ctx, shares, nil)
	if err != nil {
		return nil, err
	}
	computed, err := settlement.Compute(*project, shares, names, viewerID)
	if err != nil {
		return nil, err
	}
	return &dto.ProjectSummaryResponse{
		Project:    dto.ToProjectResponse(project),
		Shares:     dto.ToShareResponses(shares),
		Settlement: dto.ToSettlementResponse(&computed),
	}, nil
}

func validateShareTerms(commissionType domain.CommissionType, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("commission value cannot be negative: %w", apperrors.ErrValidation)
	}
	if commissionType == domain.CommissionPercentage && value.GreaterThan(oneHundred) {
		return fmt.Errorf("percentage commission cannot exceed 100: %w", apperrors.ErrValidation)
	}
	return nil
}

// resolvePlatform returns the platform ID to store and the commission percent
// snapshot for the project. An explicit percent in the request overrides the
// platform default; later platform edits never touch existing projects.
func (s *projectService) resolvePlatform(ctx context.Context, platformID *string, override *decimal.Decimal, requestingUserID string) (*string, decimal.Decimal, error) {
	percent := decimal.Zero
	if platformID != nil {
		platform, err := s.platformRepo.FindPlatformByID(ctx, *platformID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if platform.CreatedBy != requestingUserID {
			return nil, decimal.Zero, apperrors.ErrNotFound
		}
		percent = platform.DefaultCommissionPercent
	}
	if override != nil {
		percent = *override
	}
	if err := validateCommissionPercent(percent); err != nil {
		return nil, decimal.Zero, err
	}
	return platformID, percent, nil
}

// buildShare validates and constructs a partner share, enforcing the
// collaboration gate.
func (s *projectService) buildShare(ctx context.Context, projectID string, ownerID string, req dto.AttachPartnerRequest, now time.Time) (domain.ProjectShare, error) {
	if req.PartnerID == ownerID {
		return domain.ProjectShare{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSelfShare)
	}

	if _, err := s.userRepo.FindUserByID(ctx, req.PartnerID); err != nil {
		return domain.ProjectShare{}, fmt.Errorf("partner not found: %w", err)
	}

	commissionType := domain.CommissionType(req.CommissionType)
	if err := validateShareTerms(commissionType, req.CommissionValue); err != nil {
		return domain.ProjectShare{}, err
	}

	linked, err := s.collaborationSvc.AreCollaborators(ctx, ownerID, req.PartnerID)
	if err != nil {
		return domain.ProjectShare{}, err
	}
	if !linked {
		return domain.ProjectShare{}, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrCollaborationRequired)
	}

	permissions := domain.PermissionRead
	if req.Permissions != "" {
		permissions = domain.SharePermission(req.Permissions)
	}

	return domain.ProjectShare{
		ShareID:         uuid.NewString(),
		ProjectID:       projectID,
		PartnerID:       req.PartnerID,
		CommissionType:  commissionType,
		CommissionValue: req.CommissionValue,
		Permissions:     permissions,
		PaymentStatus:   domain.Unpaid,
		AmountPaid:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}, nil
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Budget.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeBudget)
	}

	// Resolve the client: reference an existing one or create inline.
	var clientID string
	switch {
	case req.ClientID != nil && req.NewClient == nil:
		client, err := s.clientSvc.GetClientByID(ctx, *req.ClientID, creatorUserID)
		if err != nil {
			return nil, err
		}
		clientID = client.ClientID
	case req.ClientID == nil && req.NewClient != nil:
		client, err := s.clientSvc.CreateClient(ctx, *req.NewClient, creatorUserID)
		if err != nil {
			return nil, err
		}
		clientID = client.ClientID
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrClientSelection)
	}

	platformID, commissionPercent, err := s.resolvePlatform(ctx, req.PlatformID, req.PlatformCommissionPercent, creatorUserID)
	if err != nil {
		return nil, err
	}

	status := domain.StatusDraft
	if req.Status != nil {
		status = domain.ProjectStatus(*req.Status)
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:                 uuid.NewString(),
		OwnerID:                   creatorUserID,
		ClientID:                  clientID,
		Name:                      req.Name,
		Description:               req.Description,
		Budget:                    req.Budget,
		PlatformID:                platformID,
		PlatformCommissionPercent: commissionPercent,
		OwnerCommissionValue:      decimal.Zero,
		Deadline:                  req.Deadline,
		Status:                    status,
		PaymentDetails:            domain.NewPaymentDetails(),
		Version:                   1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.OwnerCommissionType != nil {
		t := domain.CommissionType(*req.OwnerCommissionType)
		project.OwnerCommissionType = &t
		if req.OwnerCommissionValue != nil {
			if err := validateShareTerms(t, *req.OwnerCommissionValue); err != nil {
				return nil, err
			}
			project.OwnerCommissionValue = *req.OwnerCommissionValue
		}
	}

	var shares []domain.ProjectShare
	if req.Partner != nil {
		share, err := s.buildShare(ctx, project.ProjectID, creatorUserID, *req.Partner, now)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
		project.PaymentDetails = project.PaymentDetails.WithPartnerReceipt(share.PartnerID, decimal.Zero, decimal.Zero)
	}

	if err := s.projectRepo.SaveProject(ctx, project, shares); err != nil {
		return nil, err
	}

	logger.Info("Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string, requestingUserID string) (*domain.Project, error) {
	project, _, err := s.loadForViewer(ctx, projectID, requestingUserID)
	return project, err
}

func (s *projectService) GetProjectSummary(ctx context.Context, projectID string, requestingUserID string) (*dto.ProjectSummaryResponse, error) {
	project, shares, err := s.loadForViewer(ctx, projectID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, project, shares, requestingUserID)
}

func (s *projectService) ListProjects(ctx context.Context, requestingUserID string, params dto.ListProjectsParams) (*dto.ListProjectsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	filter := portsrepo.ProjectListFilter{
		ClientID:   params.ClientID,
		PlatformID: params.PlatformID,
		Search:     params.Search,
		SortBy:     params.SortBy,
		SortOrder:  params.SortOrder,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	if params.Status != nil {
		status := domain.ProjectStatus(*params.Status)
		filter.Status = &status
	}

	projects, total, err := s.projectRepo.ListProjectsForUser(ctx, requestingUserID, filter)
	if err != nil {
		return nil, err
	}

	projectIDs := make([]string, len(projects))
	for i, project := range projects {
		projectIDs[i] = project.ProjectID
	}
	sharesByProject, err := s.projectRepo.FindSharesByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	summaries := make([]dto.ProjectSummaryResponse, 0, len(projects))
	for i := range projects {
		project := projects[i]
		shares := sharesByProject[project.ProjectID]
		names, err = s.partnerNames(ctx, shares, names)
		if err != nil {
			return nil, err
		}
		computed, err := settlement.Compute(project, shares, names, requestingUserID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, dto.ProjectSummaryResponse{
			Project:    dto.ToProjectResponse(&project),
			Shares:     dto.ToShareResponses(shares),
			Settlement: dto.ToSettlementResponse(&computed),
		})
	}

	return &dto.ListProjectsResponse{
		Projects: summaries,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// UpdateProject applies a full renegotiation: field changes plus share
// replacement. A request without a partner block removes every share, which
// mirrors how the product has always treated updates as a complete restatement
// of the deal.
func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	project, existingShares, err := s.loadForViewer(ctx, projectID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Budget != nil {
		if req.Budget.IsNegative() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeBudget)
		}
		project.Budget = *req.Budget
	}
	if req.ClientID != nil {
		client, err := s.clientSvc.GetClientByID(ctx, *req.ClientID, requestingUserID)
		if err != nil {
			return nil, err
		}
		project.ClientID = client.ClientID
	}
	if req.PlatformID != nil || req.PlatformCommissionPercent != nil {
		platformID := project.PlatformID
		if req.PlatformID != nil {
			platformID = req.PlatformID
		}
		resolvedID, percent, err := s.resolvePlatform(ctx, platformID, req.PlatformCommissionPercent, requestingUserID)
		if err != nil {
			return nil, err
		}
		project.PlatformID = resolvedID
		project.PlatformCommissionPercent = percent
	}
	if req.OwnerCommissionType != nil {
		t := domain.CommissionType(*req.OwnerCommissionType)
		project.OwnerCommissionType = &t
	}
	if req.OwnerCommissionValue != nil {
		project.OwnerCommissionValue = *req.OwnerCommissionValue
	}
	if req.Deadline != nil {
		project.Deadline = req.Deadline
	}
	if req.Status != nil {
		project.Status = domain.ProjectStatus(*req.Status)
	}

	// Restate the shares.
	var newShares []domain.ProjectShare
	if req.Partner != nil {
		var kept *domain.ProjectShare
		for i := range existingShares {
			if existingShares[i].PartnerID == req.Partner.PartnerID {
				kept = &existingShares[i]
				break
			}
		}
		if kept != nil {
			// Renegotiated terms for an existing partner keep their receipts.
			commissionType := domain.CommissionType(req.Partner.CommissionType)
			if err := validateShareTerms(commissionType, req.Partner.CommissionValue); err != nil {
				return nil, err
			}
			share := *kept
			share.CommissionType = commissionType
			share.CommissionValue = req.Partner.CommissionValue
			if req.Partner.Permissions != "" {
				share.Permissions = domain.SharePermission(req.Partner.Permissions)
			}
			share.LastUpdatedAt = now
			share.LastUpdatedBy = requestingUserID
			newShares = append(newShares, share)
		} else {
			share, err := s.buildShare(ctx, projectID, requestingUserID, *req.Partner, now)
			if err != nil {
				return nil, err
			}
			newShares = append(newShares, share)
		}
	}

	// Rebuild the ledger: drop mirrors for removed partners, re-derive every
	// status against the renegotiated expected amounts.
	details := project.PaymentDetails
	for partnerID := range details.Partners {
		keep := false
		for _, share := range newShares {
			if share.PartnerID == partnerID {
				keep = true
				break
			}
		}
		if !keep {
			details = details.WithoutPartner(partnerID)
		}
	}
	details = details.WithClientPayment(details.Client.AmountPaid, project.Budget)

	names, err := s.partnerNames(ctx, newShares, nil)
	if err != nil {
		return nil, err
	}
	projectForCalc := *project
	computed, err := settlement.Compute(projectForCalc, newShares, names, project.OwnerID)
	if err != nil {
		return nil, err
	}
	details = details.WithOwnerReceipt(details.Owner.AmountReceived, computed.OwnerExpectedProfit)
	for i := range newShares {
		expected := decimal.Zero
		for _, pc := range computed.PartnersCommissions {
			if pc.PartnerID == newShares[i].PartnerID {
				expected = pc.ExpectedAmount
				break
			}
		}
		received := newShares[i].AmountPaid
		newShares[i].PaymentStatus = domain.StatusForAmount(received, expected)
		details = details.WithPartnerReceipt(newShares[i].PartnerID, received, expected)
	}

	project.PaymentDetails = details
	project.LastUpdatedAt = now
	project.LastUpdatedBy = requestingUserID

	if err := s.projectRepo.UpdateProject(ctx, *project, newShares, true); err != nil {
		return nil, err
	}

	project.Version++
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string, requestingUserID string) error {
	project, _, err := s.loadForViewer(ctx, projectID, requestingUserID)
	if err != nil {
		return err
	}
	if project.OwnerID != requestingUserID {
		return apperrors.ErrForbidden
	}
	return s.projectRepo.DeleteProject(ctx, projectID)
}

// receiptTotal resolves the stakeholder's new cumulative amount. Each
// registration adds the amount to what was already received; isFullPayment
// jumps straight to the full expectation.
func receiptTotal(req dto.RegisterReceiptRequest, current, expected decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case req.IsFullPayment:
		return expected, nil
	case req.Amount != nil:
		if req.Amount.IsNegative() {
			return decimal.Decimal{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeReceipt)
		}
		return current.Add(*req.Amount), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("amount or isFullPayment is required: %w", apperrors.ErrValidation)
	}
}

// RegisterUserReceipt records a further withdrawal by the requesting
// stakeholder. The amount is added to what they have already taken out of the
// project; registering the same amount twice accumulates it twice.
func (s *projectService) RegisterUserReceipt(ctx context.Context, projectID string, req dto.RegisterReceiptRequest, requestingUserID string) (*dto.ProjectSummaryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, shares, err := s.loadForViewer(ctx, projectID, requestingUserID)
	if err != nil {
		return nil, err
	}

	names, err := s.partnerNames(ctx, shares, nil)
	if err != nil {
		return nil, err
	}
	computed, err := settlement.Compute(*project, shares, names, requestingUserID)
	if err != nil {
		return nil, err
	}
	expected := computed.YourTotalToReceive

	now := time.Now()
	var received decimal.Decimal
	if project.OwnerID == requestingUserID {
		received, err = receiptTotal(req, project.PaymentDetails.Owner.AmountReceived, expected)
		if err != nil {
			return nil, err
		}
		details := project.PaymentDetails.WithOwnerReceipt(received, expected)
		if err := s.projectRepo.UpdatePaymentLedger(ctx, projectID, project.Version, details, nil, requestingUserID, now); err != nil {
			return nil, err
		}
	} else {
		var shareUpdate *domain.ProjectShare
		for i := range shares {
			if shares[i].PartnerID == requestingUserID {
				share := shares[i]
				received, err = receiptTotal(req, share.AmountPaid, expected)
				if err != nil {
					return nil, err
				}
				share.AmountPaid = received
				share.PaymentStatus = domain.StatusForAmount(received, expected)
				share.LastUpdatedAt = now
				share.LastUpdatedBy = requestingUserID
				shareUpdate = &share
				break
			}
		}
		if shareUpdate == nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotShared)
		}
		details := project.PaymentDetails.WithPartnerReceipt(requestingUserID, received, expected)
		if err := s.projectRepo.UpdatePaymentLedger(ctx, projectID, project.Version, details, shareUpdate, requestingUserID, now); err != nil {
			return nil, err
		}
	}

	logger.Info("Receipt registered",
		slog.String("project_id", projectID),
		slog.String("amount", received.String()),
	)

	return s.GetProjectSummary(ctx, projectID, requestingUserID)
}

func (s *projectService) AttachPartner(ctx context.Context, projectID string, req dto.AttachPartnerRequest, requestingUserID string) (*domain.ProjectShare, error) {
	project, shares, err := s.loadForViewer(ctx, projectID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	for _, share := range shares {
		if share.PartnerID == req.PartnerID {
			return nil, fmt.Errorf("partner already attached: %w", apperrors.ErrDuplicate)
		}
	}

	share, err := s.buildShare(ctx, projectID, requestingUserID, req, time.Now())
	if err != nil {
		return nil, err
	}

	details := project.PaymentDetails.WithPartnerReceipt(share.PartnerID, decimal.Zero, decimal.Zero)
	if err := s.projectRepo.AttachShare(ctx, share, details, project.Version); err != nil {
		return nil, err
	}
	return &share, nil
}

func (s *projectService) UpdatePartnerShare(ctx context.Context, projectID string, partnerID string, req dto.UpdateShareRequest, requestingUserID string) (*domain.ProjectShare, error) {
	project, shares, err := s.loadForViewer(ctx, projectID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}

	var share *domain.ProjectShare
	for i := range shares {
		if shares[i].PartnerID == partnerID {
			share = &shares[i]
			break
		}
	}
	if share == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, ErrNotShared)
	}

	if req.CommissionType != nil {
		share.CommissionType = domain.CommissionType(*req.CommissionType)
	}
	if req.CommissionValue != nil {
		share.CommissionValue = *req.CommissionValue
	}
	if err := validateShareTerms(share.CommissionType, share.CommissionValue); err != nil {
		return nil, err
	}
	if req.Permissions != nil {
		share.Permissions = domain.SharePermission(*req.Permissions)
	}

	// Re-derive the paid status against the renegotiated expectation.
	net := project.Budget.Sub(settlement.PlatformFee(project.Budget, project.PlatformCommissionPercent))
	expected, err := settlement.ResolveCommission(net, share.CommissionType, share.CommissionValue)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	share.PaymentStatus = domain.StatusForAmount(share.AmountPaid, expected)
	share.LastUpdatedAt = now
	share.LastUpdatedBy = requestingUserID

	// The share row and its ledger mirror go through the same transaction so a
	// failed version check never leaves the renegotiated terms half-applied.
	details := project.PaymentDetails.WithPartnerReceipt(partnerID, share.AmountPaid, expected)
	if err := s.projectRepo.UpdatePaymentLedger(ctx, projectID, project.Version, details, share, requestingUserID, now); err != nil {
		return nil, err
	}

	return share, nil
}

// DetachPartner removes the share and the partner's ledger entry. Receipt
// history for that partner is discarded with it; re-attaching starts from zero.
func (s *projectService) DetachPartner(ctx context.Context, projectID string, partnerID string, requestingUserID string) error {
	project, shares, err := s.loadForViewer(ctx, projectID, requestingUserID)
	if err != nil {
		return err
	}
	if project.OwnerID != requestingUserID {
		return apperrors.ErrForbidden
	}

	found := false
	for _, share := range shares {
		if share.PartnerID == partnerID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, ErrNotShared)
	}

	details := project.PaymentDetails.WithoutPartner(partnerID)
	return s.projectRepo.RemoveShare(ctx, projectID, partnerID, details, project.Version, requestingUserID, time.Now())
}
