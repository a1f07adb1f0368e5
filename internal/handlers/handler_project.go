package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// projectHandler handles HTTP requests related to projects, settlement
// summaries, receipts and partner shares.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

// RegisterProjectRoutes registers all project-related routes. Transaction
// routes live in handler_transaction.go but share the /projects prefix.
func RegisterProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)

		projects.GET("/:id/summary", h.getProjectSummary)
		projects.POST("/:id/receipts", h.registerReceipt)

		projects.POST("/:id/partners", h.attachPartner)
		projects.PUT("/:id/partners/:partnerID", h.updatePartnerShare)
		projects.DELETE("/:id/partners/:partnerID", h.detachPartner)
	}

	registerTransactionRoutes(projects, transactionService)
}

// createProject godoc
// @Summary Create a project
// @Description Creates a project for an existing or inline-created client, optionally with an initial partner share.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse "Validation error, including the client selection rule"
// @Failure 403 {object} ErrorResponse "Partner is not an accepted collaborator"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Description Lists projects the user owns or participates in, with per-project settlement summaries.
// @Tags projects
// @Produce json
// @Param status query string false "Filter by status"
// @Param clientID query string false "Filter by client"
// @Param platformID query string false "Filter by platform"
// @Param search query string false "Name search"
// @Param sortBy query string false "Sort field" Enums(createdAt, deadline, budget, name)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListProjectsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.projectService.ListProjects(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getProject godoc
// @Summary Get a project
// @Description Retrieves a project the user owns or participates in.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProjectByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// getProjectSummary godoc
// @Summary Get a project's settlement summary
// @Description Retrieves the project with its shares and the settlement breakdown computed from the caller's viewpoint.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectSummaryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/summary [get]
func (h *projectHandler) getProjectSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.projectService.GetProjectSummary(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve project summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// updateProject godoc
// @Summary Update a project
// @Description Applies a full renegotiation: field changes plus a complete restatement of partner shares. Omitting the partner block removes every share.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Only the owner may update"
// @Failure 409 {object} ErrorResponse "Concurrent update detected"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Removes a project with its shares and payment history.
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Only the owner may delete"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

// registerReceipt godoc
// @Summary Register a receipt
// @Description Records a further withdrawal by the caller against their own entitlement. The amount is added to what was already received.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param receipt body dto.RegisterReceiptRequest true "Amount or full payment flag"
// @Success 200 {object} dto.ProjectSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent update detected"
// @Security BearerAuth
// @Router /projects/{id}/receipts [post]
func (h *projectHandler) registerReceipt(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.RegisterReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	summary, err := h.projectService.RegisterUserReceipt(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to register receipt")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// attachPartner godoc
// @Summary Attach a partner
// @Description Adds a revenue-share partner to the project. Requires an accepted collaboration with the partner.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param share body dto.AttachPartnerRequest true "Share terms"
// @Success 201 {object} dto.ShareResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "No accepted collaboration"
// @Failure 409 {object} ErrorResponse "Partner already attached or concurrent update"
// @Security BearerAuth
// @Router /projects/{id}/partners [post]
func (h *projectHandler) attachPartner(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AttachPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	share, err := h.projectService.AttachPartner(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to attach partner")
		return
	}
	c.JSON(http.StatusCreated, dto.ToShareResponse(share))
}

// updatePartnerShare godoc
// @Summary Update a partner's share
// @Description Renegotiates a partner's commission terms; their paid status is re-derived against the new expectation.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param partnerID path string true "Partner user ID"
// @Param share body dto.UpdateShareRequest true "New terms"
// @Success 200 {object} dto.ShareResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Partner has no share on this project"
// @Security BearerAuth
// @Router /projects/{id}/partners/{partnerID} [put]
func (h *projectHandler) updatePartnerShare(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	share, err := h.projectService.UpdatePartnerShare(c.Request.Context(), c.Param("id"), c.Param("partnerID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update partner share")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareResponse(share))
}

// detachPartner godoc
// @Summary Detach a partner
// @Description Removes a partner's share and their ledger entry. Their receipt history on this project is discarded.
// @Tags projects
// @Param id path string true "Project ID"
// @Param partnerID path string true "Partner user ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Only the owner may detach"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/partners/{partnerID} [delete]
func (h *projectHandler) detachPartner(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.DetachPartner(c.Request.Context(), c.Param("id"), c.Param("partnerID"), userID); err != nil {
		respondWithError(c, err, "Failed to detach partner")
		return
	}
	c.Status(http.StatusNoContent)
}
