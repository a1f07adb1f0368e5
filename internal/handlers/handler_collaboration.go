package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// collaborationHandler handles HTTP requests related to partner collaborations.
type collaborationHandler struct {
	collaborationService portssvc.CollaborationSvcFacade
}

func newCollaborationHandler(cs portssvc.CollaborationSvcFacade) *collaborationHandler {
	return &collaborationHandler{collaborationService: cs}
}

// registerCollaborationRoutes registers all collaboration-related routes.
func registerCollaborationRoutes(rg *gin.RouterGroup, collaborationService portssvc.CollaborationSvcFacade) {
	h := newCollaborationHandler(collaborationService)

	collaborations := rg.Group("/collaborations")
	{
		collaborations.POST("", h.requestCollaboration)
		collaborations.GET("", h.listCollaborations)
		collaborations.POST("/:id/respond", h.respondToCollaboration)
		collaborations.DELETE("/:id", h.revokeCollaboration)
	}
}

// requestCollaboration godoc
// @Summary Invite a partner
// @Description Sends a collaboration request to another user by email.
// @Tags collaborations
// @Accept json
// @Produce json
// @Param request body dto.RequestCollaborationRequest true "Partner email"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No user with that email"
// @Failure 409 {object} ErrorResponse "Collaboration already exists"
// @Security BearerAuth
// @Router /collaborations [post]
func (h *collaborationHandler) requestCollaboration(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.RequestCollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	collaboration, err := h.collaborationService.RequestCollaboration(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to request collaboration")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"collaborationID": collaboration.CollaborationID,
		"status":          string(collaboration.Status),
	})
}

// listCollaborations godoc
// @Summary List collaborations
// @Description Lists all collaborations the authenticated user is part of.
// @Tags collaborations
// @Produce json
// @Success 200 {object} dto.ListCollaborationsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /collaborations [get]
func (h *collaborationHandler) listCollaborations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	collaborations, err := h.collaborationService.ListCollaborations(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list collaborations")
		return
	}
	c.JSON(http.StatusOK, dto.ListCollaborationsResponse{Collaborations: collaborations})
}

// respondToCollaboration godoc
// @Summary Respond to an invitation
// @Description Accepts or declines a pending collaboration request. Only the invited user may respond.
// @Tags collaborations
// @Accept json
// @Produce json
// @Param id path string true "Collaboration ID"
// @Param response body dto.RespondCollaborationRequest true "Accept or decline"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the invited user"
// @Failure 409 {object} ErrorResponse "Request no longer pending"
// @Security BearerAuth
// @Router /collaborations/{id}/respond [post]
func (h *collaborationHandler) respondToCollaboration(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.RespondCollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	collaboration, err := h.collaborationService.RespondToCollaboration(c.Request.Context(), c.Param("id"), *req.Accept, userID)
	if err != nil {
		respondWithError(c, err, "Failed to respond to collaboration")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"collaborationID": collaboration.CollaborationID,
		"status":          string(collaboration.Status),
	})
}

// revokeCollaboration godoc
// @Summary Revoke a collaboration
// @Description Ends a collaboration. Either side may revoke; existing project shares stay in place.
// @Tags collaborations
// @Param id path string true "Collaboration ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /collaborations/{id} [delete]
func (h *collaborationHandler) revokeCollaboration(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.collaborationService.RevokeCollaboration(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "Failed to revoke collaboration")
		return
	}
	c.Status(http.StatusNoContent)
}
