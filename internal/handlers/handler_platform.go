package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// platformHandler handles HTTP requests related to commission platforms.
type platformHandler struct {
	platformService portssvc.PlatformSvcFacade
}

func newPlatformHandler(ps portssvc.PlatformSvcFacade) *platformHandler {
	return &platformHandler{platformService: ps}
}

// registerPlatformRoutes registers all platform-related routes.
func registerPlatformRoutes(rg *gin.RouterGroup, platformService portssvc.PlatformSvcFacade) {
	h := newPlatformHandler(platformService)

	platforms := rg.Group("/platforms")
	{
		platforms.POST("", h.createPlatform)
		platforms.GET("", h.listPlatforms)
		platforms.GET("/:id", h.getPlatform)
		platforms.PUT("/:id", h.updatePlatform)
		platforms.DELETE("/:id", h.deletePlatform)
	}
}

// createPlatform godoc
// @Summary Register a platform
// @Description Registers a marketplace platform with its default commission.
// @Tags platforms
// @Accept json
// @Produce json
// @Param platform body dto.CreatePlatformRequest true "Platform details"
// @Success 201 {object} dto.PlatformResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /platforms [post]
func (h *platformHandler) createPlatform(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	platform, err := h.platformService.CreatePlatform(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create platform")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlatformResponse(platform))
}

// listPlatforms godoc
// @Summary List platforms
// @Description Lists the platforms registered by the authenticated user.
// @Tags platforms
// @Produce json
// @Success 200 {object} dto.ListPlatformsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /platforms [get]
func (h *platformHandler) listPlatforms(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	platforms, err := h.platformService.ListPlatforms(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list platforms")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPlatformsResponse(platforms))
}

// getPlatform godoc
// @Summary Get a platform
// @Description Retrieves one of the authenticated user's platforms.
// @Tags platforms
// @Produce json
// @Param id path string true "Platform ID"
// @Success 200 {object} dto.PlatformResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /platforms/{id} [get]
func (h *platformHandler) getPlatform(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	platform, err := h.platformService.GetPlatformByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve platform")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlatformResponse(platform))
}

// updatePlatform godoc
// @Summary Update a platform
// @Description Updates a platform. Existing projects keep their snapshotted commission.
// @Tags platforms
// @Accept json
// @Produce json
// @Param id path string true "Platform ID"
// @Param platform body dto.UpdatePlatformRequest true "Fields to update"
// @Success 200 {object} dto.PlatformResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /platforms/{id} [put]
func (h *platformHandler) updatePlatform(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	platform, err := h.platformService.UpdatePlatform(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update platform")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlatformResponse(platform))
}

// deletePlatform godoc
// @Summary Delete a platform
// @Description Removes a platform. Projects referencing it are detached, not deleted.
// @Tags platforms
// @Param id path string true "Platform ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /platforms/{id} [delete]
func (h *platformHandler) deletePlatform(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.platformService.DeletePlatform(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "Failed to delete platform")
		return
	}
	c.Status(http.StatusNoContent)
}
