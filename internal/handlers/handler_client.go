package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers all client-related routes.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}
}

// createClient godoc
// @Summary Create a client
// @Description Registers a new client owned by the authenticated user.
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Lists the authenticated user's clients.
// @Tags clients
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListClientsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// getClient godoc
// @Summary Get a client
// @Description Retrieves one of the authenticated user's clients.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Update a client
// @Description Updates one of the authenticated user's clients.
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient godoc
// @Summary Delete a client
// @Description Removes a client. Fails when the client still has projects.
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Client still referenced by projects"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}
