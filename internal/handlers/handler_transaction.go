package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// transactionHandler handles HTTP requests for client payment transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes nests the transaction routes under a project.
func registerTransactionRoutes(projects *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := projects.Group("/:id/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a client payment
// @Description Records money received from the client. The project's client ledger is re-derived from the full payment history.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param transaction body dto.CreateTransactionRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Amount must be positive"
// @Failure 403 {object} ErrorResponse "Caller is neither the owner nor an edit-permission partner"
// @Failure 409 {object} ErrorResponse "Concurrent update detected"
// @Security BearerAuth
// @Router /projects/{id}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List client payments
// @Description Lists a project's payment history, newest first, with token-based pagination.
// @Tags transactions
// @Produce json
// @Param id path string true "Project ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListTransactionsByProject(c.Request.Context(), c.Param("id"), userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteTransaction godoc
// @Summary Delete a client payment
// @Description Removes a recorded payment; the client ledger is re-derived from the remaining history.
// @Tags transactions
// @Param id path string true "Project ID"
// @Param transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Caller is neither the owner nor an edit-permission partner"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent update detected"
// @Security BearerAuth
// @Router /projects/{id}/transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("id"), c.Param("transactionID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}
