package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// expenseHandler handles HTTP requests for business expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers all expense-related routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Description Records a business cost for the authenticated user, optionally tied to one of their projects.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse "Amount must be positive"
// @Failure 404 {object} ErrorResponse "Linked project not found"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists the authenticated user's expenses, newest first, optionally filtered by project.
// @Tags expenses
// @Produce json
// @Param projectID query string false "Filter by project"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.expenseService.ListExpenses(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Removes one of the authenticated user's expenses.
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}
