package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
)

// dashboardHandler serves the aggregated financial dashboard.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Get the financial dashboard
// @Description Aggregates the caller's position across all their projects: month profit, total still to receive, active project count, upcoming deadlines, recent completions and a six-month profit chart.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
