package services

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/dto"
)

// DashboardSvcFacade defines the aggregated reporting operations.
// All money figures are viewer-relative and derived through the settlement
// calculator, never recomputed inline.
type DashboardSvcFacade interface {
	// GetDashboard builds the user's dashboard: monthly profit, totals still to
	// receive, active project count, upcoming deadlines, recently completed
	// projects and the six-month profit series.
	GetDashboard(ctx context.Context, requestingUserID string) (*dto.DashboardResponse, error)
}
