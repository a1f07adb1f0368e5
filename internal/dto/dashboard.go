package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyProfitPoint is one month of the dashboard profit series.
type MonthlyProfitPoint struct {
	Month  string          `json:"month"` // YYYY-MM
	Profit decimal.Decimal `json:"profit"`
}

// UpcomingDeadline is a project approaching its deadline.
type UpcomingDeadline struct {
	ProjectID string    `json:"projectID"`
	Name      string    `json:"name"`
	Deadline  time.Time `json:"deadline"`
	Status    string    `json:"status"`
}

// CompletedProject is a recently finished project with what it earned the viewer.
type CompletedProject struct {
	ProjectID      string          `json:"projectID"`
	Name           string          `json:"name"`
	CompletedAt    time.Time       `json:"completedAt"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
}

// DashboardResponse aggregates the user's financial position across all
// projects they own or are shared on. Every figure is viewer-relative.
type DashboardResponse struct {
	MonthProfit        decimal.Decimal      `json:"monthProfit"`
	TotalToReceive     decimal.Decimal      `json:"totalToReceive"`
	ActiveProjects     int                  `json:"activeProjects"`
	UpcomingDeadlines  []UpcomingDeadline   `json:"upcomingDeadlines"`
	RecentlyCompleted  []CompletedProject   `json:"recentlyCompleted"`
	MonthlyProfitChart []MonthlyProfitPoint `json:"monthlyProfitChart"`
}
