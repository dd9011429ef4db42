package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, repo *repository.Repository, log *zap.Logger) {
	admin := adminOnly(r, repo, log)
	admin.Get("/api/admin/dashboard", dashboardHandler.GetDashboard)
	admin.Get("/api/admin/statistics", dashboardHandler.GetStatistics)
	admin.Get("/api/admin/rooms/status-summary", dashboardHandler.GetRoomStatusSummary)
}
