package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/admin/dashboard?year=&month=
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.DashboardRequest{
		Year:  utils.ParseInt(query.Get("year"), 0),
		Month: utils.ParseInt(query.Get("month"), 0),
	}

	dashboard, err := h.service.GetDashboard(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// GetStatistics handles GET /api/admin/statistics?startYear=&endYear=
func (h *DashboardHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.StatisticsRequest{
		StartYear: utils.ParseInt(query.Get("startYear"), 0),
		EndYear:   utils.ParseInt(query.Get("endYear"), 0),
	}

	stats, err := h.service.GetStatistics(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get statistics")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetRoomStatusSummary handles GET /api/admin/rooms/status-summary
func (h *DashboardHandler) GetRoomStatusSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetRoomStatusSummary(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get room status summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}
