package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// GetAllRooms handles GET /api/rooms and GET /api/admin/rooms
func (h *RoomHandler) GetAllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.GetAllRooms(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoomByID handles GET /api/rooms/{id}
func (h *RoomHandler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoomByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// SearchAvailableRooms handles GET /api/rooms/available?check_in=&check_out=&type=&view_type=
func (h *RoomHandler) SearchAvailableRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchRoomsRequest{
		CheckInDate:  query.Get("check_in"),
		CheckOutDate: query.Get("check_out"),
		Type:         query.Get("type"),
		ViewType:     query.Get("view_type"),
	}

	rooms, err := h.service.SearchAvailableRooms(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "search available rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// ==================== ADMIN METHODS ====================

// CreateRoom handles POST /api/admin/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created", room)
}

// UpdateRoom handles PUT /api/admin/rooms/{id}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated", room)
}

// EnableRoom handles PUT /api/admin/rooms/{id}/enable
func (h *RoomHandler) EnableRoom(w http.ResponseWriter, r *http.Request) {
	h.setAvailability(w, r, true)
}

// DisableRoom handles PUT /api/admin/rooms/{id}/disable
func (h *RoomHandler) DisableRoom(w http.ResponseWriter, r *http.Request) {
	h.setAvailability(w, r, false)
}

func (h *RoomHandler) setAvailability(w http.ResponseWriter, r *http.Request, available bool) {
	room, err := h.service.SetRoomAvailability(r.Context(), chi.URLParam(r, "id"), available)
	if err != nil {
		handleServiceError(h.log, w, err, "set room availability")
		return
	}

	utils.ResponseSuccess(w, "Room availability updated", room)
}

// UpdateRoomStatus handles PUT /api/admin/rooms/{id}/status
func (h *RoomHandler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateRoomStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoomStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update room status")
		return
	}

	utils.ResponseSuccess(w, "Room status updated", room)
}
