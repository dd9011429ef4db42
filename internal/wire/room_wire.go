package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler, repo *repository.Repository, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/rooms", roomHandler.GetAllRooms)
	r.Get("/api/rooms/available", roomHandler.SearchAvailableRooms)
	r.Get("/api/rooms/{id}", roomHandler.GetRoomByID)

	// ==================== ADMIN ROUTES ====================
	admin := adminOnly(r, repo, log)
	admin.Get("/api/admin/rooms", roomHandler.GetAllRooms)
	admin.Post("/api/admin/rooms", roomHandler.CreateRoom)
	admin.Get("/api/admin/rooms/{id}", roomHandler.GetRoomByID)
	admin.Put("/api/admin/rooms/{id}", roomHandler.UpdateRoom)
	admin.Put("/api/admin/rooms/{id}/enable", roomHandler.EnableRoom)
	admin.Put("/api/admin/rooms/{id}/disable", roomHandler.DisableRoom)
	admin.Put("/api/admin/rooms/{id}/status", roomHandler.UpdateRoomStatus)
}
