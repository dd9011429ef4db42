package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, repo *repository.Repository, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/rooms/{id}/reviews", reviewHandler.GetRoomReviews)

	// ==================== PROTECTED ROUTES ====================
	user := authenticated(r, repo, log)
	user.Post("/api/reviews", reviewHandler.CreateReview)
	user.Get("/api/reviews/my", reviewHandler.GetMyReviews)
	user.Put("/api/reviews/{id}", reviewHandler.UpdateReview)

	// ==================== ADMIN ROUTES ====================
	admin := adminOnly(r, repo, log)
	admin.Get("/api/admin/reviews", reviewHandler.GetAllReviews)
	admin.Put("/api/admin/reviews/{id}/toggle-visibility", reviewHandler.ToggleVisibility)
	admin.Post("/api/admin/reviews/{id}/reply", reviewHandler.CreateReply)
	admin.Put("/api/admin/reviews/{id}/reply", reviewHandler.UpdateReply)
	admin.Delete("/api/admin/reviews/{id}/reply", reviewHandler.DeleteReply)
}
