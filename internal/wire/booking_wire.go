package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, repo *repository.Repository, log *zap.Logger) {
	// ==================== PROTECTED ROUTES ====================
	user := authenticated(r, repo, log)
	user.Post("/api/bookings", bookingHandler.CreateBooking)
	user.Get("/api/bookings/my", bookingHandler.GetMyBookings)
	user.Get("/api/bookings/reviewable", bookingHandler.GetReviewableBookings)
	user.Get("/api/bookings/{id}", bookingHandler.GetBooking)
	user.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

	// ==================== ADMIN ROUTES ====================
	admin := adminOnly(r, repo, log)
	admin.Get("/api/admin/bookings", bookingHandler.GetAllBookings)
	admin.Get("/api/admin/bookings/{id}", bookingHandler.GetBookingByID)
	admin.Delete("/api/admin/bookings/{id}", bookingHandler.DeleteBooking)
	admin.Put("/api/admin/bookings/{id}/status", bookingHandler.UpdateBookingStatus)
}
