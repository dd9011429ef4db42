package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Payments are created and refunded by the booking lifecycle only.
func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, repo *repository.Repository, log *zap.Logger) {
	user := authenticated(r, repo, log)
	user.Get("/api/payments/my", paymentHandler.GetMyPayments)
	user.Get("/api/payments/booking/{bookingId}", paymentHandler.GetPaymentByBooking)
}
