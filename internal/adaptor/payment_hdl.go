package adaptor

import (
	"net/http"

	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// GetMyPayments handles GET /api/payments/my (protected)
func (h *PaymentHandler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	payments, err := h.service.GetUserPayments(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get my payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// GetPaymentByBooking handles GET /api/payments/booking/{bookingId} (protected, owner only)
func (h *PaymentHandler) GetPaymentByBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	payment, err := h.service.GetPaymentByBooking(r.Context(), chi.URLParam(r, "bookingId"), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get payment by booking")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}
