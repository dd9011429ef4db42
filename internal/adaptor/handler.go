package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Booking   *BookingHandler
	Room      *RoomHandler
	Review    *ReviewHandler
	Payment   *PaymentHandler
	Dashboard *DashboardHandler
	User      *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:   NewBookingHandler(service.Booking, log),
		Room:      NewRoomHandler(service.Room, log),
		Review:    NewReviewHandler(service.Review, log),
		Payment:   NewPaymentHandler(service.Payment, log),
		Dashboard: NewDashboardHandler(service.Dashboard, log),
		User:      NewUserHandler(service.User, log),
	}
}

// handleServiceError renders err by kind. Domain rejections are expected
// traffic and log at warn; anything internal logs at error with its cause.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	} else {
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.Stringer("kind", kind),
			zap.Any("fields", apperror.FieldsOf(err)),
		)
	}
	utils.ResponseError(w, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// currentUser reads the ID set by AuthSession and answers 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return userID, ok
}
