package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review submitted", review)
}

// UpdateReview handles PUT /api/reviews/{id} (protected, owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.UpdateReview(r.Context(), chi.URLParam(r, "id"), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated", review)
}

// GetRoomReviews handles GET /api/rooms/{id}/reviews (public)
func (h *ReviewHandler) GetRoomReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetRoomReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get room reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetMyReviews handles GET /api/reviews/my (protected)
func (h *ReviewHandler) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.GetUserReviews(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get my reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// ==================== ADMIN METHODS ====================

// GetAllReviews handles GET /api/admin/reviews
func (h *ReviewHandler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetAllReviews(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get all reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// ToggleVisibility handles PUT /api/admin/reviews/{id}/toggle-visibility
func (h *ReviewHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.ToggleVisibility(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "toggle review visibility")
		return
	}

	utils.ResponseSuccess(w, "Review visibility updated", review)
}

// CreateReply handles POST /api/admin/reviews/{id}/reply
func (h *ReviewHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewReplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.CreateReply(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review reply")
		return
	}

	utils.ResponseCreated(w, "Reply posted", review)
}

// UpdateReply handles PUT /api/admin/reviews/{id}/reply
func (h *ReviewHandler) UpdateReply(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewReplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.UpdateReply(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update review reply")
		return
	}

	utils.ResponseSuccess(w, "Reply updated", review)
}

// DeleteReply handles DELETE /api/admin/reviews/{id}/reply
func (h *ReviewHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.DeleteReply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "delete review reply")
		return
	}

	utils.ResponseSuccess(w, "Reply deleted", review)
}
