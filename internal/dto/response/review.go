package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type ReviewResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	RoomID       string     `json:"room_id"`
	BookingID    *string    `json:"booking_id,omitempty"`
	Rating       int        `json:"rating"`
	Title        *string    `json:"title,omitempty"`
	Comment      *string    `json:"comment,omitempty"`
	IsPublic     bool       `json:"is_public"`
	AdminReply   *string    `json:"admin_reply,omitempty"`
	AdminReplyAt *time.Time `json:"admin_reply_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type RoomReviewStats struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type RoomReviewsResponse struct {
	Stats   RoomReviewStats  `json:"stats"`
	Reviews []ReviewResponse `json:"reviews"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:           review.ID.String(),
		UserID:       review.UserID.String(),
		RoomID:       review.RoomID.String(),
		Rating:       review.Rating,
		Title:        review.Title,
		Comment:      review.Comment,
		IsPublic:     review.IsPublic,
		AdminReply:   review.AdminReply,
		AdminReplyAt: review.AdminReplyAt,
		CreatedAt:    review.CreatedAt,
	}
	if review.BookingID != nil {
		id := review.BookingID.String()
		resp.BookingID = &id
	}
	return resp
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToResponse(review)
	}
	return out
}
