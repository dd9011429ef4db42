package usecase

import (
	"context"
	"errors"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	GetRoomReviews(ctx context.Context, roomID string) (*response.RoomReviewsResponse, error)
	GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error)

	// Admin
	GetAllReviews(ctx context.Context) ([]response.ReviewResponse, error)
	ToggleVisibility(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	CreateReply(ctx context.Context, reviewID string, req *request.ReviewReplyRequest) (*response.ReviewResponse, error)
	UpdateReply(ctx context.Context, reviewID string, req *request.ReviewReplyRequest) (*response.ReviewResponse, error)
	DeleteReply(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo   *repository.Repository
	policy Policy
	log    *zap.Logger
}

func NewReviewService(repo *repository.Repository, policy Policy, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:   repo,
		policy: policy,
		log:    log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, invalidID("booking ID", req.BookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, internalError("get booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != actor {
		return nil, ErrNotBookingOwner
	}

	verdict, err := NewReviewEligibility(s.repo.Review, s.policy.ReviewWindowMonths).Evaluate(ctx, booking, s.policy.Today())
	if err != nil {
		return nil, err
	}
	if verdict != ReviewEligible {
		s.log.Info("Review rejected",
			zap.String("booking_id", booking.ID.String()),
			zap.Int("verdict", int(verdict)),
		)
		return nil, verdict.Err()
	}

	now := s.policy.now()
	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    actor,
		RoomID:    booking.RoomID,
		BookingID: &booking.ID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		IsPublic:  true,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			return nil, ErrDuplicateReview
		}
		return nil, internalError("create review", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}

	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actor {
		return nil, ErrNotReviewOwner
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = req.Title
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}

	return s.save(ctx, review, "Review updated")
}

// GetRoomReviews lists visible reviews only; hidden ones stay out of the stats too.
func (s *reviewService) GetRoomReviews(ctx context.Context, roomID string) (*response.RoomReviewsResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, invalidID("room ID", roomID)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, internalError("get room", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	reviews, err := s.repo.Review.FindByRoomID(ctx, id, true)
	if err != nil {
		return nil, internalError("get room reviews", err)
	}

	return &response.RoomReviewsResponse{
		Stats:   reviewStats(reviews),
		Reviews: response.ReviewsToResponse(reviews),
	}, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}

	reviews, err := s.repo.Review.FindByUserID(ctx, id)
	if err != nil {
		return nil, internalError("get user reviews", err)
	}
	return response.ReviewsToResponse(reviews), nil
}

// ==================== ADMIN METHODS ====================

func (s *reviewService) GetAllReviews(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		return nil, internalError("get all reviews", err)
	}
	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ToggleVisibility(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review.IsPublic = !review.IsPublic
	return s.save(ctx, review, "Review visibility toggled")
}

func (s *reviewService) CreateReply(ctx context.Context, reviewID string, req *request.ReviewReplyRequest) (*response.ReviewResponse, error) {
	return s.setReply(ctx, reviewID, req, "Review reply created")
}

func (s *reviewService) UpdateReply(ctx context.Context, reviewID string, req *request.ReviewReplyRequest) (*response.ReviewResponse, error) {
	return s.setReply(ctx, reviewID, req, "Review reply updated")
}

func (s *reviewService) setReply(ctx context.Context, reviewID string, req *request.ReviewReplyRequest, msg string) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	repliedAt := s.policy.now()
	review.AdminReply = &req.Reply
	review.AdminReplyAt = &repliedAt

	return s.save(ctx, review, msg)
}

func (s *reviewService) DeleteReply(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.AdminReply == nil {
		return nil, ErrNoReply
	}

	review.AdminReply = nil
	review.AdminReplyAt = nil
	return s.save(ctx, review, "Review reply deleted")
}

func (s *reviewService) save(ctx context.Context, review *entity.Review, msg string) (*response.ReviewResponse, error) {
	review.UpdatedAt = s.policy.now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, internalError("update review", err)
	}

	s.log.Info(msg, zap.String("review_id", review.ID.String()))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) findReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, invalidID("review ID", reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, internalError("get review", err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// reviewStats averages ratings to one decimal place.
func reviewStats(reviews []*entity.Review) response.RoomReviewStats {
	if len(reviews) == 0 {
		return response.RoomReviewStats{}
	}

	sum := int64(0)
	for _, r := range reviews {
		sum += int64(r.Rating)
	}
	avg := decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(int64(len(reviews))), 1)

	return response.RoomReviewStats{
		AverageRating: avg.InexactFloat64(),
		ReviewCount:   int64(len(reviews)),
	}
}
