package usecase

import (
	"context"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"
)

type ReviewVerdict int

const (
	ReviewEligible ReviewVerdict = iota
	ReviewBlockedCancelled
	ReviewBlockedStayNotOver
	ReviewBlockedWindowClosed
	ReviewBlockedAlreadyReviewed
)

func (v ReviewVerdict) Err() error {
	switch v {
	case ReviewBlockedCancelled:
		return ErrReviewCancelled
	case ReviewBlockedStayNotOver:
		return ErrReviewTooEarly
	case ReviewBlockedWindowClosed:
		return ErrReviewWindowExpired
	case ReviewBlockedAlreadyReviewed:
		return ErrDuplicateReview
	default:
		return nil
	}
}

// EvaluateReview applies the four eligibility rules to a booking on a given day.
// Nothing is cached: the verdict is derived from the inputs every time.
func EvaluateReview(booking *entity.Booking, today time.Time, windowMonths int, alreadyReviewed bool) ReviewVerdict {
	if booking.Status == entity.BookingStatusCancelled {
		return ReviewBlockedCancelled
	}
	if !booking.CheckOutDate.Before(today) {
		return ReviewBlockedStayNotOver
	}
	if booking.CheckOutDate.Before(utils.AddMonthsClamped(today, -windowMonths)) {
		return ReviewBlockedWindowClosed
	}
	if alreadyReviewed {
		return ReviewBlockedAlreadyReviewed
	}
	return ReviewEligible
}

type ReviewEligibility struct {
	reviews      repository.ReviewRepository
	windowMonths int
}

func NewReviewEligibility(reviews repository.ReviewRepository, windowMonths int) *ReviewEligibility {
	if windowMonths <= 0 {
		windowMonths = 1
	}
	return &ReviewEligibility{reviews: reviews, windowMonths: windowMonths}
}

func (e *ReviewEligibility) Evaluate(ctx context.Context, booking *entity.Booking, today time.Time) (ReviewVerdict, error) {
	reviewed, err := e.reviews.ExistsByBookingID(ctx, booking.ID)
	if err != nil {
		return ReviewEligible, internalError("check existing review", err)
	}
	return EvaluateReview(booking, today, e.windowMonths, reviewed), nil
}

func (e *ReviewEligibility) CanReview(ctx context.Context, booking *entity.Booking, today time.Time) (bool, error) {
	verdict, err := e.Evaluate(ctx, booking, today)
	if err != nil {
		return false, err
	}
	return verdict == ReviewEligible, nil
}
