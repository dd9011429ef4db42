package usecase

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stay(status entity.BookingStatus, checkIn, checkOut string) *entity.Booking {
	return &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		CheckInDate:  date(checkIn),
		CheckOutDate: date(checkOut),
		Status:       status,
	}
}

func TestEvaluateReview(t *testing.T) {
	today := date("2024-06-20")

	tests := []struct {
		name     string
		booking  *entity.Booking
		reviewed bool
		want     ReviewVerdict
	}{
		{"ended yesterday", stay(entity.BookingStatusCheckedOut, "2024-06-17", "2024-06-19"), false, ReviewEligible},
		{"ended exactly one month ago", stay(entity.BookingStatusCheckedOut, "2024-05-18", "2024-05-20"), false, ReviewEligible},
		{"confirmed but dates passed", stay(entity.BookingStatusConfirmed, "2024-06-10", "2024-06-12"), false, ReviewEligible},
		{"cancelled with qualifying dates", stay(entity.BookingStatusCancelled, "2024-06-10", "2024-06-12"), false, ReviewBlockedCancelled},
		{"checks out today", stay(entity.BookingStatusCheckedIn, "2024-06-18", "2024-06-20"), false, ReviewBlockedStayNotOver},
		{"future stay", stay(entity.BookingStatusConfirmed, "2024-07-01", "2024-07-03"), false, ReviewBlockedStayNotOver},
		{"one day past the window", stay(entity.BookingStatusCheckedOut, "2024-05-17", "2024-05-19"), false, ReviewBlockedWindowClosed},
		{"already reviewed", stay(entity.BookingStatusCheckedOut, "2024-06-10", "2024-06-12"), true, ReviewBlockedAlreadyReviewed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateReview(tt.booking, today, 1, tt.reviewed))
		})
	}
}

func TestEvaluateReview_ClampedMonthBoundary(t *testing.T) {
	// 2024-03-31 minus one month is 2024-02-29.
	today := date("2024-03-31")

	assert.Equal(t, ReviewEligible, EvaluateReview(stay(entity.BookingStatusCheckedOut, "2024-02-27", "2024-02-29"), today, 1, false))
	assert.Equal(t, ReviewBlockedWindowClosed, EvaluateReview(stay(entity.BookingStatusCheckedOut, "2024-02-26", "2024-02-28"), today, 1, false))
}

func TestReviewVerdict_Err(t *testing.T) {
	assert.NoError(t, ReviewEligible.Err())
	assert.ErrorIs(t, ReviewBlockedCancelled.Err(), ErrReviewCancelled)
	assert.ErrorIs(t, ReviewBlockedStayNotOver.Err(), ErrReviewTooEarly)
	assert.ErrorIs(t, ReviewBlockedWindowClosed.Err(), ErrReviewWindowExpired)
	assert.ErrorIs(t, ReviewBlockedAlreadyReviewed.Err(), ErrDuplicateReview)
}

func TestReviewEligibility_ReadsLedgerEachTime(t *testing.T) {
	store := newMemStore()
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	booking := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusCheckedOut, "200")

	eligibility := NewReviewEligibility(store.repository().Review, 0)
	today := date("2024-06-20")
	ctx := context.Background()

	ok, err := eligibility.CanReview(ctx, booking, today)
	require.NoError(t, err)
	assert.True(t, ok)

	store.addReview(booking)

	ok, err = eligibility.CanReview(ctx, booking, today)
	require.NoError(t, err)
	assert.False(t, ok)

	// Same booking, later day: the window alone decides.
	verdict := EvaluateReview(booking, today.Add(40*24*time.Hour), 1, false)
	assert.Equal(t, ReviewBlockedWindowClosed, verdict)
}
