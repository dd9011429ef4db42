package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingRequest(roomID, checkIn, checkOut string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		RoomID:        roomID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Guests:        2,
		PaymentMethod: "CARD",
	}
}

func newBookingFixture(t *testing.T, today string) (*memStore, BookingService) {
	t.Helper()
	store := newMemStore()
	return store, NewBookingService(store.repository(), fixedPolicy(today), testLogger())
}

/* ==================== CREATE ==================== */

func TestCreateBooking_PricingOverlapAndTouchingBoundary(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, guest.ID.String(), bookingRequest(room.ID.String(), "2024-06-10", "2024-06-12"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(first.TotalPrice))
	assert.Equal(t, entity.BookingStatusConfirmed, first.Status)
	require.NotNil(t, first.Payment)
	assert.Equal(t, entity.PaymentStatusPaid, first.Payment.Status)
	assert.True(t, decimal.NewFromInt(200).Equal(first.Payment.Amount))

	_, err = svc.CreateBooking(ctx, guest.ID.String(), bookingRequest(room.ID.String(), "2024-06-11", "2024-06-13"))
	assert.True(t, errors.Is(err, ErrOverlapConflict))

	third, err := svc.CreateBooking(ctx, guest.ID.String(), bookingRequest(room.ID.String(), "2024-06-12", "2024-06-14"))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, third.Status)

	assert.Len(t, store.bookings, 2)
	assert.Len(t, store.payments, 2)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Standard 201", "80", 2)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"same day", "2024-06-10", "2024-06-10"},
		{"reversed", "2024-06-12", "2024-06-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), guest.ID.String(), bookingRequest(room.ID.String(), tt.checkIn, tt.checkOut))
			assert.True(t, errors.Is(err, ErrInvalidDateRange))
			assert.Equal(t, apperror.KindInvalidDateRange, apperror.KindOf(err))
		})
	}
	assert.Empty(t, store.bookings)
}

func TestCreateBooking_Rejections(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	guest := store.addUser("guest", entity.RoleUser)
	disabled := store.addRoom("Closed 301", "90", 2)
	disabled.Available = false
	small := store.addRoom("Single 302", "60", 1)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, guest.ID.String(), bookingRequest(disabled.ID.String(), "2024-06-10", "2024-06-12"))
	assert.True(t, errors.Is(err, ErrRoomUnavailable))

	_, err = svc.CreateBooking(ctx, guest.ID.String(), bookingRequest(small.ID.String(), "2024-06-10", "2024-06-12"))
	assert.True(t, errors.Is(err, ErrGuestsExceedCapacity))

	_, err = svc.CreateBooking(ctx, guest.ID.String(), bookingRequest("6f1c3a52-0000-4000-8000-000000000000", "2024-06-10", "2024-06-12"))
	assert.True(t, errors.Is(err, ErrRoomNotFound))

	bad := bookingRequest(small.ID.String(), "2024-06-10", "2024-06-12")
	bad.PaymentMethod = "CASH"
	_, err = svc.CreateBooking(ctx, guest.ID.String(), bad)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Empty(t, store.bookings)
	assert.Empty(t, store.payments)
}

func TestCreateBooking_PastCheckIn(t *testing.T) {
	t.Run("allowed by default", func(t *testing.T) {
		store, svc := newBookingFixture(t, "2026-10-17")
		guest := store.addUser("guest", entity.RoleUser)
		room := store.addRoom("Sea View 101", "100", 2)

		resp, err := svc.CreateBooking(context.Background(), guest.ID.String(), bookingRequest(room.ID.String(), "2024-06-10", "2024-06-12"))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(200).Equal(resp.TotalPrice))
	})

	t.Run("rejected when the policy asks for it", func(t *testing.T) {
		store := newMemStore()
		policy := fixedPolicy("2024-06-01")
		policy.RejectPastCheckIn = true
		svc := NewBookingService(store.repository(), policy, testLogger())
		guest := store.addUser("guest", entity.RoleUser)
		room := store.addRoom("Sea View 101", "100", 2)
		ctx := context.Background()

		_, err := svc.CreateBooking(ctx, guest.ID.String(), bookingRequest(room.ID.String(), "2024-05-20", "2024-05-22"))
		assert.True(t, errors.Is(err, ErrCheckInInPast))
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		_, err = svc.CreateBooking(ctx, guest.ID.String(), bookingRequest(room.ID.String(), "2024-06-01", "2024-06-02"))
		assert.NoError(t, err)
	})
}

func TestCreateBooking_UnknownUser(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	room := store.addRoom("Sea View 101", "100", 2)

	_, err := svc.CreateBooking(context.Background(), "6f1c3a52-0000-4000-8000-000000000001", bookingRequest(room.ID.String(), "2024-06-10", "2024-06-12"))
	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Empty(t, store.bookings)
	assert.Empty(t, store.payments)
}

func TestCreateBooking_CancelledBookingFreesDates(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Suite 401", "250", 4)
	store.addBooking(guest, room, date("2024-06-10"), date("2024-06-15"), entity.BookingStatusCancelled, "1250")

	_, err := svc.CreateBooking(context.Background(), guest.ID.String(), bookingRequest(room.ID.String(), "2024-06-11", "2024-06-13"))
	assert.NoError(t, err)
}

/* ==================== CANCEL ==================== */

func TestCancelBooking_OutsideWindowRefundsAndDropsReview(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	booking := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusConfirmed, "200")
	payment := store.addPayment(booking, entity.PaymentStatusPaid)
	store.addReview(booking)

	resp, err := svc.CancelBooking(context.Background(), booking.ID.String(), guest.ID.String())
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, entity.BookingStatusCancelled, store.bookings[booking.ID].Status)
	assert.Equal(t, entity.PaymentStatusRefunded, store.payments[payment.ID].Status)
	assert.Len(t, store.payments, 1)
	assert.Empty(t, store.reviews)
}

func TestCancelBooking_ExactlySevenDaysIsAllowed(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-03")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	booking := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusConfirmed, "200")
	store.addPayment(booking, entity.PaymentStatusPaid)

	_, err := svc.CancelBooking(context.Background(), booking.ID.String(), guest.ID.String())
	assert.NoError(t, err)
}

func TestCancelBooking_InsideWindowLeavesStateUnchanged(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-04")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	booking := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusConfirmed, "200")
	payment := store.addPayment(booking, entity.PaymentStatusPaid)

	_, err := svc.CancelBooking(context.Background(), booking.ID.String(), guest.ID.String())
	assert.True(t, errors.Is(err, ErrCancellationWindow))
	assert.Equal(t, apperror.KindCancellationWindow, apperror.KindOf(err))

	assert.Equal(t, entity.BookingStatusConfirmed, store.bookings[booking.ID].Status)
	assert.Equal(t, entity.PaymentStatusPaid, store.payments[payment.ID].Status)
}

func TestCancelBooking_Rejections(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	owner := store.addUser("owner", entity.RoleUser)
	other := store.addUser("other", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	ctx := context.Background()

	confirmed := store.addBooking(owner, room, date("2024-07-10"), date("2024-07-12"), entity.BookingStatusConfirmed, "200")
	cancelled := store.addBooking(owner, room, date("2024-07-20"), date("2024-07-22"), entity.BookingStatusCancelled, "200")
	checkedIn := store.addBooking(owner, room, date("2024-08-10"), date("2024-08-12"), entity.BookingStatusCheckedIn, "200")

	_, err := svc.CancelBooking(ctx, "3b7c8a9e-0000-4000-8000-000000000000", owner.ID.String())
	assert.True(t, errors.Is(err, ErrBookingNotFound))

	_, err = svc.CancelBooking(ctx, confirmed.ID.String(), other.ID.String())
	assert.True(t, errors.Is(err, ErrNotBookingOwner))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = svc.CancelBooking(ctx, cancelled.ID.String(), owner.ID.String())
	assert.True(t, errors.Is(err, ErrAlreadyCancelled))

	_, err = svc.CancelBooking(ctx, checkedIn.ID.String(), owner.ID.String())
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
}

func TestCancelBooking_WithoutPaymentFails(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	booking := store.addBooking(guest, room, date("2024-07-10"), date("2024-07-12"), entity.BookingStatusConfirmed, "200")

	_, err := svc.CancelBooking(context.Background(), booking.ID.String(), guest.ID.String())
	assert.True(t, errors.Is(err, ErrNothingToRefund))
}

/* ==================== ADMIN STATUS ==================== */

func TestUpdateBookingStatus_CheckOutMarksOnlyThatRoomDirty(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-12")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	neighbour := store.addRoom("Sea View 102", "100", 2)
	booking := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusCheckedIn, "200")

	resp, err := svc.UpdateBookingStatus(context.Background(), booking.ID.String(), &request.UpdateBookingStatusRequest{Status: "CHECKED_OUT"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCheckedOut, resp.Status)

	assert.Equal(t, entity.RoomStatusDirty, store.rooms[room.ID].Status)
	require.NotNil(t, store.rooms[room.ID].StatusUpdatedAt)
	assert.Equal(t, fixedPolicy("2024-06-12").Now(), *store.rooms[room.ID].StatusUpdatedAt)

	assert.Equal(t, entity.RoomStatusClean, store.rooms[neighbour.ID].Status)
	assert.Nil(t, store.rooms[neighbour.ID].StatusUpdatedAt)
}

func TestUpdateBookingStatus_StrictTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.BookingStatus
		to      string
		wantErr bool
	}{
		{"confirmed to checked in", entity.BookingStatusConfirmed, "CHECKED_IN", false},
		{"checked in to checked out", entity.BookingStatusCheckedIn, "CHECKED_OUT", false},
		{"confirmed to checked out", entity.BookingStatusConfirmed, "CHECKED_OUT", true},
		{"checked out to confirmed", entity.BookingStatusCheckedOut, "CONFIRMED", true},
		{"cancelled to confirmed", entity.BookingStatusCancelled, "CONFIRMED", true},
		{"same status", entity.BookingStatusConfirmed, "CONFIRMED", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc := newBookingFixture(t, "2024-06-10")
			guest := store.addUser("guest", entity.RoleUser)
			room := store.addRoom("Sea View 101", "100", 2)
			booking := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), tt.from, "200")

			_, err := svc.UpdateBookingStatus(context.Background(), booking.ID.String(), &request.UpdateBookingStatusRequest{Status: tt.to})
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidTransition))
				assert.Equal(t, tt.from, store.bookings[booking.ID].Status)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUpdateBookingStatus_AdminCancelIgnoresWindowAndRefunds(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-09")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	booking := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusConfirmed, "200")
	payment := store.addPayment(booking, entity.PaymentStatusPaid)

	_, err := svc.UpdateBookingStatus(context.Background(), booking.ID.String(), &request.UpdateBookingStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, store.bookings[booking.ID].Status)
	assert.Equal(t, entity.PaymentStatusRefunded, store.payments[payment.ID].Status)
}

func TestUpdateBookingStatus_LegacyRevivalRechecksAvailability(t *testing.T) {
	store := newMemStore()
	policy := fixedPolicy("2024-06-01")
	policy.StrictTransitions = false
	svc := NewBookingService(store.repository(), policy, testLogger())

	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	revived := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusCancelled, "200")
	store.addBooking(guest, room, date("2024-06-11"), date("2024-06-13"), entity.BookingStatusConfirmed, "200")

	_, err := svc.UpdateBookingStatus(context.Background(), revived.ID.String(), &request.UpdateBookingStatusRequest{Status: "CONFIRMED"})
	assert.True(t, errors.Is(err, ErrOverlapConflict))
	assert.Equal(t, entity.BookingStatusCancelled, store.bookings[revived.ID].Status)

	// same status is a no-op in legacy mode
	confirmed := store.addBooking(guest, room, date("2024-07-01"), date("2024-07-03"), entity.BookingStatusConfirmed, "200")
	_, err = svc.UpdateBookingStatus(context.Background(), confirmed.ID.String(), &request.UpdateBookingStatusRequest{Status: "CONFIRMED"})
	assert.NoError(t, err)
}

func TestUpdateBookingStatus_LegacyRevivalReinstatesPayment(t *testing.T) {
	store := newMemStore()
	policy := fixedPolicy("2024-06-01")
	policy.StrictTransitions = false
	svc := NewBookingService(store.repository(), policy, testLogger())
	ctx := context.Background()

	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	booking := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusCancelled, "200")
	payment := store.addPayment(booking, entity.PaymentStatusRefunded)

	_, err := svc.UpdateBookingStatus(ctx, booking.ID.String(), &request.UpdateBookingStatusRequest{Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, store.bookings[booking.ID].Status)
	assert.Equal(t, entity.PaymentStatusPaid, store.payments[payment.ID].Status)

	// the revived booking can be cancelled again
	_, err = svc.UpdateBookingStatus(ctx, booking.ID.String(), &request.UpdateBookingStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, store.bookings[booking.ID].Status)
	assert.Equal(t, entity.PaymentStatusRefunded, store.payments[payment.ID].Status)
}

/* ==================== QUERIES ==================== */

func TestDeleteBooking_OnlyCancelledAndPaymentSurvives(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	active := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusConfirmed, "200")
	cancelled := store.addBooking(guest, room, date("2024-07-10"), date("2024-07-12"), entity.BookingStatusCancelled, "200")
	store.addPayment(cancelled, entity.PaymentStatusRefunded)
	ctx := context.Background()

	err := svc.DeleteBooking(ctx, active.ID.String())
	assert.True(t, errors.Is(err, ErrBookingNotPurgeable))

	require.NoError(t, svc.DeleteBooking(ctx, cancelled.ID.String()))
	assert.NotContains(t, store.bookings, cancelled.ID)
	assert.Len(t, store.payments, 1)
}

func TestGetBooking_OwnerOnly(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-01")
	owner := store.addUser("owner", entity.RoleUser)
	other := store.addUser("other", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)
	booking := store.addBooking(owner, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusConfirmed, "200")
	store.addPayment(booking, entity.PaymentStatusPaid)
	ctx := context.Background()

	resp, err := svc.GetBooking(ctx, booking.ID.String(), owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Sea View 101", resp.RoomName)
	assert.NotNil(t, resp.Payment)

	_, err = svc.GetBooking(ctx, booking.ID.String(), other.ID.String())
	assert.True(t, errors.Is(err, ErrNotBookingOwner))
}

func TestGetReviewableBookings(t *testing.T) {
	store, svc := newBookingFixture(t, "2024-06-20")
	guest := store.addUser("guest", entity.RoleUser)
	room := store.addRoom("Sea View 101", "100", 2)

	eligible := store.addBooking(guest, room, date("2024-06-10"), date("2024-06-12"), entity.BookingStatusCheckedOut, "200")
	store.addBooking(guest, room, date("2024-06-01"), date("2024-06-03"), entity.BookingStatusCancelled, "200")
	store.addBooking(guest, room, date("2024-06-19"), date("2024-06-22"), entity.BookingStatusCheckedIn, "300")
	store.addBooking(guest, room, date("2024-04-01"), date("2024-04-03"), entity.BookingStatusCheckedOut, "200")
	reviewed := store.addBooking(guest, room, date("2024-06-13"), date("2024-06-15"), entity.BookingStatusCheckedOut, "200")
	store.addReview(reviewed)

	got, err := svc.GetReviewableBookings(context.Background(), guest.ID.String())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, eligible.ID.String(), got[0].ID)
}
