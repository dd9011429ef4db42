package usecase

import (
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/apperror"
)

var (
	ErrBookingNotFound = apperror.New(apperror.KindNotFound, "booking not found")
	ErrRoomNotFound    = apperror.New(apperror.KindNotFound, "room not found")
	ErrUserNotFound    = apperror.New(apperror.KindNotFound, "user not found")
	ErrReviewNotFound  = apperror.New(apperror.KindNotFound, "review not found")
	ErrPaymentNotFound = apperror.New(apperror.KindNotFound, "payment not found")

	ErrNotBookingOwner = apperror.New(apperror.KindForbidden, "booking belongs to another user")
	ErrNotReviewOwner  = apperror.New(apperror.KindForbidden, "review belongs to another user")

	ErrInvalidDateRange    = apperror.New(apperror.KindInvalidDateRange, "check-out date must be after check-in date")
	ErrRoomUnavailable     = apperror.New(apperror.KindRoomUnavailable, "room is not available for booking")
	ErrOverlapConflict     = apperror.New(apperror.KindOverlapConflict, "room is already booked for the selected dates")
	ErrCancellationWindow  = apperror.New(apperror.KindCancellationWindow, "bookings can no longer be cancelled this close to check-in")
	ErrAlreadyCancelled    = apperror.New(apperror.KindAlreadyCancelled, "booking is already cancelled")
	ErrNotCancellable      = apperror.New(apperror.KindInvalidTransition, "only confirmed bookings can be cancelled")
	ErrInvalidTransition   = apperror.New(apperror.KindInvalidTransition, "booking status change is not allowed")
	ErrBookingNotPurgeable = apperror.New(apperror.KindInvalidTransition, "only cancelled bookings can be deleted")
	ErrDuplicatePayment    = apperror.New(apperror.KindDuplicatePayment, "booking already has a payment")
	ErrNothingToRefund     = apperror.New(apperror.KindNotFound, "booking has no payment to refund")
	ErrAlreadyRefunded     = apperror.New(apperror.KindInvalidTransition, "payment is already refunded")

	ErrReviewCancelled     = apperror.New(apperror.KindReviewWindow, "cancelled bookings cannot be reviewed")
	ErrReviewTooEarly      = apperror.New(apperror.KindReviewWindow, "reviews open after check-out")
	ErrReviewWindowExpired = apperror.New(apperror.KindReviewWindow, "the review window for this booking has closed")
	ErrDuplicateReview     = apperror.New(apperror.KindDuplicateReview, "booking has already been reviewed")
	ErrNoReply             = apperror.New(apperror.KindNotFound, "review has no reply")

	ErrGuestsExceedCapacity = apperror.New(apperror.KindValidation, "guest count exceeds room capacity")
	ErrCheckInInPast        = apperror.New(apperror.KindValidation, "check-in date cannot be in the past")
)

func validationError(errs map[string]string) error {
	return apperror.Invalid("Validation failed", errs)
}

func invalidID(field, value string) error {
	return apperror.Invalid(fmt.Sprintf("invalid %s: %q", field, value), nil)
}

func transitionError(from, to entity.BookingStatus) error {
	return apperror.Wrap(apperror.KindInvalidTransition,
		fmt.Sprintf("cannot change booking status from %s to %s", from, to), ErrInvalidTransition)
}

func internalError(op string, err error) error {
	return apperror.Wrap(apperror.KindInternal, op, err)
}
