package repository

import "errors"

// Storage-level outcomes the usecase layer translates into domain errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrBookingOverlap = errors.New("booking overlaps an active booking for the room")
	ErrPaymentExists  = errors.New("payment already recorded for booking")
	ErrReviewExists   = errors.New("review already recorded for booking")
)
