package usecase

import (
	"context"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
)

// AvailabilityEngine answers whether a room is free for [checkIn, checkOut).
// It only reads; callers that insert afterwards must hold the room lock.
type AvailabilityEngine struct {
	bookings repository.BookingRepository
}

func NewAvailabilityEngine(bookings repository.BookingRepository) *AvailabilityEngine {
	return &AvailabilityEngine{bookings: bookings}
}

// IsAvailable scans the room's non-cancelled bookings. excluding, when set,
// skips that booking so an existing reservation can be re-validated against the rest.
func (e *AvailabilityEngine) IsAvailable(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excluding *uuid.UUID) (bool, error) {
	bookings, err := e.bookings.FindActiveByRoomID(ctx, roomID)
	if err != nil {
		return false, internalError("check room availability", err)
	}

	return FindConflict(bookings, checkIn, checkOut, excluding) == nil, nil
}

// FindConflict returns the first active booking overlapping [checkIn, checkOut), or nil.
func FindConflict(bookings []*entity.Booking, checkIn, checkOut time.Time, excluding *uuid.UUID) *entity.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if excluding != nil && b.ID == *excluding {
			continue
		}
		if b.Overlaps(checkIn, checkOut) {
			return b
		}
	}
	return nil
}
