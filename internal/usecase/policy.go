package usecase

import (
	"fmt"
	"time"

	"hotel-booking/pkg/utils"
)

// Policy carries the reservation rules and the clock every lifecycle
// decision is evaluated against.
type Policy struct {
	Location               *time.Location
	CancellationCutoffDays int
	ReviewWindowMonths     int
	StrictTransitions      bool
	// RejectPastCheckIn refuses new bookings whose check-in is before today.
	RejectPastCheckIn bool
	Now               func() time.Time
}

func NewPolicy(cfg utils.HotelConfig) (Policy, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Policy{}, fmt.Errorf("load hotel timezone %q: %w", cfg.Timezone, err)
	}

	return Policy{
		Location:               loc,
		CancellationCutoffDays: cfg.CancellationCutoffDays,
		ReviewWindowMonths:     cfg.ReviewWindowMonths,
		StrictTransitions:      cfg.StrictTransitions,
		RejectPastCheckIn:      cfg.RejectPastCheckIn,
		Now:                    time.Now,
	}, nil
}

func (p Policy) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Today is the current calendar date at the hotel.
func (p Policy) Today() time.Time {
	return utils.DateOf(p.now(), p.location())
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}
