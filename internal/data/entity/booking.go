package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusCheckedIn  BookingStatus = "CHECKED_IN"
	BookingStatusCheckedOut BookingStatus = "CHECKED_OUT"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// validTransitions is the forward-only state machine. CHECKED_OUT and
// CANCELLED are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusConfirmed:  {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn:  {BookingStatusCheckedOut},
	BookingStatusCheckedOut: {},
	BookingStatusCancelled:  {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCheckedOut || s == BookingStatusCancelled
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func ParseBookingStatus(value string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", value)
	}
	return status, nil
}

// Booking dates are calendar dates; CheckOutDate is exclusive.
type Booking struct {
	BaseNoDelete
	UserID          uuid.UUID       `db:"user_id"`
	RoomID          uuid.UUID       `db:"room_id"`
	CheckInDate     time.Time       `db:"check_in_date"`
	CheckOutDate    time.Time       `db:"check_out_date"`
	Guests          int             `db:"guests"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	Status          BookingStatus   `db:"status"`
	SpecialRequests *string         `db:"special_requests"`
}

func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

func (b *Booking) Nights() int {
	return NightsBetween(b.CheckInDate, b.CheckOutDate)
}

// Overlaps reports whether [checkIn, checkOut) shares a night with this booking.
// A checkout on day D and a check-in on day D do not overlap.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.CheckOutDate) && checkOut.After(b.CheckInDate)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}
