package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomStatusClean       RoomStatus = "CLEAN"
	RoomStatusDirty       RoomStatus = "DIRTY"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

func ParseRoomStatus(value string) (RoomStatus, error) {
	status := RoomStatus(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case RoomStatusClean, RoomStatusDirty, RoomStatusMaintenance:
		return status, nil
	}
	return "", fmt.Errorf("invalid room status: %s", value)
}

// Room.Available is the administrative switch; Status is the physical condition.
// The two are independent of each other and of bookings.
type Room struct {
	BaseNoDelete
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	Type            string          `db:"type"`
	Capacity        int             `db:"capacity"`
	PricePerNight   decimal.Decimal `db:"price_per_night"`
	Available       bool            `db:"available"`
	Status          RoomStatus      `db:"status"`
	StatusUpdatedAt *time.Time      `db:"status_updated_at"`
	ImageURL        *string         `db:"image_url"`
	ViewType        *string         `db:"view_type"`
	BedCount        *int            `db:"bed_count"`
}

// PriceFor is the exact total for a stay; no rounding is applied.
func (r *Room) PriceFor(nights int) decimal.Decimal {
	return r.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))
}
