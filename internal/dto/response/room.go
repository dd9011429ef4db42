package response

import (
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type RoomResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Type            string            `json:"type"`
	Capacity        int               `json:"capacity"`
	PricePerNight   decimal.Decimal   `json:"price_per_night"`
	Available       bool              `json:"available"`
	Status          entity.RoomStatus `json:"status"`
	StatusUpdatedAt *time.Time        `json:"status_updated_at,omitempty"`
	ImageURL        *string           `json:"image_url,omitempty"`
	ViewType        *string           `json:"view_type,omitempty"`
	BedCount        *int              `json:"bed_count,omitempty"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:              room.ID.String(),
		Name:            room.Name,
		Description:     room.Description,
		Type:            room.Type,
		Capacity:        room.Capacity,
		PricePerNight:   room.PricePerNight,
		Available:       room.Available,
		Status:          room.Status,
		StatusUpdatedAt: room.StatusUpdatedAt,
		ImageURL:        room.ImageURL,
		ViewType:        room.ViewType,
		BedCount:        room.BedCount,
	}
}

func RoomsToResponse(rooms []*entity.Room) []RoomResponse {
	out := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		out[i] = RoomToResponse(room)
	}
	return out
}
