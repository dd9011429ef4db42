package request

import "github.com/shopspring/decimal"

type RoomRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description" validate:"max=1000"`
	Type          string          `json:"type" validate:"required,max=50"`
	Capacity      int             `json:"capacity" validate:"required,min=1,max=20"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	ImageURL      *string         `json:"image_url,omitempty" validate:"omitempty,url"`
	ViewType      *string         `json:"view_type,omitempty" validate:"omitempty,max=50"`
	BedCount      *int            `json:"bed_count,omitempty" validate:"omitempty,min=1"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CLEAN DIRTY MAINTENANCE"`
}

type SearchRoomsRequest struct {
	CheckInDate  string `validate:"required,datetime=2006-01-02"`
	CheckOutDate string `validate:"required,datetime=2006-01-02"`
	Type         string `validate:"max=50"`
	ViewType     string `validate:"max=50"`
}
