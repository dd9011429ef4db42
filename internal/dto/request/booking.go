package request

type CreateBookingRequest struct {
	RoomID          string  `json:"room_id" validate:"required,uuid"`
	CheckInDate     string  `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate    string  `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Guests          int     `json:"guests" validate:"required,min=1,max=20"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=CARD BANK_TRANSFER"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED CHECKED_IN CHECKED_OUT CANCELLED"`
}
