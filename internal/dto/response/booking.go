package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"

	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	RoomID          string               `json:"room_id"`
	RoomName        string               `json:"room_name,omitempty"`
	CheckInDate     string               `json:"check_in_date"`
	CheckOutDate    string               `json:"check_out_date"`
	Nights          int                  `json:"nights"`
	Guests          int                  `json:"guests"`
	TotalPrice      decimal.Decimal      `json:"total_price"`
	Status          entity.BookingStatus `json:"status"`
	SpecialRequests *string              `json:"special_requests,omitempty"`
	Payment         *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Amount        decimal.Decimal      `json:"amount"`
	Method        entity.PaymentMethod `json:"method"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID string               `json:"transaction_id"`
	PaidAt        time.Time            `json:"paid_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, room *entity.Room, payment *entity.Payment) BookingResponse {
	resp := BookingResponse{
		ID:              booking.ID.String(),
		UserID:          booking.UserID.String(),
		RoomID:          booking.RoomID.String(),
		CheckInDate:     utils.FormatDate(booking.CheckInDate),
		CheckOutDate:    utils.FormatDate(booking.CheckOutDate),
		Nights:          booking.Nights(),
		Guests:          booking.Guests,
		TotalPrice:      booking.TotalPrice,
		Status:          booking.Status,
		SpecialRequests: booking.SpecialRequests,
		CreatedAt:       booking.CreatedAt,
	}

	if room != nil {
		resp.RoomName = room.Name
	}
	if payment != nil {
		p := PaymentToResponse(payment)
		resp.Payment = &p
	}

	return resp
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		Amount:        payment.Amount,
		Method:        payment.Method,
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
		PaidAt:        payment.PaidAt,
	}
}
