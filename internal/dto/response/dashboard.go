package response

import (
	"github.com/shopspring/decimal"
)

type DashboardResponse struct {
	Date              string            `json:"date"`
	TodayCheckIns     []BookingSummary  `json:"today_check_ins"`
	TodayCheckOuts    []BookingSummary  `json:"today_check_outs"`
	CurrentStays      []BookingSummary  `json:"current_stays"`
	MonthlyStats      MonthlyStats      `json:"monthly_stats"`
	RoomStatusSummary RoomStatusSummary `json:"room_status_summary"`
}

type BookingSummary struct {
	ID           string `json:"id"`
	RoomName     string `json:"room_name"`
	UserName     string `json:"user_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
}

type MonthlyStats struct {
	Year                 int             `json:"year"`
	Month                int             `json:"month"`
	TotalBookings        int             `json:"total_bookings"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	AverageBookingAmount decimal.Decimal `json:"average_booking_amount"`
}

type YearlyStats struct {
	Year                  int             `json:"year"`
	TotalBookings         int             `json:"total_bookings"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	AverageBookingAmount  decimal.Decimal `json:"average_booking_amount"`
	AverageMonthlyRevenue decimal.Decimal `json:"average_monthly_revenue"`
}

// RoomStatusSummary categories come from independent predicates on bookings
// and rooms; they are not expected to add up to the room count.
type RoomStatusSummary struct {
	Booked         int64 `json:"booked"`
	Available      int64 `json:"available"`
	CleaningNeeded int64 `json:"cleaning_needed"`
	Maintenance    int64 `json:"maintenance"`
	InUse          int64 `json:"in_use"`
	TotalRooms     int64 `json:"total_rooms"`
}

type StatisticsResponse struct {
	StartYear    int            `json:"start_year"`
	EndYear      int            `json:"end_year"`
	MonthlyStats []MonthlyStats `json:"monthly_stats"`
	YearlyStats  []YearlyStats  `json:"yearly_stats"`
}
