package usecase

import (
	"hotel-booking/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Booking   BookingService
	Room      RoomService
	Review    ReviewService
	Payment   PaymentService
	Dashboard DashboardService
	User      UserService
}

func NewService(repo *repository.Repository, policy Policy, log *zap.Logger) *Service {
	return &Service{
		Booking:   NewBookingService(repo, policy, log),
		Room:      NewRoomService(repo, policy, log),
		Review:    NewReviewService(repo, policy, log),
		Payment:   NewPaymentService(repo, log),
		Dashboard: NewDashboardService(repo, policy, log),
		User:      NewUserService(repo, log),
	}
}
