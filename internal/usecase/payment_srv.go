package usecase

import (
	"context"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService is read-only; payments are written by the booking lifecycle.
type PaymentService interface {
	GetUserPayments(ctx context.Context, userID string) ([]response.PaymentResponse, error)
	GetPaymentByBooking(ctx context.Context, bookingID, userID string) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) GetUserPayments(ctx context.Context, userID string) ([]response.PaymentResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}

	payments, err := s.repo.Payment.FindByUserID(ctx, id)
	if err != nil {
		return nil, internalError("get user payments", err)
	}

	out := make([]response.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, response.PaymentToResponse(p))
	}
	return out, nil
}

func (s *paymentService) GetPaymentByBooking(ctx context.Context, bookingID, userID string) (*response.PaymentResponse, error) {
	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, invalidID("booking ID", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, internalError("get booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != actor {
		return nil, ErrNotBookingOwner
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		return nil, internalError("get payment", err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}
