package usecase

import (
	"context"
	"errors"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService drives the reservation lifecycle. The acting user is always
// passed explicitly; nothing is read from ambient request state.
type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID string) (*response.BookingResponse, error)
	GetMyBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
	GetReviewableBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, userID string) (*response.BookingResponse, error)

	// Admin
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo   *repository.Repository
	policy Policy
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, policy Policy, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		policy: policy,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) ledger(tx *repository.Repository) *PaymentLedger {
	return NewPaymentLedger(tx.Payment, s.log, s.policy.now)
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, invalidID("room ID", req.RoomID)
	}

	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, invalidID("check-in date", req.CheckInDate)
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, invalidID("check-out date", req.CheckOutDate)
	}

	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}
	if s.policy.RejectPastCheckIn && checkIn.Before(s.policy.Today()) {
		return nil, ErrCheckInInPast
	}

	var (
		room    *entity.Room
		booking *entity.Booking
		payment *entity.Payment
	)

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		guest, err := tx.User.FindByID(ctx, userUUID)
		if err != nil {
			return internalError("load user", err)
		}
		if guest == nil {
			return ErrUserNotFound
		}

		// Row lock on the room serialises check-then-insert for that room.
		room, err = tx.Room.FindByIDForUpdate(ctx, roomID)
		if err != nil {
			return internalError("load room", err)
		}
		if room == nil {
			return ErrRoomNotFound
		}
		if !room.Available {
			return ErrRoomUnavailable
		}
		if req.Guests > room.Capacity {
			return ErrGuestsExceedCapacity
		}

		free, err := NewAvailabilityEngine(tx.Booking).IsAvailable(ctx, room.ID, checkIn, checkOut, nil)
		if err != nil {
			return err
		}
		if !free {
			return ErrOverlapConflict
		}

		now := s.policy.now()
		booking = &entity.Booking{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:          userUUID,
			RoomID:          room.ID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			Guests:          req.Guests,
			TotalPrice:      room.PriceFor(entity.NightsBetween(checkIn, checkOut)),
			Status:          entity.BookingStatusConfirmed,
			SpecialRequests: req.SpecialRequests,
		}

		if err := tx.Booking.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrBookingOverlap) {
				return ErrOverlapConflict
			}
			return internalError("create booking", err)
		}

		payment, err = s.ledger(tx).Settle(ctx, booking, entity.PaymentMethod(req.PaymentMethod))
		return err
	})
	if err != nil {
		s.log.Warn("Create booking rejected",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("room_id", req.RoomID),
			zap.String("check_in", req.CheckInDate),
			zap.String("check_out", req.CheckOutDate),
		)
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("room_id", room.ID.String()),
		zap.Int("nights", booking.Nights()),
		zap.String("total_price", booking.TotalPrice.StringFixed(2)),
	)

	resp := response.BookingToResponse(booking, room, payment)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, invalidID("booking ID", bookingID)
	}
	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}

	var (
		booking *entity.Booking
		payment *entity.Payment
	)

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		booking, err = tx.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return internalError("load booking", err)
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if booking.UserID != actor {
			return ErrNotBookingOwner
		}
		if booking.Status == entity.BookingStatusCancelled {
			return ErrAlreadyCancelled
		}
		if booking.Status != entity.BookingStatusConfirmed {
			return ErrNotCancellable
		}

		daysLeft := utils.DaysBetween(s.policy.Today(), booking.CheckInDate)
		if daysLeft < s.policy.CancellationCutoffDays {
			return ErrCancellationWindow
		}

		payment, err = s.cancelInTx(ctx, tx, booking)
		return err
	})
	if err != nil {
		s.log.Warn("Cancel booking rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID),
		)
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
	)

	resp := response.BookingToResponse(booking, nil, payment)
	return &resp, nil
}

// cancelInTx removes the attached review, refunds the payment and marks the
// booking CANCELLED, all on the caller's transaction.
func (s *bookingService) cancelInTx(ctx context.Context, tx *repository.Repository, booking *entity.Booking) (*entity.Payment, error) {
	removed, err := tx.Review.DeleteByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, internalError("delete booking review", err)
	}

	payment, err := s.ledger(tx).Refund(ctx, booking)
	if err != nil {
		return nil, err
	}

	if err := tx.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		return nil, internalError("update booking status", err)
	}
	booking.Status = entity.BookingStatusCancelled

	if removed > 0 {
		s.log.Info("Review removed with cancelled booking", zap.String("booking_id", booking.ID.String()))
	}

	return payment, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, internalError("get user bookings", err)
	}

	return s.toResponses(ctx, bookings)
}

func (s *bookingService) GetReviewableBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, internalError("get user bookings", err)
	}

	today := s.policy.Today()
	eligibility := NewReviewEligibility(s.repo.Review, s.policy.ReviewWindowMonths)

	reviewable := make([]*entity.Booking, 0, len(bookings))
	for _, b := range bookings {
		ok, err := eligibility.CanReview(ctx, b, today)
		if err != nil {
			return nil, err
		}
		if ok {
			reviewable = append(reviewable, b)
		}
	}

	return s.toResponses(ctx, reviewable)
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, userID string) (*response.BookingResponse, error) {
	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, invalidID("user ID", userID)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor {
		return nil, ErrNotBookingOwner
	}

	return s.toDetailResponse(ctx, booking)
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		return nil, internalError("get all bookings", err)
	}
	return s.toResponses(ctx, bookings)
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.toDetailResponse(ctx, booking)
}

// UpdateBookingStatus is the privileged path: no cancellation window applies.
// With strict transitions the forward-only table is enforced.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, invalidID("booking ID", bookingID)
	}
	target, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, invalidID("booking status", req.Status)
	}

	var (
		booking  *entity.Booking
		previous entity.BookingStatus
	)

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		booking, err = tx.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return internalError("load booking", err)
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		previous = booking.Status
		if s.policy.StrictTransitions {
			if !previous.CanTransitionTo(target) {
				return transitionError(previous, target)
			}
		} else if previous == target {
			return nil
		}

		return s.applyStatus(ctx, tx, booking, target)
	})
	if err != nil {
		s.log.Warn("Booking status change rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("target", req.Status),
		)
		return nil, err
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(booking.Status)),
	)

	return s.toDetailResponse(ctx, booking)
}

func (s *bookingService) applyStatus(ctx context.Context, tx *repository.Repository, booking *entity.Booking, target entity.BookingStatus) error {
	if target == entity.BookingStatusCancelled {
		_, err := s.cancelInTx(ctx, tx, booking)
		return err
	}

	// Only reachable with strict transitions off: a revived booking must not
	// collide with reservations taken since it was cancelled.
	if booking.Status == entity.BookingStatusCancelled {
		if _, err := tx.Room.FindByIDForUpdate(ctx, booking.RoomID); err != nil {
			return internalError("lock room", err)
		}
		free, err := NewAvailabilityEngine(tx.Booking).IsAvailable(ctx, booking.RoomID, booking.CheckInDate, booking.CheckOutDate, &booking.ID)
		if err != nil {
			return err
		}
		if !free {
			return ErrOverlapConflict
		}
		// The stay is live again, so is its charge.
		if _, err := s.ledger(tx).Reinstate(ctx, booking); err != nil {
			return err
		}
	}

	if err := tx.Booking.UpdateStatus(ctx, booking.ID, target); err != nil {
		if errors.Is(err, repository.ErrBookingOverlap) {
			return ErrOverlapConflict
		}
		return internalError("update booking status", err)
	}
	booking.Status = target

	if target == entity.BookingStatusCheckedOut {
		if err := tx.Room.UpdateStatus(ctx, booking.RoomID, entity.RoomStatusDirty, s.policy.now()); err != nil {
			return internalError("mark room dirty", err)
		}
		s.log.Info("Room marked dirty after check-out",
			zap.String("room_id", booking.RoomID.String()),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	return nil
}

// DeleteBooking purges a cancelled booking. Its payment row is kept.
func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != entity.BookingStatusCancelled {
		return ErrBookingNotPurgeable
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return internalError("delete booking", err)
	}

	s.log.Info("Booking deleted", zap.String("booking_id", bookingID))
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
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
	return booking, nil
}

func (s *bookingService) toDetailResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	room, err := s.repo.Room.FindByID(ctx, booking.RoomID)
	if err != nil {
		return nil, internalError("get booking room", err)
	}
	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, internalError("get booking payment", err)
	}

	resp := response.BookingToResponse(booking, room, payment)
	return &resp, nil
}

func (s *bookingService) toResponses(ctx context.Context, bookings []*entity.Booking) ([]response.BookingResponse, error) {
	rooms := make(map[uuid.UUID]*entity.Room)
	out := make([]response.BookingResponse, 0, len(bookings))

	for _, b := range bookings {
		room, cached := rooms[b.RoomID]
		if !cached {
			var err error
			room, err = s.repo.Room.FindByID(ctx, b.RoomID)
			if err != nil {
				return nil, internalError("get booking room", err)
			}
			rooms[b.RoomID] = room
		}
		out = append(out, response.BookingToResponse(b, room, nil))
	}

	return out, nil
}
