package usecase

import (
	"context"
	"errors"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService interface {
	GetAllRooms(ctx context.Context) ([]response.RoomResponse, error)
	GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error)
	SearchAvailableRooms(ctx context.Context, req *request.SearchRoomsRequest) ([]response.RoomResponse, error)

	// Admin
	CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.RoomRequest) (*response.RoomResponse, error)
	SetRoomAvailability(ctx context.Context, roomID string, available bool) (*response.RoomResponse, error)
	UpdateRoomStatus(ctx context.Context, roomID string, req *request.UpdateRoomStatusRequest) (*response.RoomResponse, error)
}

type roomService struct {
	repo   *repository.Repository
	policy Policy
	log    *zap.Logger
}

func NewRoomService(repo *repository.Repository, policy Policy, log *zap.Logger) RoomService {
	return &roomService{
		repo:   repo,
		policy: policy,
		log:    log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetAllRooms(ctx context.Context) ([]response.RoomResponse, error) {
	rooms, err := s.repo.Room.FindAll(ctx)
	if err != nil {
		return nil, internalError("get rooms", err)
	}
	return response.RoomsToResponse(rooms), nil
}

func (s *roomService) GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

// SearchAvailableRooms returns enabled rooms with no active booking overlapping the range.
func (s *roomService) SearchAvailableRooms(ctx context.Context, req *request.SearchRoomsRequest) ([]response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
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

	rooms, err := s.repo.Room.FindBookable(ctx, repository.RoomFilter{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Type:     req.Type,
		ViewType: req.ViewType,
	})
	if err != nil {
		return nil, internalError("search available rooms", err)
	}

	s.log.Debug("Available rooms searched",
		zap.String("check_in", req.CheckInDate),
		zap.String("check_out", req.CheckOutDate),
		zap.Int("results", len(rooms)),
	)

	return response.RoomsToResponse(rooms), nil
}

// ==================== ADMIN METHODS ====================

func (s *roomService) CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error) {
	if err := validateRoomRequest(req); err != nil {
		s.log.Warn("Create room validation failed", zap.Error(err))
		return nil, err
	}

	now := s.policy.now()
	room := &entity.Room{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Available: true,
		Status:    entity.RoomStatusClean,
	}
	applyRoomRequest(room, req)

	if err := s.repo.Room.Create(ctx, room); err != nil {
		return nil, internalError("create room", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("name", room.Name),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, roomID string, req *request.RoomRequest) (*response.RoomResponse, error) {
	if err := validateRoomRequest(req); err != nil {
		return nil, err
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	applyRoomRequest(room, req)
	room.UpdatedAt = s.policy.now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, internalError("update room", err)
	}

	s.log.Info("Room updated", zap.String("room_id", roomID))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

// SetRoomAvailability flips the administrative switch. Existing bookings are untouched.
func (s *roomService) SetRoomAvailability(ctx context.Context, roomID string, available bool) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Room.SetAvailable(ctx, room.ID, available); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, internalError("set room availability", err)
	}
	room.Available = available

	s.log.Info("Room availability changed",
		zap.String("room_id", roomID),
		zap.Bool("available", available),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateRoomStatus(ctx context.Context, roomID string, req *request.UpdateRoomStatusRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	status, err := entity.ParseRoomStatus(req.Status)
	if err != nil {
		return nil, invalidID("room status", req.Status)
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	changedAt := s.policy.now()
	if err := s.repo.Room.UpdateStatus(ctx, room.ID, status, changedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, internalError("update room status", err)
	}
	room.Status = status
	room.StatusUpdatedAt = &changedAt

	s.log.Info("Room status changed",
		zap.String("room_id", roomID),
		zap.String("status", string(status)),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, invalidID("room ID", roomID)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, internalError("get room", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func validateRoomRequest(req *request.RoomRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if req.PricePerNight.IsNegative() {
		return apperror.New(apperror.KindValidation, "price per night must not be negative")
	}
	// Money is kept to the cent.
	if !req.PricePerNight.Equal(req.PricePerNight.Round(2)) {
		return apperror.New(apperror.KindValidation, "price per night must have at most 2 decimal places")
	}
	return nil
}

func applyRoomRequest(room *entity.Room, req *request.RoomRequest) {
	room.Name = req.Name
	room.Description = req.Description
	room.Type = req.Type
	room.Capacity = req.Capacity
	room.PricePerNight = req.PricePerNight.Round(2)
	room.ImageURL = req.ImageURL
	room.ViewType = req.ViewType
	room.BedCount = req.BedCount
}
