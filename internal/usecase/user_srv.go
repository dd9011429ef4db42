package usecase

import (
	"context"
	"errors"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID), zap.Error(err))
		return nil, invalidID("user ID", userID)
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, internalError("get profile", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, internalError("get all users", err)
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		return nil, internalError("count users", err)
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, response.UserToResponse(user))
	}

	us.log.Debug("Users listed",
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

// DeleteUser soft-deletes the account and revokes its sessions together.
// Bookings, payments and reviews are kept.
func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return invalidID("user ID", userID)
	}

	err = us.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return internalError("delete user", err)
		}
		if err := tx.Session.RevokeAllUserSessions(ctx, id); err != nil {
			return internalError("revoke user sessions", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	us.log.Info("User deleted", zap.String("user_id", userID))
	return nil
}
