package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type sampleRoom struct {
	name, description, roomType, viewType string
	capacity, beds                        int
	price                                 string
}

var sampleRooms = []sampleRoom{
	{"Standard 101", "Quiet room facing the courtyard", "STANDARD", "GARDEN", 2, 1, "85.00"},
	{"Deluxe 201", "Corner room with a balcony", "DELUXE", "CITY", 3, 2, "140.00"},
	{"Ocean Suite 301", "Suite with separate living area", "SUITE", "OCEAN", 4, 2, "260.00"},
}

// Seed creates the admin account with a first session, and sample rooms when
// the hotel has none. Running it again is harmless.
func Seed(ctx context.Context, repo *repository.Repository, config *utils.Config, logger *zap.Logger) error {
	if config.Seed.AdminEmail == "" || config.Seed.AdminPassword == "" {
		return errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	return repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		admin, err := seedAdmin(ctx, tx, config.Seed, logger)
		if err != nil {
			return err
		}

		ttl := time.Duration(config.Session.TTLHours) * time.Hour
		session := &entity.Session{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			UserID:     admin.ID,
			Token:      utils.GenerateSessionToken(),
			ExpiresAt:  time.Now().Add(ttl),
		}
		if err := tx.Session.Create(ctx, session); err != nil {
			return fmt.Errorf("create admin session: %w", err)
		}
		logger.Info("Admin session issued",
			zap.String("token", session.Token.String()),
			zap.Time("expires_at", session.ExpiresAt),
		)

		return seedRooms(ctx, tx, logger)
	})
}

func seedAdmin(ctx context.Context, tx *repository.Repository, cfg utils.SeedConfig, logger *zap.Logger) (*entity.User, error) {
	existing, err := tx.User.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if existing != nil {
		if !existing.IsAdmin() {
			return nil, fmt.Errorf("user %s exists and is not an admin", cfg.AdminEmail)
		}
		logger.Info("Admin already exists", zap.String("user_id", existing.ID.String()))
		return existing, nil
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	admin := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := tx.User.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	logger.Info("Admin created", zap.String("user_id", admin.ID.String()), zap.String("email", admin.Email))
	return admin, nil
}

func seedRooms(ctx context.Context, tx *repository.Repository, logger *zap.Logger) error {
	count, err := tx.Room.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		logger.Info("Rooms already present, skipping sample rooms", zap.Int64("rooms", count))
		return nil
	}

	now := time.Now()
	for _, s := range sampleRooms {
		viewType, beds := s.viewType, s.beds
		room := &entity.Room{
			BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:          s.name,
			Description:   s.description,
			Type:          s.roomType,
			Capacity:      s.capacity,
			PricePerNight: decimal.RequireFromString(s.price),
			Available:     true,
			Status:        entity.RoomStatusClean,
			ViewType:      &viewType,
			BedCount:      &beds,
		}
		if err := tx.Room.Create(ctx, room); err != nil {
			return fmt.Errorf("create room %s: %w", s.name, err)
		}
	}

	logger.Info("Sample rooms created", zap.Int("rooms", len(sampleRooms)))
	return nil
}
