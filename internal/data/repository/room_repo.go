package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RoomFilter narrows a bookable-room search. Empty strings match any value.
type RoomFilter struct {
	CheckIn  time.Time
	CheckOut time.Time
	Type     string
	ViewType string
}

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAll(ctx context.Context) ([]*entity.Room, error)
	FindBookable(ctx context.Context, filter RoomFilter) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	SetAvailable(ctx context.Context, id uuid.UUID, available bool) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus, changedAt time.Time) error
	CountByStatus(ctx context.Context, status entity.RoomStatus) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `
	id, name, description, type, capacity, price_per_night, available,
	status, status_updated_at, image_url, view_type, bed_count, created_at, updated_at`

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.Type,
		&room.Capacity,
		&room.PricePerNight,
		&room.Available,
		&room.Status,
		&room.StatusUpdatedAt,
		&room.ImageURL,
		&room.ViewType,
		&room.BedCount,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.Name,
		room.Description,
		room.Type,
		room.Capacity,
		room.PricePerNight,
		room.Available,
		room.Status,
		room.StatusUpdatedAt,
		room.ImageURL,
		room.ViewType,
		room.BedCount,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create room", zap.Error(err), zap.String("name", room.Name))
		return fmt.Errorf("create room %s: %w", room.Name, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.findOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
}

// FindByIDForUpdate row-locks the room until the surrounding transaction ends,
// serialising concurrent reservations for the same room.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.findOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
}

func (r *roomRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find room %s: %w", id, err)
	}
	return room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	return r.list(ctx, "find all rooms", `SELECT `+roomColumns+` FROM rooms ORDER BY name`)
}

// FindBookable lists enabled rooms with no active booking overlapping the range.
func (r *roomRepository) FindBookable(ctx context.Context, filter RoomFilter) ([]*entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms r
		WHERE r.available = TRUE
		  AND ($3 = '' OR r.type = $3)
		  AND ($4 = '' OR r.view_type = $4)
		  AND NOT EXISTS (
		      SELECT 1 FROM bookings b
		      WHERE b.room_id = r.id
		        AND b.status <> $5
		        AND b.check_in_date < $2
		        AND b.check_out_date > $1
		  )
		ORDER BY r.price_per_night, r.name
	`
	return r.list(ctx, "find bookable rooms", query,
		filter.CheckIn, filter.CheckOut, filter.Type, filter.ViewType, entity.BookingStatusCancelled)
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET name = $1, description = $2, type = $3, capacity = $4, price_per_night = $5,
		    image_url = $6, view_type = $7, bed_count = $8, updated_at = NOW()
		WHERE id = $9
	`

	result, err := r.db.Exec(ctx, query,
		room.Name,
		room.Description,
		room.Type,
		room.Capacity,
		room.PricePerNight,
		room.ImageURL,
		room.ViewType,
		room.BedCount,
		room.ID,
	)
	if err != nil {
		r.log.Error("Failed to update room", zap.Error(err), zap.String("id", room.ID.String()))
		return fmt.Errorf("update room %s: %w", room.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update room %s: %w", room.ID, ErrNotFound)
	}

	return nil
}

func (r *roomRepository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE rooms SET available = $1, updated_at = NOW() WHERE id = $2`, available, id)
	if err != nil {
		r.log.Error("Failed to set room availability", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("set room availability %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("set room availability %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus, changedAt time.Time) error {
	query := `
		UPDATE rooms
		SET status = $1, status_updated_at = $2, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, status, changedAt, id)
	if err != nil {
		r.log.Error("Failed to update room status",
			zap.Error(err),
			zap.String("id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update room status %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update room status %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *roomRepository) CountByStatus(ctx context.Context, status entity.RoomStatus) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE status = $1`, status).Scan(&count); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err), zap.String("status", string(status)))
		return 0, fmt.Errorf("count rooms by status: %w", err)
	}
	return count, nil
}

func (r *roomRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return count, nil
}

func (r *roomRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Room, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room", zap.Error(err))
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return rooms, nil
}
