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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	FindActiveByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Booking, error)
	FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)
	FindByStatusAndCheckInDate(ctx context.Context, status entity.BookingStatus, date time.Time) ([]*entity.Booking, error)
	FindByStatusAndCheckOutDate(ctx context.Context, status entity.BookingStatus, date time.Time) ([]*entity.Booking, error)
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error)
	FindCheckInBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error)
	CountByStatusCheckInFrom(ctx context.Context, status entity.BookingStatus, from time.Time) (int64, error)
	CountRoomsInUse(ctx context.Context, today time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, user_id, room_id, check_in_date, check_out_date, guests,
	total_price, status, special_requests, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.RoomID,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.Guests,
		&b.TotalPrice,
		&b.Status,
		&b.SpecialRequests,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.RoomID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Guests,
		booking.TotalPrice,
		booking.Status,
		booking.SpecialRequests,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		if database.IsExclusionViolation(err, "bookings_no_overlap") {
			r.log.Warn("Booking rejected by overlap constraint",
				zap.String("room_id", booking.RoomID.String()),
				zap.Time("check_in", booking.CheckInDate),
				zap.Time("check_out", booking.CheckOutDate),
			)
			return fmt.Errorf("create booking %s: %w", booking.ID, ErrBookingOverlap)
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("room_id", booking.RoomID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// FindByIDForUpdate locks the booking row so concurrent status changes queue up.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "find bookings by user", query, userID)
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return r.list(ctx, "find all bookings", query)
}

func (r *bookingRepository) FindActiveByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1 AND status <> $2
		ORDER BY check_in_date
	`
	return r.list(ctx, "find active bookings by room", query, roomID, entity.BookingStatusCancelled)
}

func (r *bookingRepository) FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY check_out_date`
	return r.list(ctx, "find bookings by status", query, status)
}

func (r *bookingRepository) FindByStatusAndCheckInDate(ctx context.Context, status entity.BookingStatus, date time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND check_in_date = $2 ORDER BY created_at`
	return r.list(ctx, "find bookings by check-in date", query, status, date)
}

func (r *bookingRepository) FindByStatusAndCheckOutDate(ctx context.Context, status entity.BookingStatus, date time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND check_out_date = $2 ORDER BY created_at`
	return r.list(ctx, "find bookings by check-out date", query, status, date)
}

// FindCreatedBetween returns bookings with from <= created_at < to.
func (r *bookingRepository) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at`
	return r.list(ctx, "find bookings by creation time", query, from, to)
}

// FindCheckInBetween returns bookings with from <= check_in_date < to.
func (r *bookingRepository) FindCheckInBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE check_in_date >= $1 AND check_in_date < $2 ORDER BY check_in_date`
	return r.list(ctx, "find bookings by check-in range", query, from, to)
}

func (r *bookingRepository) CountByStatusCheckInFrom(ctx context.Context, status entity.BookingStatus, from time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE status = $1 AND check_in_date >= $2`

	var count int64
	if err := r.db.QueryRow(ctx, query, status, from).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err), zap.String("status", string(status)))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) CountRoomsInUse(ctx context.Context, today time.Time) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT room_id)
		FROM bookings
		WHERE status = $1 AND check_out_date >= $2
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, entity.BookingStatusCheckedIn, today).Scan(&count); err != nil {
		r.log.Error("Failed to count rooms in use", zap.Error(err))
		return 0, fmt.Errorf("count rooms in use: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		if database.IsExclusionViolation(err, "bookings_no_overlap") {
			return fmt.Errorf("update booking %s: %w", id, ErrBookingOverlap)
		}
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking status %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete booking %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete booking %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking", zap.Error(err), zap.String("op", op))
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return bookings, nil
}
