package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error)
	ExistsByBookingID(ctx context.Context, bookingID uuid.UUID) (bool, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID, publicOnly bool) ([]*entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	FindAll(ctx context.Context) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type reviewRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReviewRepository(db database.Querier, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `
	id, user_id, room_id, booking_id, rating, title, comment, is_public,
	admin_reply, admin_reply_at, created_at, updated_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var rv entity.Review
	err := row.Scan(
		&rv.ID,
		&rv.UserID,
		&rv.RoomID,
		&rv.BookingID,
		&rv.Rating,
		&rv.Title,
		&rv.Comment,
		&rv.IsPublic,
		&rv.AdminReply,
		&rv.AdminReplyAt,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.RoomID,
		review.BookingID,
		review.Rating,
		review.Title,
		review.Comment,
		review.IsPublic,
		review.AdminReply,
		review.AdminReplyAt,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "reviews_booking_id_key") {
			return fmt.Errorf("create review: %w", ErrReviewExists)
		}
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("room_id", review.RoomID.String()),
		)
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE booking_id = $1`, bookingID)
}

func (r *reviewRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find review %s: %w", id, err)
	}
	return review, nil
}

func (r *reviewRepository) ExistsByBookingID(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check review existence", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return false, fmt.Errorf("check review for booking %s: %w", bookingID, err)
	}
	return exists, nil
}

func (r *reviewRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID, publicOnly bool) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE room_id = $1 AND ($2 = FALSE OR is_public = TRUE)
		ORDER BY created_at DESC
	`
	return r.list(ctx, "find reviews by room", query, roomID, publicOnly)
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "find reviews by user", query, userID)
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]*entity.Review, error) {
	return r.list(ctx, "find all reviews", `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC`)
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, title = $2, comment = $3, is_public = $4,
		    admin_reply = $5, admin_reply_at = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := r.db.Exec(ctx, query,
		review.Rating,
		review.Title,
		review.Comment,
		review.IsPublic,
		review.AdminReply,
		review.AdminReplyAt,
		review.ID,
	)
	if err != nil {
		r.log.Error("Failed to update review", zap.Error(err), zap.String("id", review.ID.String()))
		return fmt.Errorf("update review %s: %w", review.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update review %s: %w", review.ID, ErrNotFound)
	}

	return nil
}

// DeleteByBookingID removes the review attached to a booking, if any.
func (r *reviewRepository) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE booking_id = $1`, bookingID)
	if err != nil {
		r.log.Error("Failed to delete review by booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return 0, fmt.Errorf("delete review for booking %s: %w", bookingID, err)
	}
	return result.RowsAffected(), nil
}

func (r *reviewRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return reviews, nil
}
