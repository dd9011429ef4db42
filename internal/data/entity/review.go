package entity

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	BaseNoDelete
	UserID       uuid.UUID  `db:"user_id"`
	RoomID       uuid.UUID  `db:"room_id"`
	BookingID    *uuid.UUID `db:"booking_id"`
	Rating       int        `db:"rating"` // 1-5
	Title        *string    `db:"title"`
	Comment      *string    `db:"comment"`
	IsPublic     bool       `db:"is_public"`
	AdminReply   *string    `db:"admin_reply"`
	AdminReplyAt *time.Time `db:"admin_reply_at"`
}
