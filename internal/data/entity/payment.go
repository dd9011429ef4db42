package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Payment is never deleted; BookingID may outlive the booking row.
type Payment struct {
	BaseNoDelete
	BookingID     uuid.UUID       `db:"booking_id"`
	Amount        decimal.Decimal `db:"amount"`
	Method        PaymentMethod   `db:"method"`
	Status        PaymentStatus   `db:"status"`
	TransactionID string          `db:"transaction_id"`
	PaidAt        time.Time       `db:"paid_at"`
}
