package usecase

import (
	"context"
	"errors"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentLedger keeps exactly one payment per booking. Payments are settled
// immediately on creation and flip from PAID to REFUNDED on cancellation.
// Only a legacy revival of a cancelled booking flips them back.
type PaymentLedger struct {
	payments repository.PaymentRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewPaymentLedger(payments repository.PaymentRepository, log *zap.Logger, now func() time.Time) *PaymentLedger {
	if now == nil {
		now = time.Now
	}
	return &PaymentLedger{
		payments: payments,
		log:      log.With(zap.String("component", "payment_ledger")),
		now:      now,
	}
}

func (l *PaymentLedger) Settle(ctx context.Context, booking *entity.Booking, method entity.PaymentMethod) (*entity.Payment, error) {
	existing, err := l.payments.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, internalError("settle payment", err)
	}
	if existing != nil {
		l.log.Warn("Duplicate settlement rejected",
			zap.String("booking_id", booking.ID.String()),
			zap.String("payment_id", existing.ID.String()),
		)
		return nil, ErrDuplicatePayment
	}

	now := l.now()
	payment := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:     booking.ID,
		Amount:        booking.TotalPrice,
		Method:        method,
		Status:        entity.PaymentStatusPaid,
		TransactionID: utils.GenerateTransactionID(),
		PaidAt:        now,
	}

	if err := l.payments.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrPaymentExists) {
			return nil, ErrDuplicatePayment
		}
		return nil, internalError("settle payment", err)
	}

	l.log.Info("Payment settled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("transaction_id", payment.TransactionID),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)

	return payment, nil
}

// Refund flips the booking's payment to REFUNDED in place. Partial refunds do not exist.
func (l *PaymentLedger) Refund(ctx context.Context, booking *entity.Booking) (*entity.Payment, error) {
	payment, err := l.payments.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, internalError("refund payment", err)
	}
	if payment == nil {
		return nil, ErrNothingToRefund
	}
	if payment.Status == entity.PaymentStatusRefunded {
		return nil, ErrAlreadyRefunded
	}

	if err := l.payments.UpdateStatus(ctx, payment.ID, entity.PaymentStatusRefunded); err != nil {
		return nil, internalError("refund payment", err)
	}
	payment.Status = entity.PaymentStatusRefunded

	l.log.Info("Payment refunded",
		zap.String("booking_id", booking.ID.String()),
		zap.String("payment_id", payment.ID.String()),
	)

	return payment, nil
}

// Reinstate turns a refunded payment back to PAID when a cancelled booking is
// revived. A booking without a payment is left as is.
func (l *PaymentLedger) Reinstate(ctx context.Context, booking *entity.Booking) (*entity.Payment, error) {
	payment, err := l.payments.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, internalError("reinstate payment", err)
	}
	if payment == nil || payment.Status == entity.PaymentStatusPaid {
		return payment, nil
	}

	if err := l.payments.UpdateStatus(ctx, payment.ID, entity.PaymentStatusPaid); err != nil {
		return nil, internalError("reinstate payment", err)
	}
	payment.Status = entity.PaymentStatusPaid

	l.log.Info("Payment reinstated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("payment_id", payment.ID.String()),
	)

	return payment, nil
}
