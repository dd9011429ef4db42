package repository

import (
	"context"
	"fmt"

	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Room    RoomRepository
	Booking BookingRepository
	Payment PaymentRepository
	Review  ReviewRepository

	// Tx runs a unit of work against repositories bound to one transaction.
	Tx TxManager
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgxTxManager{db: db, log: log.With(zap.String("repository", "tx"))}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(q, log),
		Session: NewSessionRepository(q, log),
		Room:    NewRoomRepository(q, log),
		Booking: NewBookingRepository(q, log),
		Payment: NewPaymentRepository(q, log),
		Review:  NewReviewRepository(q, log),
	}
}

type pgxTxManager struct {
	db  database.PgxIface
	log *zap.Logger
}

// WithinTx commits when fn returns nil and rolls back otherwise.
// Nested calls on the transactional Repository join the outer transaction.
func (m *pgxTxManager) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		m.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback(ctx)
	}()

	txRepo := newRepository(tx, m.log)
	txRepo.Tx = joinedTx{repo: txRepo}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		m.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithinTx(_ context.Context, fn func(tx *Repository) error) error {
	return fn(j.repo)
}
