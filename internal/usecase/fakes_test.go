package usecase

import (
	"context"
	"sort"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

/* ==================== IN-MEMORY STORE ==================== */

type memStore struct {
	users    map[uuid.UUID]*entity.User
	sessions []*entity.Session
	rooms    map[uuid.UUID]*entity.Room
	bookings map[uuid.UUID]*entity.Booking
	payments map[uuid.UUID]*entity.Payment
	reviews  map[uuid.UUID]*entity.Review
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*entity.User),
		rooms:    make(map[uuid.UUID]*entity.Room),
		bookings: make(map[uuid.UUID]*entity.Booking),
		payments: make(map[uuid.UUID]*entity.Payment),
		reviews:  make(map[uuid.UUID]*entity.Review),
	}
}

// repository wires the store behind a Repository whose Tx runs fn inline.
func (s *memStore) repository() *repository.Repository {
	repo := &repository.Repository{
		User:    &fakeUserRepo{s},
		Session: &fakeSessionRepo{s},
		Room:    &fakeRoomRepo{s},
		Booking: &fakeBookingRepo{s},
		Payment: &fakePaymentRepo{s},
		Review:  &fakeReviewRepo{s},
	}
	repo.Tx = inlineTx{repo}
	return repo
}

type inlineTx struct {
	repo *repository.Repository
}

func (t inlineTx) WithinTx(_ context.Context, fn func(tx *repository.Repository) error) error {
	return fn(t.repo)
}

func (s *memStore) addUser(name string, role entity.UserRole) *entity.User {
	u := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		Username: name,
		Email:    name + "@hotel.test",
		Role:     role,
		IsActive: true,
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addRoom(name string, price string, capacity int) *entity.Room {
	r := &entity.Room{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New()},
		Name:          name,
		Type:          "DELUXE",
		Capacity:      capacity,
		PricePerNight: decimal.RequireFromString(price),
		Available:     true,
		Status:        entity.RoomStatusClean,
	}
	s.rooms[r.ID] = r
	return r
}

func (s *memStore) addBooking(user *entity.User, room *entity.Room, checkIn, checkOut time.Time, status entity.BookingStatus, total string) *entity.Booking {
	b := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:       user.ID,
		RoomID:       room.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       1,
		TotalPrice:   decimal.RequireFromString(total),
		Status:       status,
	}
	s.bookings[b.ID] = b
	return b
}

func (s *memStore) addPayment(b *entity.Booking, status entity.PaymentStatus) *entity.Payment {
	p := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		BookingID:    b.ID,
		Amount:       b.TotalPrice,
		Method:       entity.PaymentMethodCard,
		Status:       status,
	}
	s.payments[p.ID] = p
	return p
}

func (s *memStore) addReview(b *entity.Booking) *entity.Review {
	r := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		UserID:       b.UserID,
		RoomID:       b.RoomID,
		BookingID:    &b.ID,
		Rating:       5,
		IsPublic:     true,
	}
	s.reviews[r.ID] = r
	return r
}

func (s *memStore) bookingList(keep func(*entity.Booking) bool) []*entity.Booking {
	out := []*entity.Booking{}
	for _, b := range s.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// fixedPolicy pins "now" to noon UTC on the given date.
func fixedPolicy(today string) Policy {
	now := date(today).Add(12 * time.Hour)
	return Policy{
		Location:               time.UTC,
		CancellationCutoffDays: 7,
		ReviewWindowMonths:     1,
		StrictTransitions:      true,
		Now:                    func() time.Time { return now },
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

/* ==================== BOOKINGS ==================== */

type fakeBookingRepo struct{ s *memStore }

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	for _, other := range r.s.bookings {
		if other.RoomID == b.RoomID && other.IsActive() && other.Overlaps(b.CheckInDate, b.CheckOutDate) {
			return repository.ErrBookingOverlap
		}
	}
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	return r.s.bookingList(func(b *entity.Booking) bool { return b.UserID == userID }), nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context) ([]*entity.Booking, error) {
	return r.s.bookingList(func(*entity.Booking) bool { return true }), nil
}

func (r *fakeBookingRepo) FindActiveByRoomID(_ context.Context, roomID uuid.UUID) ([]*entity.Booking, error) {
	return r.s.bookingList(func(b *entity.Booking) bool { return b.RoomID == roomID && b.IsActive() }), nil
}

func (r *fakeBookingRepo) FindByStatus(_ context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	return r.s.bookingList(func(b *entity.Booking) bool { return b.Status == status }), nil
}

func (r *fakeBookingRepo) FindByStatusAndCheckInDate(_ context.Context, status entity.BookingStatus, day time.Time) ([]*entity.Booking, error) {
	return r.s.bookingList(func(b *entity.Booking) bool { return b.Status == status && b.CheckInDate.Equal(day) }), nil
}

func (r *fakeBookingRepo) FindByStatusAndCheckOutDate(_ context.Context, status entity.BookingStatus, day time.Time) ([]*entity.Booking, error) {
	return r.s.bookingList(func(b *entity.Booking) bool { return b.Status == status && b.CheckOutDate.Equal(day) }), nil
}

func (r *fakeBookingRepo) FindCreatedBetween(_ context.Context, from, to time.Time) ([]*entity.Booking, error) {
	return r.s.bookingList(func(b *entity.Booking) bool {
		return !b.CreatedAt.Before(from) && b.CreatedAt.Before(to)
	}), nil
}

func (r *fakeBookingRepo) FindCheckInBetween(_ context.Context, from, to time.Time) ([]*entity.Booking, error) {
	return r.s.bookingList(func(b *entity.Booking) bool {
		return !b.CheckInDate.Before(from) && b.CheckInDate.Before(to)
	}), nil
}

func (r *fakeBookingRepo) CountByStatusCheckInFrom(_ context.Context, status entity.BookingStatus, from time.Time) (int64, error) {
	return int64(len(r.s.bookingList(func(b *entity.Booking) bool {
		return b.Status == status && !b.CheckInDate.Before(from)
	}))), nil
}

func (r *fakeBookingRepo) CountRoomsInUse(_ context.Context, today time.Time) (int64, error) {
	rooms := make(map[uuid.UUID]struct{})
	for _, b := range r.s.bookings {
		if b.Status == entity.BookingStatusCheckedIn && !b.CheckOutDate.Before(today) {
			rooms[b.RoomID] = struct{}{}
		}
	}
	return int64(len(rooms)), nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	b, ok := r.s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

/* ==================== ROOMS ==================== */

type fakeRoomRepo struct{ s *memStore }

func (r *fakeRoomRepo) Create(_ context.Context, room *entity.Room) error {
	cp := *room
	r.s.rooms[room.ID] = &cp
	return nil
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *room
	return &cp, nil
}

func (r *fakeRoomRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeRoomRepo) FindAll(_ context.Context) ([]*entity.Room, error) {
	out := []*entity.Room{}
	for _, room := range r.s.rooms {
		cp := *room
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRoomRepo) FindBookable(ctx context.Context, filter repository.RoomFilter) ([]*entity.Room, error) {
	all, _ := r.FindAll(ctx)
	out := []*entity.Room{}
	for _, room := range all {
		if !room.Available || (filter.Type != "" && room.Type != filter.Type) {
			continue
		}
		if filter.ViewType != "" && (room.ViewType == nil || *room.ViewType != filter.ViewType) {
			continue
		}
		active := r.s.bookingList(func(b *entity.Booking) bool { return b.RoomID == room.ID && b.IsActive() })
		if FindConflict(active, filter.CheckIn, filter.CheckOut, nil) == nil {
			out = append(out, room)
		}
	}
	return out, nil
}

func (r *fakeRoomRepo) Update(_ context.Context, room *entity.Room) error {
	if _, ok := r.s.rooms[room.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *room
	r.s.rooms[room.ID] = &cp
	return nil
}

func (r *fakeRoomRepo) SetAvailable(_ context.Context, id uuid.UUID, available bool) error {
	room, ok := r.s.rooms[id]
	if !ok {
		return repository.ErrNotFound
	}
	room.Available = available
	return nil
}

func (r *fakeRoomRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.RoomStatus, changedAt time.Time) error {
	room, ok := r.s.rooms[id]
	if !ok {
		return repository.ErrNotFound
	}
	room.Status = status
	room.StatusUpdatedAt = &changedAt
	return nil
}

func (r *fakeRoomRepo) CountByStatus(_ context.Context, status entity.RoomStatus) (int64, error) {
	var n int64
	for _, room := range r.s.rooms {
		if room.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeRoomRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.s.rooms)), nil
}

/* ==================== PAYMENTS ==================== */

type fakePaymentRepo struct{ s *memStore }

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	for _, other := range r.s.payments {
		if other.BookingID == p.BookingID {
			return repository.ErrPaymentExists
		}
	}
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.s.payments {
		if p.BookingID == bookingID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Payment, error) {
	out := []*entity.Payment{}
	for _, p := range r.s.payments {
		if b, ok := r.s.bookings[p.BookingID]; ok && b.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	p, ok := r.s.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	return nil
}

/* ==================== REVIEWS ==================== */

type fakeReviewRepo struct{ s *memStore }

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, other := range r.s.reviews {
		if other.BookingID != nil && review.BookingID != nil && *other.BookingID == *review.BookingID {
			return repository.ErrReviewExists
		}
	}
	cp := *review
	r.s.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	review, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *review
	return &cp, nil
}

func (r *fakeReviewRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	for _, review := range r.s.reviews {
		if review.BookingID != nil && *review.BookingID == bookingID {
			cp := *review
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) ExistsByBookingID(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	review, _ := r.FindByBookingID(ctx, bookingID)
	return review != nil, nil
}

func (r *fakeReviewRepo) FindByRoomID(_ context.Context, roomID uuid.UUID, publicOnly bool) ([]*entity.Review, error) {
	return r.list(func(review *entity.Review) bool {
		return review.RoomID == roomID && (!publicOnly || review.IsPublic)
	}), nil
}

func (r *fakeReviewRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return r.list(func(review *entity.Review) bool { return review.UserID == userID }), nil
}

func (r *fakeReviewRepo) FindAll(_ context.Context) ([]*entity.Review, error) {
	return r.list(func(*entity.Review) bool { return true }), nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := r.s.reviews[review.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *review
	r.s.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) DeleteByBookingID(_ context.Context, bookingID uuid.UUID) (int64, error) {
	var n int64
	for id, review := range r.s.reviews {
		if review.BookingID != nil && *review.BookingID == bookingID {
			delete(r.s.reviews, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeReviewRepo) list(keep func(*entity.Review) bool) []*entity.Review {
	out := []*entity.Review{}
	for _, review := range r.s.reviews {
		if keep(review) {
			cp := *review
			out = append(out, &cp)
		}
	}
	return out
}

/* ==================== USERS & SESSIONS ==================== */

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	all := []*entity.User{}
	for _, u := range r.s.users {
		if u.DeletedAt == nil {
			cp := *u
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.s.users {
		if u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := r.s.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

type fakeSessionRepo struct{ s *memStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	cp := *session
	r.s.sessions = append(r.s.sessions, &cp)
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	for _, session := range r.s.sessions {
		if session.Token.String() == token && session.IsValidAt(time.Now()) {
			cp := *session
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, session := range r.s.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}
