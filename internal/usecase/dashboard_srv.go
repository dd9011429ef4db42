package usecase

import (
	"context"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxStatisticsYears bounds a single statistics request.
const maxStatisticsYears = 20

// DashboardService is read-only. Each figure is computed from its own query,
// so figures fetched back to back may disagree if bookings change in between.
type DashboardService interface {
	GetDashboard(ctx context.Context, req *request.DashboardRequest) (*response.DashboardResponse, error)
	GetStatistics(ctx context.Context, req *request.StatisticsRequest) (*response.StatisticsResponse, error)
	GetRoomStatusSummary(ctx context.Context) (*response.RoomStatusSummary, error)
}

type dashboardService struct {
	repo   *repository.Repository
	policy Policy
	log    *zap.Logger
}

func NewDashboardService(repo *repository.Repository, policy Policy, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		policy: policy,
		log:    log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, req *request.DashboardRequest) (*response.DashboardResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	today := s.policy.Today()
	// A partial period falls back to the current month as a whole.
	year, month := req.Year, req.Month
	if year == 0 || month == 0 {
		year, month = today.Year(), int(today.Month())
	}

	checkIns, err := s.repo.Booking.FindByStatusAndCheckInDate(ctx, entity.BookingStatusConfirmed, today)
	if err != nil {
		return nil, internalError("get today's check-ins", err)
	}
	checkOuts, err := s.repo.Booking.FindByStatusAndCheckOutDate(ctx, entity.BookingStatusCheckedIn, today)
	if err != nil {
		return nil, internalError("get today's check-outs", err)
	}
	stays, err := s.repo.Booking.FindByStatus(ctx, entity.BookingStatusCheckedIn)
	if err != nil {
		return nil, internalError("get current stays", err)
	}

	monthly, err := s.monthlyStats(ctx, year, time.Month(month))
	if err != nil {
		return nil, err
	}

	summary, err := s.roomStatusSummary(ctx, today)
	if err != nil {
		return nil, err
	}

	names := newNameCache(s.repo)
	resp := &response.DashboardResponse{
		Date:              utils.FormatDate(today),
		MonthlyStats:      monthly,
		RoomStatusSummary: *summary,
	}
	if resp.TodayCheckIns, err = names.summaries(ctx, checkIns); err != nil {
		return nil, err
	}
	if resp.TodayCheckOuts, err = names.summaries(ctx, checkOuts); err != nil {
		return nil, err
	}
	if resp.CurrentStays, err = names.summaries(ctx, stays); err != nil {
		return nil, err
	}

	s.log.Info("Dashboard computed",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("check_ins", len(checkIns)),
		zap.Int("check_outs", len(checkOuts)),
		zap.Int("stays", len(stays)),
	)

	return resp, nil
}

func (s *dashboardService) monthlyStats(ctx context.Context, year int, month time.Month) (response.MonthlyStats, error) {
	from, to := utils.MonthBounds(year, month, s.policy.location())

	bookings, err := s.repo.Booking.FindCreatedBetween(ctx, from, to)
	if err != nil {
		return response.MonthlyStats{}, internalError("get monthly bookings", err)
	}

	return SummarizeMonth(year, month, bookings), nil
}

func (s *dashboardService) GetStatistics(ctx context.Context, req *request.StatisticsRequest) (*response.StatisticsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	startYear, endYear := req.StartYear, req.EndYear
	if startYear == 0 || endYear == 0 {
		current := s.policy.Today().Year()
		startYear, endYear = current-1, current
	}
	if startYear > endYear {
		return nil, apperror.New(apperror.KindValidation, "start year must not be after end year")
	}
	if endYear-startYear >= maxStatisticsYears {
		return nil, apperror.New(apperror.KindValidation, "statistics range is too wide")
	}

	loc := s.policy.location()
	createdFrom := time.Date(startYear, time.January, 1, 0, 0, 0, 0, loc)
	createdTo := time.Date(endYear+1, time.January, 1, 0, 0, 0, 0, loc)
	created, err := s.repo.Booking.FindCreatedBetween(ctx, createdFrom, createdTo)
	if err != nil {
		return nil, internalError("get bookings by creation time", err)
	}

	checkInFrom := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	checkInTo := time.Date(endYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	checkIns, err := s.repo.Booking.FindCheckInBetween(ctx, checkInFrom, checkInTo)
	if err != nil {
		return nil, internalError("get bookings by check-in", err)
	}

	stats := BuildStatistics(startYear, endYear, created, checkIns, loc)

	s.log.Info("Statistics computed",
		zap.Int("start_year", startYear),
		zap.Int("end_year", endYear),
		zap.Int("monthly_entries", len(stats.MonthlyStats)),
		zap.Int("yearly_entries", len(stats.YearlyStats)),
	)

	return stats, nil
}

func (s *dashboardService) GetRoomStatusSummary(ctx context.Context) (*response.RoomStatusSummary, error) {
	return s.roomStatusSummary(ctx, s.policy.Today())
}

// roomStatusSummary counts each category with its own predicate. Room condition
// and reservation state are separate axes, so the counts need not sum to TotalRooms.
func (s *dashboardService) roomStatusSummary(ctx context.Context, today time.Time) (*response.RoomStatusSummary, error) {
	var (
		summary response.RoomStatusSummary
		err     error
	)

	if summary.Booked, err = s.repo.Booking.CountByStatusCheckInFrom(ctx, entity.BookingStatusConfirmed, today); err != nil {
		return nil, internalError("count booked", err)
	}
	if summary.Available, err = s.repo.Room.CountByStatus(ctx, entity.RoomStatusClean); err != nil {
		return nil, internalError("count clean rooms", err)
	}
	if summary.CleaningNeeded, err = s.repo.Room.CountByStatus(ctx, entity.RoomStatusDirty); err != nil {
		return nil, internalError("count dirty rooms", err)
	}
	if summary.Maintenance, err = s.repo.Room.CountByStatus(ctx, entity.RoomStatusMaintenance); err != nil {
		return nil, internalError("count rooms in maintenance", err)
	}
	if summary.InUse, err = s.repo.Booking.CountRoomsInUse(ctx, today); err != nil {
		return nil, internalError("count rooms in use", err)
	}
	if summary.TotalRooms, err = s.repo.Room.CountAll(ctx); err != nil {
		return nil, internalError("count rooms", err)
	}

	return &summary, nil
}

// SummarizeMonth aggregates bookings already selected for one month.
func SummarizeMonth(year int, month time.Month, bookings []*entity.Booking) response.MonthlyStats {
	total := sumTotals(bookings)
	return response.MonthlyStats{
		Year:                 year,
		Month:                int(month),
		TotalBookings:        len(bookings),
		TotalRevenue:         total,
		AverageBookingAmount: average(total, len(bookings)),
	}
}

// BuildStatistics buckets created bookings by creation month (in loc) and
// checkIns by check-in year. Months and years without bookings are omitted.
func BuildStatistics(startYear, endYear int, created, checkIns []*entity.Booking, loc *time.Location) *response.StatisticsResponse {
	if loc == nil {
		loc = time.UTC
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	byMonth := make(map[monthKey][]*entity.Booking)
	for _, b := range created {
		at := b.CreatedAt.In(loc)
		key := monthKey{at.Year(), at.Month()}
		byMonth[key] = append(byMonth[key], b)
	}

	byYear := make(map[int][]*entity.Booking)
	for _, b := range checkIns {
		byYear[b.CheckInDate.Year()] = append(byYear[b.CheckInDate.Year()], b)
	}

	resp := &response.StatisticsResponse{
		StartYear:    startYear,
		EndYear:      endYear,
		MonthlyStats: []response.MonthlyStats{},
		YearlyStats:  []response.YearlyStats{},
	}

	monthsWithEntries := make(map[int]int)
	for year := startYear; year <= endYear; year++ {
		for month := time.January; month <= time.December; month++ {
			bookings := byMonth[monthKey{year, month}]
			if len(bookings) == 0 {
				continue
			}
			resp.MonthlyStats = append(resp.MonthlyStats, SummarizeMonth(year, month, bookings))
			monthsWithEntries[year]++
		}
	}

	for year := startYear; year <= endYear; year++ {
		bookings := byYear[year]
		if len(bookings) == 0 {
			continue
		}
		total := sumTotals(bookings)
		resp.YearlyStats = append(resp.YearlyStats, response.YearlyStats{
			Year:                  year,
			TotalBookings:         len(bookings),
			TotalRevenue:          total,
			AverageBookingAmount:  average(total, len(bookings)),
			AverageMonthlyRevenue: average(total, monthsWithEntries[year]),
		})
	}

	return resp
}

func sumTotals(bookings []*entity.Booking) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bookings {
		total = total.Add(b.TotalPrice)
	}
	return total
}

// average divides and rounds half-up to 2 places; zero when n is zero.
func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(n)), 2)
}

// nameCache resolves room and guest names for booking summaries, one lookup per id.
type nameCache struct {
	repo  *repository.Repository
	rooms map[uuid.UUID]string
	users map[uuid.UUID]string
}

func newNameCache(repo *repository.Repository) *nameCache {
	return &nameCache{
		repo:  repo,
		rooms: make(map[uuid.UUID]string),
		users: make(map[uuid.UUID]string),
	}
}

func (c *nameCache) summaries(ctx context.Context, bookings []*entity.Booking) ([]response.BookingSummary, error) {
	out := make([]response.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		roomName, err := c.roomName(ctx, b.RoomID)
		if err != nil {
			return nil, err
		}
		userName, err := c.userName(ctx, b.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, response.BookingSummary{
			ID:           b.ID.String(),
			RoomName:     roomName,
			UserName:     userName,
			CheckInDate:  utils.FormatDate(b.CheckInDate),
			CheckOutDate: utils.FormatDate(b.CheckOutDate),
			Status:       string(b.Status),
		})
	}
	return out, nil
}

func (c *nameCache) roomName(ctx context.Context, id uuid.UUID) (string, error) {
	if name, ok := c.rooms[id]; ok {
		return name, nil
	}
	room, err := c.repo.Room.FindByID(ctx, id)
	if err != nil {
		return "", internalError("get room", err)
	}
	name := ""
	if room != nil {
		name = room.Name
	}
	c.rooms[id] = name
	return name, nil
}

func (c *nameCache) userName(ctx context.Context, id uuid.UUID) (string, error) {
	if name, ok := c.users[id]; ok {
		return name, nil
	}
	user, err := c.repo.User.FindByID(ctx, id)
	if err != nil {
		return "", internalError("get user", err)
	}
	name := ""
	if user != nil {
		name = user.Username
	}
	c.users[id] = name
	return name, nil
}
