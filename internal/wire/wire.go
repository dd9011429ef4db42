package wire

import (
	"fmt"
	"net/http"

	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds the hotel policy, services, handlers and router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	policy, err := usecase.NewPolicy(config.Hotel)
	if err != nil {
		return nil, fmt.Errorf("build hotel policy: %w", err)
	}

	logger.Info("Hotel policy loaded",
		zap.String("timezone", policy.Location.String()),
		zap.Int("cancellation_cutoff_days", policy.CancellationCutoffDays),
		zap.Int("review_window_months", policy.ReviewWindowMonths),
		zap.Bool("strict_transitions", policy.StrictTransitions),
	)

	service := usecase.NewService(repo, policy, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, repo, logger),
	}, nil
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireRoom(r, handler.Room, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wirePayment(r, handler.Payment, repo, logger)
	wireReview(r, handler.Review, repo, logger)
	wireDashboard(r, handler.Dashboard, repo, logger)
	wireUser(r, handler.User, repo, logger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

func authenticated(r chi.Router, repo *repository.Repository, log *zap.Logger) chi.Router {
	return r.With(middleware.AuthSession(repo.Session, log))
}

func adminOnly(r chi.Router, repo *repository.Repository, log *zap.Logger) chi.Router {
	return r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(repo.User, log),
	)
}
