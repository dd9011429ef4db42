package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, repo *repository.Repository, log *zap.Logger) {
	authenticated(r, repo, log).Get("/api/user/profile", userHandler.GetProfile)

	admin := adminOnly(r, repo, log)
	admin.Get("/api/admin/users", userHandler.GetAllUsers) // ?page=1&per_page=10
	admin.Delete("/api/admin/users/{id}", userHandler.DeleteUser)
}
