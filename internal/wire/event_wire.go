package wire

import (
	"arena-hub/internal/adaptor"
	"arena-hub/internal/data/repository"
	"arena-hub/pkg/middleware"
	"arena-hub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Registrasi event terbuka tanpa akun, cukup data kontak
	r.Get("/api/events", eventHandler.ListEvents)
	r.Get("/api/events/{id}/availability", eventHandler.GetAvailability)
	r.Post("/api/events/{id}/register", eventHandler.Register)
	r.Post("/api/registrations/{registrationId}/confirm", eventHandler.ConfirmRegistration)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/registrations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/registrations - List all event registrations (admin)
		r.Get("/", eventHandler.ListRegistrations)
	})
}
