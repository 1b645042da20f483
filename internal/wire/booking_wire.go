package wire

import (
	"arena-hub/internal/adaptor"
	"arena-hub/internal/data/repository"
	"arena-hub/pkg/middleware"
	"arena-hub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Katalog activity & venue plus live quote, tanpa auth
	r.Get("/api/activities", bookingHandler.GetActivities)
	r.Get("/api/venues", bookingHandler.GetVenues)
	r.Post("/api/quote", bookingHandler.Quote)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/booking - Create new facility booking
		r.Post("/api/booking", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// GET /api/booking/{ref} - Lookup own booking by receipt reference
		r.Get("/api/booking/{ref}", bookingHandler.GetBookingByRef)

		// POST /api/pay - Process payment for booking
		r.Post("/api/pay", bookingHandler.ProcessPayment)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/bookings/{id} - View any booking details (admin)
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PUT /api/admin/bookings/{id}/cancel - Cancel any booking (admin)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
