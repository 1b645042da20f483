package repository

import (
	"errors"

	"arena-hub/pkg/database"

	"go.uber.org/zap"
)

var (
	// ErrVersionConflict berarti compare-and-swap di seat_pools gagal karena
	// version sudah bergeser. Caller harus re-read dan retry.
	ErrVersionConflict = errors.New("seat pool version conflict")

	// ErrSeatConflict berarti unique constraint (event_id, seat_number) kena -
	// race yang lolos optimistic lock terdeteksi di DB level.
	ErrSeatConflict = errors.New("seat already assigned for event")

	// ErrNotPending berarti update bersyarat status='pending' kena 0 rows -
	// registrasi sudah di-confirm atau di-expire oleh writer lain.
	ErrNotPending = errors.New("registration not pending")
)

type Repository struct {
	User           UserRepository
	Session        SessionRepository
	Booking        BookingRepository
	Payment        PaymentRepository
	Event          EventRepository
	SeatPool       SeatPoolRepository
	Registration   RegistrationRepository
	SeatAssignment SeatAssignmentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:           NewUserRepository(db, log),
		Session:        NewSessionRepository(db, log),
		Booking:        NewBookingRepository(db, log),
		Payment:        NewPaymentRepository(db, log),
		Event:          NewEventRepository(db, log),
		SeatPool:       NewSeatPoolRepository(db, log),
		Registration:   NewRegistrationRepository(db, log),
		SeatAssignment: NewSeatAssignmentRepository(db, log),
	}
}
