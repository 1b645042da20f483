package entity

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	// Kursi di-hold, menunggu payment confirmation sebelum HoldExpiresAt
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	// Hold kadaluarsa tanpa payment. Kursi baru benar-benar kembali ke pool
	// setelah SeatsReleased true; selama masih false sweeper mengulang release.
	RegistrationStatusExpired RegistrationStatus = "expired"
)

// Registration adalah satu registrasi event. AssignedSeats immutable setelah
// dibuat; urutannya dipertahankan supaya receipt konsisten.
type Registration struct {
	BaseNoDelete
	RegistrationID   string             `db:"registration_id"`
	EventID          uuid.UUID          `db:"event_id"`
	ParticipantName  string             `db:"participant_name"`
	Email            string             `db:"email"`
	Phone            string             `db:"phone"`
	ParticipantCount int                `db:"participant_count"`
	AssignedSeats    []int              `db:"assigned_seats"`
	Amount           int64              `db:"amount"`
	Status           RegistrationStatus `db:"status"`
	HoldExpiresAt    *time.Time         `db:"hold_expires_at"`
	ConfirmedAt      *time.Time         `db:"confirmed_at"`
	SeatsReleased    bool               `db:"seats_released"`
}

// SeatAssignment adalah satu baris permanen (event, seat) setelah registrasi
// confirmed. Unique constraint (event_id, seat_number) di DB jadi backstop
// kalau dua writer lolos dari optimistic lock di seat_pools.
type SeatAssignment struct {
	BaseSimple
	EventID        uuid.UUID `db:"event_id"`
	SeatNumber     int       `db:"seat_number"`
	RegistrationID uuid.UUID `db:"registration_id"`
}
