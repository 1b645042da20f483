package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking adalah booking fasilitas olahraga (bukan registrasi event).
// Amount adalah hasil quote saat submit, dalam rupee utuh.
type Booking struct {
	BaseNoDelete
	BookingRef    string        `db:"booking_ref"`
	UserID        uuid.UUID     `db:"user_id"`
	Venue         string        `db:"venue"`
	Activity      string        `db:"activity"`
	TariffMode    string        `db:"tariff_mode"`
	PartySize     int           `db:"party_size"`
	DurationHours float64       `db:"duration_hours"`
	BookingDate   time.Time     `db:"booking_date"`
	StartTime     string        `db:"start_time"`
	ContactName   string        `db:"contact_name"`
	ContactEmail  string        `db:"contact_email"`
	ContactPhone  string        `db:"contact_phone"`
	Amount        int64         `db:"amount"`
	Status        BookingStatus `db:"status"`
}
