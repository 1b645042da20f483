package entity

// Event adalah katalog event statis, di-seed sekali dan immutable saat runtime.
// FeePerParticipant dalam rupee; 0 berarti event gratis (langsung confirmed
// tanpa payment step).
type Event struct {
	BaseNoDelete
	Title             string `db:"title"`
	EventDate         string `db:"event_date"`
	Location          string `db:"location"`
	Capacity          int    `db:"capacity"`
	FeePerParticipant int64  `db:"fee_per_participant"`
	RegistrationOpen  bool   `db:"registration_open"`
}
