package usecase

import "errors"

// Sentinel errors untuk mapping ke HTTP status di adaptor layer.
var (
	// ErrCapacityExceeded berarti sisa kursi event kurang dari jumlah yang
	// diminta. Tidak ada kursi yang alloc sebagian - all or nothing.
	ErrCapacityExceeded = errors.New("not enough seats available")

	// ErrAllocationContention berarti optimistic lock kalah terus sampai
	// batas retry. Transient - client boleh coba ulang.
	ErrAllocationContention = errors.New("seat allocation contention, please retry")

	ErrUnknownEvent         = errors.New("event not found")
	ErrRegistrationClosed   = errors.New("registration is closed for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrHoldExpired          = errors.New("registration hold has expired")

	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking does not belong to user")
	ErrPaymentDeclined  = errors.New("payment was declined")
	ErrAmountMismatch   = errors.New("payment amount does not match booking total")
	ErrVenueNotOffering = errors.New("activity not offered at this venue")
)
