package response

import (
	"time"

	"arena-hub/internal/data/entity"
	"arena-hub/internal/pricing"
)

type ActivityResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PerPersonRate int64  `json:"per_person_rate"`
	MembershipFee int64  `json:"membership_fee"`
	GuestRate     int64  `json:"guest_rate"`
	MinPlayers    int    `json:"min_players"`
	MaxPlayers    int    `json:"max_players"`
}

type VenueResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	NotOffered []string `json:"not_offered,omitempty"`
}

type BookingResponse struct {
	ID           string               `json:"id"`
	BookingRef   string               `json:"booking_ref"`
	UserID       string               `json:"user_id"`
	Venue        string               `json:"venue"`
	Activity     string               `json:"activity"`
	TariffMode   string               `json:"tariff_mode"`
	PartySize    int                  `json:"party_size"`
	Duration     float64              `json:"duration_hours"`
	BookingDate  string               `json:"booking_date"`
	StartTime    string               `json:"start_time"`
	ContactName  string               `json:"contact_name"`
	Amount       int64                `json:"amount"`
	Currency     string               `json:"currency"`
	Status       entity.BookingStatus `json:"status"`
	Payment      *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Method        string               `json:"method"`
	Amount        int64                `json:"amount"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// Helper converters
func ActivityToResponse(a pricing.Activity) ActivityResponse {
	return ActivityResponse{
		ID:            string(a.ID),
		Name:          a.Name,
		PerPersonRate: a.PerPersonRate,
		MembershipFee: a.MembershipFee,
		GuestRate:     a.GuestRate,
		MinPlayers:    a.MinPlayers,
		MaxPlayers:    a.MaxPlayers,
	}
}

func VenueToResponse(v pricing.Venue) VenueResponse {
	resp := VenueResponse{
		ID:   string(v.ID),
		Name: v.Name,
	}
	for _, a := range v.NotOffered {
		resp.NotOffered = append(resp.NotOffered, string(a))
	}
	return resp
}

func BookingToResponse(booking *entity.Booking, payment *PaymentResponse) BookingResponse {
	return BookingResponse{
		ID:          booking.ID.String(),
		BookingRef:  booking.BookingRef,
		UserID:      booking.UserID.String(),
		Venue:       booking.Venue,
		Activity:    booking.Activity,
		TariffMode:  booking.TariffMode,
		PartySize:   booking.PartySize,
		Duration:    booking.DurationHours,
		BookingDate: booking.BookingDate.Format("2006-01-02"),
		StartTime:   booking.StartTime,
		ContactName: booking.ContactName,
		Amount:      booking.Amount,
		Currency:    "INR",
		Status:      booking.Status,
		Payment:     payment,
		CreatedAt:   booking.CreatedAt,
	}
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		Method:        string(payment.Method),
		Amount:        payment.Amount,
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
	}
}
