package request

// QuoteRequest untuk hitung harga live sebelum submit. Party size dan duration
// boleh kosong/nol - pricing engine akan balas zero quote, bukan error.
type QuoteRequest struct {
	Activity   string  `json:"activity" validate:"required"`
	TariffMode string  `json:"tariff_mode" validate:"required,oneof=pay_per_use membership"`
	PartySize  int     `json:"party_size"`
	Duration   float64 `json:"duration_hours"`
}

type CreateBookingRequest struct {
	Venue        string  `json:"venue" validate:"required,oneof=chennai hyderabad"`
	Activity     string  `json:"activity" validate:"required"`
	TariffMode   string  `json:"tariff_mode" validate:"required,oneof=pay_per_use membership"`
	PartySize    int     `json:"party_size" validate:"required,min=1"`
	Duration     float64 `json:"duration_hours" validate:"required,gt=0"`
	BookingDate  string  `json:"booking_date" validate:"required"`
	StartTime    string  `json:"start_time" validate:"required"`
	ContactName  string  `json:"contact_name" validate:"required,min=2,max=50"`
	ContactEmail string  `json:"contact_email" validate:"required,email"`
	ContactPhone string  `json:"contact_phone" validate:"required,min=10,max=15"`
}

type ProcessPaymentRequest struct {
	BookingID     string  `json:"booking_id" validate:"required,uuid4"`
	Method        string  `json:"method" validate:"required,oneof=card upi netbanking"`
	Amount        int64   `json:"amount" validate:"required,min=1"`
	TransactionID *string `json:"transaction_id,omitempty"`
}
