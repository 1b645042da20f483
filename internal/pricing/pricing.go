package pricing

import (
	"errors"
	"math"
)

// SessionBlockHours adalah unit billing: base rate mencakup blok 2 jam,
// sisa jam dibulatkan ke atas ke blok penuh.
const SessionBlockHours = 2.0

type TariffMode string

const (
	ModePayPerUse  TariffMode = "pay_per_use"
	ModeMembership TariffMode = "membership"
)

var (
	// ErrUnknownActivity berarti activity tidak ada di katalog.
	// Caller harus fallback ke zero quote, jangan crash.
	ErrUnknownActivity = errors.New("unknown activity")

	// ErrNoQuote berarti input belum lengkap (party size / duration belum valid).
	// Bukan fault - caller menampilkan "belum ada quote".
	ErrNoQuote = errors.New("insufficient input for quote")

	// ErrUnknownMode berarti tariff mode di luar enum
	ErrUnknownMode = errors.New("unknown tariff mode")
)

// Quote adalah hasil perhitungan harga. Nilai terstruktur, bukan string
// terformat - currency formatting urusan presentasi.
type Quote struct {
	Activity   ActivityID `json:"activity"`
	Mode       TariffMode `json:"mode"`
	PartySize  int        `json:"party_size"`
	Duration   float64    `json:"duration_hours"`
	Blocks     int        `json:"blocks"`
	BaseAmount int64      `json:"base_amount"`
	GuestTotal int64      `json:"guest_total"`
	Total      int64      `json:"total"`
	Currency   string     `json:"currency"`
}

// ZeroQuote adalah fallback saat input belum lengkap atau activity tidak dikenal
func ZeroQuote(activityID ActivityID, mode TariffMode) Quote {
	return Quote{
		Activity: activityID,
		Mode:     mode,
		Currency: "INR",
	}
}

// Blocks menghitung jumlah session block: ceil(duration / 2 jam)
func Blocks(durationHours float64) int {
	return int(math.Ceil(durationHours / SessionBlockHours))
}

// Compute menghitung quote secara deterministik tanpa side effect.
//
// Pay-per-use: rate x partySize x blocks.
// Membership:  flat monthly fee + guestRate x (partySize-1) x blocks.
// Fee membership TIDAK ikut blocks, hanya porsi guest yang ikut.
//
// partySize di atas MaxPlayers tidak di-reject di sini - itu tanggung jawab
// caller untuk clamp/validate sebelumnya. Fungsi ini tetap menghasilkan angka
// yang stabil dan monotonic untuk semua partySize positif.
func Compute(activityID ActivityID, mode TariffMode, partySize int, durationHours float64) (Quote, error) {
	activity, ok := Lookup(activityID)
	if !ok {
		return ZeroQuote(activityID, mode), ErrUnknownActivity
	}

	if partySize <= 0 || durationHours <= 0 || math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		return ZeroQuote(activityID, mode), ErrNoQuote
	}

	blocks := Blocks(durationHours)

	quote := Quote{
		Activity:  activityID,
		Mode:      mode,
		PartySize: partySize,
		Duration:  durationHours,
		Blocks:    blocks,
		Currency:  "INR",
	}

	switch mode {
	case ModePayPerUse:
		quote.BaseAmount = activity.PerPersonRate * int64(partySize) * int64(blocks)
		quote.Total = quote.BaseAmount

	case ModeMembership:
		quote.BaseAmount = activity.MembershipFee
		guests := partySize - 1
		if guests > 0 {
			quote.GuestTotal = activity.GuestRate * int64(guests) * int64(blocks)
		}
		quote.Total = quote.BaseAmount + quote.GuestTotal

	default:
		return ZeroQuote(activityID, mode), ErrUnknownMode
	}

	return quote, nil
}
