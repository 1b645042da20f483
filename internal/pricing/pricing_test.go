package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestBlocksRoundsUp(t *testing.T) {
	cases := []struct {
		duration float64
		want     int
	}{
		{0.5, 1},
		{1, 1},
		{2, 1},
		{2.5, 2},
		{3, 2},
		{4, 2},
		{4.1, 3},
		{6, 3},
	}

	for _, tc := range cases {
		if got := Blocks(tc.duration); got != tc.want {
			t.Errorf("Blocks(%v) = %d, want %d", tc.duration, got, tc.want)
		}
	}
}

func TestComputePayPerUse(t *testing.T) {
	// Badminton 100/blok/orang: 4 orang x 3 jam (2 blok) = 800
	quote, err := Compute(ActivityBadminton, ModePayPerUse, 4, 3)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if quote.Blocks != 2 {
		t.Errorf("blocks = %d, want 2", quote.Blocks)
	}
	if quote.Total != 800 {
		t.Errorf("total = %d, want 800", quote.Total)
	}
	if quote.Currency != "INR" {
		t.Errorf("currency = %q, want INR", quote.Currency)
	}
}

func TestComputeMembershipFlatFee(t *testing.T) {
	// Gym membership solo: fee flat 2000, tidak peduli berapa blok
	q2, err := Compute(ActivityGym, ModeMembership, 1, 2)
	if err != nil {
		t.Fatalf("Compute 2h: %v", err)
	}
	q4, err := Compute(ActivityGym, ModeMembership, 1, 4)
	if err != nil {
		t.Fatalf("Compute 4h: %v", err)
	}

	if q2.Total != 2000 || q4.Total != 2000 {
		t.Errorf("membership fee should not scale with blocks: got %d and %d", q2.Total, q4.Total)
	}
}

func TestComputeMembershipGuestsScaleWithBlocks(t *testing.T) {
	// Football membership 3 orang 2 jam: 1800 + 150x2x1 = 2100
	quote, err := Compute(ActivityFootball, ModeMembership, 3, 2)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if quote.BaseAmount != 1800 {
		t.Errorf("base = %d, want 1800", quote.BaseAmount)
	}
	if quote.GuestTotal != 300 {
		t.Errorf("guest total = %d, want 300", quote.GuestTotal)
	}
	if quote.Total != 2100 {
		t.Errorf("total = %d, want 2100", quote.Total)
	}

	// 4 jam (2 blok): hanya porsi guest yang naik
	quote4, err := Compute(ActivityFootball, ModeMembership, 3, 4)
	if err != nil {
		t.Fatalf("Compute 4h: %v", err)
	}
	if quote4.Total != 1800+600 {
		t.Errorf("total 4h = %d, want 2400", quote4.Total)
	}
}

func TestComputeUnknownActivity(t *testing.T) {
	quote, err := Compute("curling", ModePayPerUse, 4, 2)
	if !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("err = %v, want ErrUnknownActivity", err)
	}
	if quote.Total != 0 {
		t.Errorf("zero quote expected, got total %d", quote.Total)
	}
}

func TestComputeIncompleteInput(t *testing.T) {
	cases := []struct {
		name      string
		partySize int
		duration  float64
	}{
		{"zero party", 0, 2},
		{"negative party", -3, 2},
		{"zero duration", 4, 0},
		{"negative duration", 4, -1},
		{"nan duration", 4, math.NaN()},
		{"inf duration", 4, math.Inf(1)},
	}

	for _, tc := range cases {
		quote, err := Compute(ActivityTennis, ModePayPerUse, tc.partySize, tc.duration)
		if !errors.Is(err, ErrNoQuote) {
			t.Errorf("%s: err = %v, want ErrNoQuote", tc.name, err)
		}
		if quote.Total != 0 {
			t.Errorf("%s: zero quote expected, got %d", tc.name, quote.Total)
		}
	}
}

func TestComputeUnknownMode(t *testing.T) {
	_, err := Compute(ActivityTennis, "hourly", 2, 2)
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("err = %v, want ErrUnknownMode", err)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	first, err := Compute(ActivityCricket, ModePayPerUse, 11, 5)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Compute(ActivityCricket, ModePayPerUse, 11, 5)
		if err != nil {
			t.Fatalf("Compute repeat: %v", err)
		}
		if again != first {
			t.Fatalf("quote changed between calls: %+v vs %+v", first, again)
		}
	}
}

func TestValidateCatalog(t *testing.T) {
	if err := ValidateCatalog(); err != nil {
		t.Fatalf("catalog should be valid: %v", err)
	}
}

func TestVenueOffers(t *testing.T) {
	if !VenueOffers(VenueChennai, ActivitySwimming) {
		t.Error("chennai should offer swimming")
	}
	if VenueOffers(VenueHyderabad, ActivitySwimming) {
		t.Error("hyderabad should not offer swimming")
	}
	if VenueOffers(VenueHyderabad, ActivityGym) {
		t.Error("hyderabad should not offer gym")
	}
	if !VenueOffers(VenueHyderabad, ActivityCricket) {
		t.Error("hyderabad should offer cricket")
	}
	if VenueOffers("mumbai", ActivityCricket) {
		t.Error("unknown venue should offer nothing")
	}
}
