package pricing

import (
	"fmt"
	"sort"
)

type ActivityID string

const (
	ActivityFootball   ActivityID = "football"
	ActivityCricket    ActivityID = "cricket"
	ActivityBasketball ActivityID = "basketball"
	ActivityBadminton  ActivityID = "badminton"
	ActivityTennis     ActivityID = "tennis"
	ActivityGym        ActivityID = "gym"
	ActivitySwimming   ActivityID = "swimming"
)

// Activity adalah satu entry katalog. Rate dalam rupee utuh.
// PerPersonRate berlaku per session block (2 jam), MembershipFee flat per bulan.
type Activity struct {
	ID            ActivityID
	Name          string
	PerPersonRate int64
	MembershipFee int64
	GuestRate     int64
	MinPlayers    int
	MaxPlayers    int
}

type VenueID string

const (
	VenueChennai   VenueID = "chennai"
	VenueHyderabad VenueID = "hyderabad"
)

type Venue struct {
	ID         VenueID
	Name       string
	NotOffered []ActivityID
}

// catalog statis, immutable setelah init. Divalidasi saat startup
// lewat ValidateCatalog supaya entry yang hilang jadi startup failure,
// bukan silent zero-quote.
var catalog = map[ActivityID]Activity{
	ActivityFootball:   {ID: ActivityFootball, Name: "Football", PerPersonRate: 150, MembershipFee: 1800, GuestRate: 150, MinPlayers: 2, MaxPlayers: 22},
	ActivityCricket:    {ID: ActivityCricket, Name: "Cricket", PerPersonRate: 200, MembershipFee: 2400, GuestRate: 200, MinPlayers: 2, MaxPlayers: 22},
	ActivityBasketball: {ID: ActivityBasketball, Name: "Basketball", PerPersonRate: 150, MembershipFee: 1800, GuestRate: 150, MinPlayers: 2, MaxPlayers: 10},
	ActivityBadminton:  {ID: ActivityBadminton, Name: "Badminton", PerPersonRate: 100, MembershipFee: 1200, GuestRate: 100, MinPlayers: 2, MaxPlayers: 4},
	ActivityTennis:     {ID: ActivityTennis, Name: "Tennis", PerPersonRate: 100, MembershipFee: 1200, GuestRate: 100, MinPlayers: 2, MaxPlayers: 4},
	ActivityGym:        {ID: ActivityGym, Name: "Gym", PerPersonRate: 200, MembershipFee: 2000, GuestRate: 200, MinPlayers: 1, MaxPlayers: 15},
	ActivitySwimming:   {ID: ActivitySwimming, Name: "Swimming", PerPersonRate: 200, MembershipFee: 2000, GuestRate: 200, MinPlayers: 1, MaxPlayers: 15},
}

// Swimming pool dan gym hanya ada di Chennai Central
var venues = map[VenueID]Venue{
	VenueChennai:   {ID: VenueChennai, Name: "Chennai Central"},
	VenueHyderabad: {ID: VenueHyderabad, Name: "Hyderabad Jubilee Hills", NotOffered: []ActivityID{ActivityGym, ActivitySwimming}},
}

// Lookup mencari activity di katalog
func Lookup(id ActivityID) (Activity, bool) {
	a, ok := catalog[id]
	return a, ok
}

// Activities mengembalikan seluruh katalog, urut by ID
func Activities() []Activity {
	result := make([]Activity, 0, len(catalog))
	for _, a := range catalog {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// LookupVenue mencari venue
func LookupVenue(id VenueID) (Venue, bool) {
	v, ok := venues[id]
	return v, ok
}

// Venues mengembalikan seluruh venue, urut by ID
func Venues() []Venue {
	result := make([]Venue, 0, len(venues))
	for _, v := range venues {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// VenueOffers cek apakah activity tersedia di venue
func VenueOffers(venueID VenueID, activityID ActivityID) bool {
	v, ok := venues[venueID]
	if !ok {
		return false
	}
	for _, excluded := range v.NotOffered {
		if excluded == activityID {
			return false
		}
	}
	return true
}

// ValidateCatalog dipanggil saat startup. Semua activity harus punya
// rate positif dan batas pemain yang masuk akal.
func ValidateCatalog() error {
	if len(catalog) == 0 {
		return fmt.Errorf("activity catalog is empty")
	}

	for id, a := range catalog {
		if a.ID != id {
			return fmt.Errorf("activity %s: key does not match entry ID %s", id, a.ID)
		}
		if a.PerPersonRate <= 0 {
			return fmt.Errorf("activity %s: per-person rate must be positive", id)
		}
		if a.MembershipFee <= 0 {
			return fmt.Errorf("activity %s: membership fee must be positive", id)
		}
		if a.GuestRate <= 0 {
			return fmt.Errorf("activity %s: guest rate must be positive", id)
		}
		if a.MinPlayers < 1 || a.MaxPlayers < a.MinPlayers {
			return fmt.Errorf("activity %s: invalid player bounds %d-%d", id, a.MinPlayers, a.MaxPlayers)
		}
	}

	for vid, v := range venues {
		for _, excluded := range v.NotOffered {
			if _, ok := catalog[excluded]; !ok {
				return fmt.Errorf("venue %s excludes unknown activity %s", vid, excluded)
			}
		}
	}

	return nil
}
