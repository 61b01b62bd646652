package domain

// Preferences is the explicit preference block a user sets through the
// settings screen. Every field is optional; empty means "no constraint".
type Preferences struct {
	HotelType  string   `json:"hotelType,omitempty"`
	PriceRange string   `json:"priceRange,omitempty"`
	GroupSize  string   `json:"groupSize,omitempty"`
	Amenities  []string `json:"amenities,omitempty"`
}

// IsZero reports whether the user has set no explicit preference at all.
func (p Preferences) IsZero() bool {
	return p.HotelType == "" && p.PriceRange == "" && p.GroupSize == "" && len(p.Amenities) == 0
}

// Counters are the per-user learned-signal frequency tables: for each of
// the four category dimensions, how often each value has appeared among
// the user's booked hotels. Values are monotonically non-decreasing and
// only ever keyed by values actually observed on a booked hotel.
type Counters struct {
	HotelType  map[string]int `json:"hotelType"`
	PriceRange map[string]int `json:"priceRange"`
	GroupSize  map[string]int `json:"groupSize"`
	Amenities  map[string]int `json:"amenities"`
}

// Max returns the largest count across the given maps (0 when all empty).
func maxCount(ms ...map[string]int) int {
	best := 0
	for _, m := range ms {
		for _, n := range m {
			if n > best {
				best = n
			}
		}
	}
	return best
}

// MaxCategory is the highest count among the hotel-type, price-range and
// group-size tables.
func (c Counters) MaxCategory() int {
	return maxCount(c.HotelType, c.PriceRange, c.GroupSize)
}

// MaxAmenity is the highest count in the amenity table.
func (c Counters) MaxAmenity() int {
	return maxCount(c.Amenities)
}

type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	City         string      `json:"city"`
	Country      string      `json:"country"`
	Preferences  Preferences `json:"preferences"`
}

// SafeUser is the session-facing projection of a User (no credentials).
type SafeUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

func (u User) Safe() SafeUser {
	return SafeUser{ID: u.ID, Name: u.Name, Email: u.Email, City: u.City}
}
