package domain

import "context"

// Counter dimensions as stored in the user_counters table.
const (
	DimHotelType  = "hotel_type"
	DimPriceRange = "price_range"
	DimGroupSize  = "group_size"
	DimAmenity    = "amenity"
)

// CounterKey addresses a single cell of a user's frequency tables.
type CounterKey struct {
	Dimension string
	Value     string
}

// HotelFilter is the catalog query the recommendation strategies build.
// Nil/empty fields impose no constraint. Results are always ordered by
// average rating descending with the catalog's natural ordering (id) as
// the stable secondary key.
type HotelFilter struct {
	HotelTypes   []string // membership
	PriceRanges  []string
	GroupSizes   []string
	AmenitiesAll []string // hotel must carry every listed amenity
	AmenitiesAny []string // hotel must carry at least one
	City         string
	Limit        int // 0 = no cap
}

// IsZero reports whether the filter constrains nothing.
func (f HotelFilter) IsZero() bool {
	return len(f.HotelTypes) == 0 && len(f.PriceRanges) == 0 && len(f.GroupSizes) == 0 &&
		len(f.AmenitiesAll) == 0 && len(f.AmenitiesAny) == 0 && f.City == ""
}

type LocationCount struct {
	Location Location `json:"location"`
	Hotels   int      `json:"hotels"`
}

type HotelRepository interface {
	UpsertHotel(ctx context.Context, h Hotel) error
	GetHotel(ctx context.Context, id string) (Hotel, error)
	// ListHotels executes the filter, sorted by average rating descending.
	ListHotels(ctx context.Context, f HotelFilter) ([]Hotel, error)
	// SearchHotels matches query against name, city, country, amenity,
	// hotel type, price range and group size.
	SearchHotels(ctx context.Context, query string) ([]Hotel, error)
	ListLocations(ctx context.Context) ([]LocationCount, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdatePreferences(ctx context.Context, userID string, p Preferences) error

	GetCounters(ctx context.Context, userID string) (Counters, error)
	// IncrementCounters bumps each key by 1, atomically at the store
	// level, creating absent rows with count 1.
	IncrementCounters(ctx context.Context, userID string, keys []CounterKey) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	// ListUpcoming returns the user's bookings with check-out at or after now.
	ListUpcoming(ctx context.Context, userID string) ([]Booking, error)
	// ListPast returns the user's bookings with check-out before now.
	ListPast(ctx context.Context, userID string) ([]Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
