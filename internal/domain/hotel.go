package domain

import "strings"

// Canonical category values. Stored rows from older schema revisions use
// inconsistent casing and a few legacy aliases; the Normalize helpers map
// raw strings onto this closed set at the store-read boundary.
const (
	TypeResort    = "Resort"
	TypeBoutique  = "Boutique"
	TypeBusiness  = "Business"
	TypeFamily    = "Family"
	TypeHostel    = "Hostel"
	TypeApartment = "Apartment"
	TypeBudget    = "Budget"

	PriceEconomic = "economic"
	PriceMedium   = "medium"
	PriceLuxury   = "luxury"

	GroupSolo   = "Solo"
	GroupCouple = "Couple"
	GroupFamily = "Family"
	GroupGroup  = "Group"
)

type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	HotelType     string   `json:"hotelType"`
	PriceRange    string   `json:"priceRange"`
	GroupSize     string   `json:"groupSize"`
	Amenities     []string `json:"amenities"`
	Location      Location `json:"location"`
	PricePerNight float64  `json:"pricePerNight"`
	AverageRating float64  `json:"averageRating"`
	ImageURL      string   `json:"imageUrl,omitempty"`
}

// HasAmenity reports whether the hotel's amenity set contains a.
func (h Hotel) HasAmenity(a string) bool {
	for _, x := range h.Amenities {
		if x == a {
			return true
		}
	}
	return false
}

var hotelTypes = map[string]string{
	"resort":    TypeResort,
	"boutique":  TypeBoutique,
	"business":  TypeBusiness,
	"family":    TypeFamily,
	"hostel":    TypeHostel,
	"apartment": TypeApartment,
	"budget":    TypeBudget,
}

var priceRanges = map[string]string{
	"economic":  PriceEconomic,
	"low":       PriceEconomic, // legacy enum value
	"medium":    PriceMedium,
	"luxury":    PriceLuxury,
	"expensive": PriceLuxury, // legacy enum value
	"high":      PriceLuxury,
}

var groupSizes = map[string]string{
	"solo":   GroupSolo,
	"couple": GroupCouple,
	"family": GroupFamily,
	"group":  GroupGroup,
}

// NormalizeHotelType maps a raw stored string onto the canonical hotel
// type. ok is false for unknown values; callers treat that as a
// data-quality problem and skip the dimension rather than defaulting.
func NormalizeHotelType(raw string) (string, bool) {
	v, ok := hotelTypes[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

func NormalizePriceRange(raw string) (string, bool) {
	v, ok := priceRanges[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

func NormalizeGroupSize(raw string) (string, bool) {
	v, ok := groupSizes[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

// NormalizeAmenity canonicalizes an amenity tag (lower-cased, trimmed).
// Amenities are an open set, so any non-empty tag is accepted.
func NormalizeAmenity(raw string) (string, bool) {
	a := strings.ToLower(strings.TrimSpace(raw))
	return a, a != ""
}
