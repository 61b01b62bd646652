package main

import (
	"testing"

	"staywise/internal/domain"
)

func TestSeedData_UsersAreWellFormed(t *testing.T) {
	if len(seedUsers) != 10 {
		t.Fatalf("seed users = %d, want 10", len(seedUsers))
	}
	seen := map[string]bool{}
	withPrefs := 0
	for _, su := range seedUsers {
		if su.Email == "" || su.Password == "" || su.Name == "" {
			t.Fatalf("incomplete seed user: %+v", su)
		}
		if seen[su.Email] {
			t.Fatalf("duplicate seed email %s", su.Email)
		}
		seen[su.Email] = true
		if !su.Preferences.IsZero() {
			withPrefs++
		}
	}
	if withPrefs == 0 {
		t.Fatal("want at least one seed user with explicit preferences")
	}
}

func TestSeedData_HotelsUseCanonicalEnums(t *testing.T) {
	if len(seedHotels) < 3 {
		t.Fatalf("seed hotels = %d, want enough to rotate three stays", len(seedHotels))
	}
	for _, h := range seedHotels {
		if _, ok := domain.NormalizeHotelType(h.HotelType); !ok {
			t.Errorf("%s: hotel type %q not canonical", h.Name, h.HotelType)
		}
		if _, ok := domain.NormalizePriceRange(h.PriceRange); !ok {
			t.Errorf("%s: price range %q not canonical", h.Name, h.PriceRange)
		}
		if _, ok := domain.NormalizeGroupSize(h.GroupSize); !ok {
			t.Errorf("%s: group size %q not canonical", h.Name, h.GroupSize)
		}
	}
}

func TestFirstN(t *testing.T) {
	amenities := []string{"pool", "spa", "gym"}
	if got := firstN(amenities, 2); len(got) != 2 || got[0] != "pool" {
		t.Fatalf("firstN(3, 2) = %v", got)
	}
	if got := firstN(amenities[:1], 2); len(got) != 1 {
		t.Fatalf("firstN(1, 2) = %v", got)
	}
	if got := firstN(nil, 2); len(got) != 0 {
		t.Fatalf("firstN(nil, 2) = %v", got)
	}
}
