package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"staywise/internal/domain"
)

// Accumulator maintains the per-user frequency tables the recommendation
// engine learns from. It is called exactly once per created booking.
type Accumulator struct {
	users domain.UserRepository
}

func NewAccumulator(users domain.UserRepository) *Accumulator {
	return &Accumulator{users: users}
}

// RecordBooking bumps the user's counter for the booked hotel's type,
// price range and group size, and for each of its amenities, by exactly
// one. Unmappable hotel fields skip their dimension. Persistence errors
// are logged and swallowed: booking creation must never fail because
// recommendation bookkeeping did.
func (a *Accumulator) RecordBooking(ctx context.Context, userID string, h domain.Hotel) {
	keys := counterKeys(h)
	if len(keys) == 0 {
		return
	}
	if err := a.users.IncrementCounters(ctx, userID, keys); err != nil {
		log.Error().Err(err).
			Str("user_id", userID).
			Str("hotel_id", h.ID).
			Msg("recommendation counter update failed")
	}
}

func counterKeys(h domain.Hotel) []domain.CounterKey {
	var keys []domain.CounterKey

	add := func(dim, raw string, normalize func(string) (string, bool)) {
		if raw == "" {
			return
		}
		v, ok := normalize(raw)
		if !ok {
			log.Warn().Str("hotel_id", h.ID).Str("dimension", dim).Str("value", raw).
				Msg("unmapped category value, skipping dimension")
			return
		}
		keys = append(keys, domain.CounterKey{Dimension: dim, Value: v})
	}

	add(domain.DimHotelType, h.HotelType, domain.NormalizeHotelType)
	add(domain.DimPriceRange, h.PriceRange, domain.NormalizePriceRange)
	add(domain.DimGroupSize, h.GroupSize, domain.NormalizeGroupSize)
	for _, am := range h.Amenities {
		add(domain.DimAmenity, am, domain.NormalizeAmenity)
	}
	return keys
}
