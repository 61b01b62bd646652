package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"staywise/internal/adapters/observability"
	"staywise/internal/domain"
)

// A learned signal only drives ranking once its counter reaches this
// value; anything below it is treated as noise.
const signalThreshold = 5

// Per dimension, at most this many of the strongest values constrain
// the catalog query.
const topPerDimension = 3

// Strategy labels (also the metric label values).
const (
	StrategyPreferenceMatch    = "preference_match"
	StrategyTypeAffinity       = "type_affinity"
	StrategyAmenityAffinity    = "amenity_affinity"
	StrategyLocationPopularity = "location_popularity"
)

// Engine ranks catalog hotels for a user. It picks exactly one of four
// strategies per call: explicit preferences always win; otherwise the
// strongest learned signal decides between type/price/group affinity,
// amenity affinity, and the cold-start city fallback.
type Engine struct {
	users  domain.UserRepository
	hotels domain.HotelRepository
}

func NewEngine(users domain.UserRepository, hotels domain.HotelRepository) *Engine {
	return &Engine{users: users, hotels: hotels}
}

// Recommend returns the ranked hotel list for userID. An unknown or
// empty user id yields an empty list and no error; catalog failures
// propagate so the caller can fall back to a cached or empty list.
func (e *Engine) Recommend(ctx context.Context, userID string) ([]domain.Hotel, error) {
	if userID == "" {
		return nil, nil
	}
	user, err := e.users.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	strategy, filter, err := e.selectStrategy(ctx, user)
	if err != nil {
		return nil, err
	}
	observability.ObserveRecommendation(strategy)

	return e.hotels.ListHotels(ctx, filter)
}

// selectStrategy evaluates the tiers in fixed order: explicit
// preferences, then the threshold check across all four counter maps,
// then the amenity-vs-category maximum comparison (amenity wins ties).
// A cold-start user with no city gets an unconstrained filter, so the
// whole catalog comes back rating-sorted rather than an empty page.
func (e *Engine) selectStrategy(ctx context.Context, user domain.User) (string, domain.HotelFilter, error) {
	if !user.Preferences.IsZero() {
		return StrategyPreferenceMatch, preferenceFilter(user.Preferences), nil
	}

	counters, err := e.users.GetCounters(ctx, user.ID)
	if err != nil {
		return "", domain.HotelFilter{}, err
	}

	catMax, amenMax := counters.MaxCategory(), counters.MaxAmenity()
	if catMax < signalThreshold && amenMax < signalThreshold {
		return StrategyLocationPopularity, domain.HotelFilter{City: user.City}, nil
	}
	if amenMax >= catMax {
		return StrategyAmenityAffinity, amenityFilter(counters), nil
	}
	return StrategyTypeAffinity, typeFilter(counters), nil
}

func preferenceFilter(p domain.Preferences) domain.HotelFilter {
	var f domain.HotelFilter
	if p.HotelType != "" {
		f.HotelTypes = []string{p.HotelType}
	}
	if p.PriceRange != "" {
		f.PriceRanges = []string{p.PriceRange}
	}
	if p.GroupSize != "" {
		f.GroupSizes = []string{p.GroupSize}
	}
	// Explicit amenity preferences are a hard requirement: every listed
	// amenity must be present.
	f.AmenitiesAll = append(f.AmenitiesAll, p.Amenities...)
	return f
}

func typeFilter(c domain.Counters) domain.HotelFilter {
	return domain.HotelFilter{
		HotelTypes:  strongestValues(c.HotelType),
		PriceRanges: strongestValues(c.PriceRange),
		GroupSizes:  strongestValues(c.GroupSize),
	}
}

func amenityFilter(c domain.Counters) domain.HotelFilter {
	// Match-any: one shared strong amenity is enough.
	return domain.HotelFilter{AmenitiesAny: strongestValues(c.Amenities)}
}

// Recommender wraps the engine with a per-user cache: successful runs
// refresh the cached list, and a failed run serves the last cached list
// instead of the error, so browsing degrades instead of breaking.
type Recommender struct {
	engine   *Engine
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewRecommender(engine *Engine, cache domain.Cache, ttl time.Duration) *Recommender {
	return &Recommender{engine: engine, cache: cache, cacheTTL: ttl}
}

func (r *Recommender) Recommend(ctx context.Context, userID string) ([]domain.Hotel, error) {
	key := fmt.Sprintf("recs:%s", userID)
	hotels, err := r.engine.Recommend(ctx, userID)
	if err != nil {
		var cached []domain.Hotel
		if ok, _ := r.cache.Get(ctx, key, &cached); ok {
			log.Warn().Err(err).Str("user_id", userID).
				Msg("recommendation failed, serving cached list")
			return cached, nil
		}
		return nil, err
	}
	_ = r.cache.Set(ctx, key, hotels, int(r.cacheTTL.Seconds()))
	return hotels, nil
}

// strongestValues picks the values at or above the threshold, ordered by
// count descending, capped at topPerDimension. Equal counts order by
// value so repeated calls are deterministic despite map iteration.
func strongestValues(counts map[string]int) []string {
	var vals []string
	for v, n := range counts {
		if n >= signalThreshold {
			vals = append(vals, v)
		}
	}
	sort.Slice(vals, func(i, j int) bool {
		if counts[vals[i]] != counts[vals[j]] {
			return counts[vals[i]] > counts[vals[j]]
		}
		return vals[i] < vals[j]
	})
	if len(vals) > topPerDimension {
		vals = vals[:topPerDimension]
	}
	return vals
}
