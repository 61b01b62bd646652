package app

import (
	"context"
	"fmt"
	"time"

	"staywise/internal/domain"
)

// CatalogService serves read paths for the hotel catalog, with a
// read-through cache in front of the store.
type CatalogService struct {
	hotels   domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(h domain.HotelRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{hotels: h, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%s", id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

// ListHotels returns the whole catalog ordered by rating.
func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	const key = "hotels:all"
	var out []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := s.hotels.ListHotels(ctx, domain.HotelFilter{})
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// Search is uncached: queries are free-form and rarely repeat.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Hotel, error) {
	return s.hotels.SearchHotels(ctx, query)
}

func (s *CatalogService) Locations(ctx context.Context) ([]domain.LocationCount, error) {
	const key = "locations:all"
	var out []domain.LocationCount
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := s.hotels.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}
