package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"staywise/internal/app"
	"staywise/internal/domain"
)

// ---- fakes ----

type fakeUsers struct {
	users        map[string]domain.User
	counters     map[string]domain.Counters
	countersErr  error
	incrementErr error
	increments   [][]domain.CounterKey
	counterCalls int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]domain.User{}, counters: map[string]domain.Counters{}}
}

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) UpdatePreferences(ctx context.Context, userID string, p domain.Preferences) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Preferences = p
	f.users[userID] = u
	return nil
}

func (f *fakeUsers) GetCounters(ctx context.Context, userID string) (domain.Counters, error) {
	f.counterCalls++
	if f.countersErr != nil {
		return domain.Counters{}, f.countersErr
	}
	c, ok := f.counters[userID]
	if !ok {
		return emptyCounters(), nil
	}
	return c, nil
}

func (f *fakeUsers) IncrementCounters(ctx context.Context, userID string, keys []domain.CounterKey) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.increments = append(f.increments, keys)
	c, ok := f.counters[userID]
	if !ok {
		c = emptyCounters()
	}
	for _, k := range keys {
		switch k.Dimension {
		case domain.DimHotelType:
			c.HotelType[k.Value]++
		case domain.DimPriceRange:
			c.PriceRange[k.Value]++
		case domain.DimGroupSize:
			c.GroupSize[k.Value]++
		case domain.DimAmenity:
			c.Amenities[k.Value]++
		}
	}
	f.counters[userID] = c
	return nil
}

func emptyCounters() domain.Counters {
	return domain.Counters{
		HotelType:  map[string]int{},
		PriceRange: map[string]int{},
		GroupSize:  map[string]int{},
		Amenities:  map[string]int{},
	}
}

type fakeHotels struct {
	hotels     []domain.Hotel
	listErr    error
	lastFilter domain.HotelFilter
	listCalls  int
}

func (f *fakeHotels) UpsertHotel(ctx context.Context, h domain.Hotel) error { return nil }

func (f *fakeHotels) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (f *fakeHotels) ListHotels(ctx context.Context, q domain.HotelFilter) ([]domain.Hotel, error) {
	f.listCalls++
	f.lastFilter = q
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.hotels, nil
}

func (f *fakeHotels) SearchHotels(ctx context.Context, query string) ([]domain.Hotel, error) {
	return f.hotels, nil
}

func (f *fakeHotels) ListLocations(ctx context.Context) ([]domain.LocationCount, error) {
	return nil, nil
}

type fakeCache struct {
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// ---- helpers ----

func seedUser(f *fakeUsers, id, city string, prefs domain.Preferences, counters domain.Counters) {
	f.users[id] = domain.User{ID: id, Name: id, Email: id + "@example.com", City: city, Preferences: prefs}
	if counters.HotelType != nil || counters.Amenities != nil {
		f.counters[id] = counters
	}
}

func countersWith(types, prices, groups, amenities map[string]int) domain.Counters {
	c := emptyCounters()
	for k, v := range types {
		c.HotelType[k] = v
	}
	for k, v := range prices {
		c.PriceRange[k] = v
	}
	for k, v := range groups {
		c.GroupSize[k] = v
	}
	for k, v := range amenities {
		c.Amenities[k] = v
	}
	return c
}

// ---- tests ----

func TestRecommend_UnknownUserYieldsEmptyList(t *testing.T) {
	users := newFakeUsers()
	hotels := &fakeHotels{hotels: []domain.Hotel{{ID: "h1"}}}
	e := app.NewEngine(users, hotels)

	got, err := e.Recommend(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d hotels", len(got))
	}
	if hotels.listCalls != 0 {
		t.Fatalf("catalog should not be queried for unknown users")
	}
}

func TestRecommend_ExplicitPreferencesBeatCounters(t *testing.T) {
	users := newFakeUsers()
	// counters strong enough to trigger amenity affinity, but explicit
	// preferences must still win
	seedUser(users, "u1", "Lima",
		domain.Preferences{HotelType: domain.TypeResort},
		countersWith(nil, nil, nil, map[string]int{"pool": 9}))
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	want := domain.HotelFilter{HotelTypes: []string{domain.TypeResort}}
	if !reflect.DeepEqual(hotels.lastFilter, want) {
		t.Fatalf("filter = %+v, want %+v", hotels.lastFilter, want)
	}
	if users.counterCalls != 0 {
		t.Fatalf("counters should not be read when explicit preferences exist")
	}
}

func TestRecommend_PreferenceMatchUsesOnlySetFields(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Lima", domain.Preferences{
		PriceRange: domain.PriceLuxury,
		Amenities:  []string{"pool", "spa"},
	}, domain.Counters{})
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	f := hotels.lastFilter
	if len(f.HotelTypes) != 0 || len(f.GroupSizes) != 0 {
		t.Fatalf("unset fields must impose no constraint: %+v", f)
	}
	if !reflect.DeepEqual(f.PriceRanges, []string{domain.PriceLuxury}) {
		t.Fatalf("price filter = %v", f.PriceRanges)
	}
	if !reflect.DeepEqual(f.AmenitiesAll, []string{"pool", "spa"}) {
		t.Fatalf("amenity filter should require all preferred amenities: %v", f.AmenitiesAll)
	}
}

func TestRecommend_ColdStartFallsBackToCity(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Cancún", domain.Preferences{}, emptyCounters())
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	f := hotels.lastFilter
	if f.City != "Cancún" {
		t.Fatalf("expected city filter Cancún, got %+v", f)
	}
	if len(f.HotelTypes) != 0 || len(f.AmenitiesAny) != 0 || len(f.AmenitiesAll) != 0 {
		t.Fatalf("cold start must constrain only the city: %+v", f)
	}
}

func TestRecommend_ThresholdBoundary(t *testing.T) {
	// 4 does not qualify, 5 does
	users := newFakeUsers()
	seedUser(users, "u4", "Lima", domain.Preferences{},
		countersWith(map[string]int{domain.TypeResort: 4}, nil, nil, nil))
	seedUser(users, "u5", "Lima", domain.Preferences{},
		countersWith(map[string]int{domain.TypeResort: 5}, nil, nil, nil))
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u4"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if hotels.lastFilter.City != "Lima" || len(hotels.lastFilter.HotelTypes) != 0 {
		t.Fatalf("count 4 must fall back to location: %+v", hotels.lastFilter)
	}

	if _, err := e.Recommend(context.Background(), "u5"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(hotels.lastFilter.HotelTypes, []string{domain.TypeResort}) {
		t.Fatalf("count 5 must qualify for type affinity: %+v", hotels.lastFilter)
	}
}

func TestRecommend_TypeAffinityFiltersQualifyingValuesOnly(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Lima", domain.Preferences{},
		countersWith(
			map[string]int{domain.TypeResort: 6, domain.TypeBoutique: 2},
			nil, nil,
			map[string]int{"pool": 3}))
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	f := hotels.lastFilter
	if !reflect.DeepEqual(f.HotelTypes, []string{domain.TypeResort}) {
		t.Fatalf("only Resort qualifies: %+v", f)
	}
	if len(f.PriceRanges) != 0 || len(f.GroupSizes) != 0 {
		t.Fatalf("dimensions with no qualifying value must be unconstrained: %+v", f)
	}
}

func TestRecommend_TypeAffinityCapsAtTopThree(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Lima", domain.Preferences{},
		countersWith(nil, nil, nil, nil))
	users.counters["u1"] = countersWith(
		map[string]int{
			domain.TypeResort:    9,
			domain.TypeBoutique:  8,
			domain.TypeBusiness:  7,
			domain.TypeFamily:    6,
			domain.TypeHostel:    5,
			domain.TypeApartment: 4,
		},
		nil, nil, nil)
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{domain.TypeResort, domain.TypeBoutique, domain.TypeBusiness}
	if !reflect.DeepEqual(hotels.lastFilter.HotelTypes, want) {
		t.Fatalf("top-3 by count = %v, want %v", hotels.lastFilter.HotelTypes, want)
	}
}

func TestRecommend_AmenityWinsOnHigherCount(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Lima", domain.Preferences{},
		countersWith(
			map[string]int{domain.TypeResort: 6},
			nil, nil,
			map[string]int{"pool": 8, "spa": 5, "wifi": 2}))
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	f := hotels.lastFilter
	if !reflect.DeepEqual(f.AmenitiesAny, []string{"pool", "spa"}) {
		t.Fatalf("expected qualifying amenities by count, got %+v", f)
	}
	if len(f.HotelTypes) != 0 {
		t.Fatalf("amenity strategy must not constrain hotel type: %+v", f)
	}
}

func TestRecommend_AmenityWinsTies(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Lima", domain.Preferences{},
		countersWith(
			map[string]int{domain.TypeResort: 6},
			nil, nil,
			map[string]int{"pool": 6}))
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(hotels.lastFilter.AmenitiesAny, []string{"pool"}) {
		t.Fatalf("equal maxima must pick amenity affinity: %+v", hotels.lastFilter)
	}
}

func TestRecommend_TypeWinsWhenCategoryStronger(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Lima", domain.Preferences{},
		countersWith(
			map[string]int{domain.TypeResort: 7},
			nil, nil,
			map[string]int{"pool": 6}))
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(hotels.lastFilter.AmenitiesAny) != 0 {
		t.Fatalf("type affinity must not use amenity filter: %+v", hotels.lastFilter)
	}
	if !reflect.DeepEqual(hotels.lastFilter.HotelTypes, []string{domain.TypeResort}) {
		t.Fatalf("expected Resort filter, got %+v", hotels.lastFilter)
	}
}

func TestRecommend_FifthBookingFlipsStrategy(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Cancún", domain.Preferences{}, emptyCounters())
	hotels := &fakeHotels{}
	e := app.NewEngine(users, hotels)
	acc := app.NewAccumulator(users)
	resort := domain.Hotel{ID: "h1", HotelType: domain.TypeResort}

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		acc.RecordBooking(ctx, "u1", resort)
		if _, err := e.Recommend(ctx, "u1"); err != nil {
			t.Fatalf("err: %v", err)
		}
		if hotels.lastFilter.City != "Cancún" {
			t.Fatalf("booking %d: expected location fallback, got %+v", i+1, hotels.lastFilter)
		}
	}

	acc.RecordBooking(ctx, "u1", resort) // fifth booking crosses the threshold
	if _, err := e.Recommend(ctx, "u1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(hotels.lastFilter.HotelTypes, []string{domain.TypeResort}) {
		t.Fatalf("fifth booking must flip to type affinity: %+v", hotels.lastFilter)
	}
}

func TestRecommend_CatalogErrorPropagates(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Lima", domain.Preferences{}, emptyCounters())
	hotels := &fakeHotels{listErr: errors.New("store down")}
	e := app.NewEngine(users, hotels)

	if _, err := e.Recommend(context.Background(), "u1"); err == nil {
		t.Fatalf("expected catalog error to propagate")
	}
}

func TestRecommender_ServesCachedListOnFailure(t *testing.T) {
	users := newFakeUsers()
	seedUser(users, "u1", "Lima", domain.Preferences{}, emptyCounters())
	hotels := &fakeHotels{hotels: []domain.Hotel{{ID: "h1", Name: "Playa Azul Familiar"}}}
	cache := &fakeCache{}
	rec := app.NewRecommender(app.NewEngine(users, hotels), cache, 10*time.Minute)
	ctx := context.Background()

	// first call succeeds and populates the cache
	got, err := rec.Recommend(ctx, "u1")
	if err != nil || len(got) != 1 {
		t.Fatalf("got %v err %v", got, err)
	}

	// store failure afterwards serves the cached list
	hotels.listErr = errors.New("store down")
	got, err = rec.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("expected cached fallback, got err %v", err)
	}
	if len(got) != 1 || got[0].ID != "h1" {
		t.Fatalf("unexpected cached list: %+v", got)
	}

	// no cached list means the error surfaces
	_ = cache.Del(ctx, "recs:u1")
	if _, err := rec.Recommend(ctx, "u1"); err == nil {
		t.Fatalf("expected error without cached fallback")
	}
}
