package main

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"staywise/internal/adapters/observability"
	"staywise/internal/app"
	"staywise/internal/domain"
	"staywise/internal/shared"
	mysqlrepo "staywise/internal/storage/mysql"
)

// Seeds the demo catalog and users: every user gets one current and two
// past bookings, each fed through the preference accumulator so counters
// reflect the seeded history.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	accumulator := app.NewAccumulator(repo)

	for _, h := range seedHotels {
		if err := repo.UpsertHotel(ctx, h); err != nil {
			log.Fatal().Err(err).Str("hotel", h.Name).Msg("seed hotel failed")
		}
	}
	log.Info().Int("hotels", len(seedHotels)).Msg("catalog seeded")

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for i, su := range seedUsers {
		i, su := i, su

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := seedOneUser(ctx, repo, accumulator, i, su); err != nil {
				log.Warn().Str("email", su.Email).Err(err).Msg("seed user failed")
				return
			}
			log.Info().Str("email", su.Email).Msg("seed user ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func seedOneUser(ctx context.Context, repo *mysqlrepo.Repo, acc *app.Accumulator, idx int, su seedUser) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Name:         su.Name,
		Email:        su.Email,
		PasswordHash: string(hash),
		City:         su.City,
		Country:      su.Country,
		Preferences:  su.Preferences,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		if err == domain.ErrEmailTaken {
			log.Info().Str("email", su.Email).Msg("user exists, skipping")
			return nil
		}
		return err
	}

	// one current stay plus two past ones, rotating through the catalog
	today := time.Now().UTC().Truncate(24 * time.Hour)
	stays := []struct {
		hotel  domain.Hotel
		in     time.Time
		nights int
	}{
		{seedHotels[idx%len(seedHotels)], today, 3},
		{seedHotels[(idx+1)%len(seedHotels)], today.AddDate(0, 0, -30), 4},
		{seedHotels[(idx+2)%len(seedHotels)], today.AddDate(0, 0, -60), 2},
	}
	for _, s := range stays {
		out := s.in.AddDate(0, 0, s.nights)
		b := domain.Booking{
			ID:                 uuid.NewString(),
			UserID:             u.ID,
			HotelID:            s.hotel.ID,
			CheckIn:            s.in,
			CheckOut:           out,
			Nights:             s.nights,
			Price:              domain.StayPrice(s.nights, s.hotel.PricePerNight),
			ConfirmationNumber: domain.ConfirmationNumber(time.Now()),
			GuestName:          u.Name,
			GuestEmail:         u.Email,
			Services:           firstN(s.hotel.Amenities, 2),
			CreatedAt:          time.Now().UTC(),
		}
		if err := repo.CreateBooking(ctx, b); err != nil {
			return err
		}
		acc.RecordBooking(ctx, u.ID, s.hotel)
	}
	return nil
}

func firstN(ss []string, n int) []string {
	if len(ss) < n {
		n = len(ss)
	}
	return ss[:n]
}
