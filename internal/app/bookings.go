package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"staywise/internal/adapters/observability"
	"staywise/internal/domain"
)

// NewBookingInput is the validated request for a reservation.
type NewBookingInput struct {
	HotelID  string    `json:"hotelId" validate:"required"`
	CheckIn  time.Time `json:"checkInDate" validate:"required"`
	CheckOut time.Time `json:"checkOutDate" validate:"required,gtfield=CheckIn"`
	Services []string  `json:"services"`
}

// BookingService owns the reservation flow: it derives nights and price,
// persists the booking, and then feeds the preference accumulator
// exactly once per created booking (best-effort).
type BookingService struct {
	bookings    domain.BookingRepository
	hotels      domain.HotelRepository
	users       domain.UserRepository
	accumulator *Accumulator
	now         func() time.Time
}

func NewBookingService(b domain.BookingRepository, h domain.HotelRepository, u domain.UserRepository, acc *Accumulator) *BookingService {
	return &BookingService{bookings: b, hotels: h, users: u, accumulator: acc, now: time.Now}
}

func (s *BookingService) Create(ctx context.Context, userID string, in NewBookingInput) (domain.BookingView, error) {
	hotel, err := s.hotels.GetHotel(ctx, in.HotelID)
	if err != nil {
		return domain.BookingView{}, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.BookingView{}, err
	}

	nights := domain.Nights(in.CheckIn, in.CheckOut)
	b := domain.Booking{
		ID:                 uuid.NewString(),
		UserID:             userID,
		HotelID:            hotel.ID,
		CheckIn:            in.CheckIn,
		CheckOut:           in.CheckOut,
		Nights:             nights,
		Price:              domain.StayPrice(nights, hotel.PricePerNight),
		ConfirmationNumber: domain.ConfirmationNumber(s.now()),
		GuestName:          user.Name,
		GuestEmail:         user.Email,
		Services:           in.Services,
		CreatedAt:          s.now(),
	}
	if err := s.bookings.CreateBooking(ctx, b); err != nil {
		return domain.BookingView{}, err
	}
	observability.ObserveBooking("create")

	// Bookkeeping after the booking is durable; the accumulator logs and
	// swallows its own failures.
	s.accumulator.RecordBooking(ctx, userID, hotel)

	return domain.BookingView{Booking: b, Hotel: &hotel, HotelName: hotel.Name}, nil
}

// Upcoming returns the user's bookings with check-out at or after now.
func (s *BookingService) Upcoming(ctx context.Context, userID string) ([]domain.BookingView, error) {
	bs, err := s.bookings.ListUpcoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withHotels(ctx, bs), nil
}

// History returns the user's past bookings (check-out before now).
func (s *BookingService) History(ctx context.Context, userID string) ([]domain.BookingView, error) {
	bs, err := s.bookings.ListPast(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withHotels(ctx, bs), nil
}

// Cancel deletes a booking after checking it belongs to the caller.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) error {
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.bookings.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}
	observability.ObserveBooking("cancel")
	return nil
}

func (s *BookingService) withHotels(ctx context.Context, bs []domain.Booking) []domain.BookingView {
	out := make([]domain.BookingView, 0, len(bs))
	for _, b := range bs {
		v := domain.BookingView{Booking: b}
		h, err := s.hotels.GetHotel(ctx, b.HotelID)
		switch {
		case err == nil:
			v.Hotel = &h
			v.HotelName = h.Name
		case errors.Is(err, domain.ErrNotFound):
			// hotel removed since booking; keep the row, hotel stays nil
		default:
			log.Error().Err(err).Str("hotel_id", b.HotelID).Msg("load hotel for booking failed")
		}
		out = append(out, v)
	}
	return out
}
