package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type Booking struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	HotelID            string    `json:"hotelId"`
	CheckIn            time.Time `json:"checkInDate"`
	CheckOut           time.Time `json:"checkOutDate"`
	Nights             int       `json:"nights"`
	Price              float64   `json:"price"`
	ConfirmationNumber string    `json:"confirmationNumber"`
	GuestName          string    `json:"guestName,omitempty"`
	GuestEmail         string    `json:"guestEmail,omitempty"`
	GuestPhone         string    `json:"guestPhone,omitempty"`
	Services           []string  `json:"services,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// BookingView is a booking joined with its hotel for history/upcoming
// screens. Hotel is nil when the hotel has since been removed.
type BookingView struct {
	Booking
	Hotel     *Hotel `json:"hotel"`
	HotelName string `json:"hotelName"`
}

// Nights derives the billed night count: calendar days between check-in
// and check-out, rounded up, never less than one.
func Nights(checkIn, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

// StayPrice is nights multiplied by the nightly rate, rounded to cents.
func StayPrice(nights int, pricePerNight float64) float64 {
	return math.Round(float64(nights)*pricePerNight*100) / 100
}

// ConfirmationNumber builds the legacy "BK-" reference from a timestamp
// (uppercase base-36 milliseconds, matching numbers already issued).
func ConfirmationNumber(t time.Time) string {
	return "BK-" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}
