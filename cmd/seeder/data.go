package main

import (
	"staywise/internal/domain"
)

type seedUser struct {
	Name        string
	Email       string
	Password    string
	City        string
	Country     string
	Preferences domain.Preferences
}

var seedHotels = []domain.Hotel{
	{
		ID: "11111111-0000-0000-0000-000000000001", Name: "The Grand Resort",
		Description: "A luxurious stay.", HotelType: domain.TypeResort,
		PriceRange: domain.PriceLuxury, GroupSize: domain.GroupCouple,
		Amenities: []string{"pool", "spa", "gym", "free-wifi"},
		Location:  domain.Location{City: "Miami Beach", Country: "USA"},
		PricePerNight: 450, AverageRating: 4.7,
	},
	{
		ID: "11111111-0000-0000-0000-000000000002", Name: "City Center Boutique",
		Description: "Chic and modern.", HotelType: domain.TypeBoutique,
		PriceRange: domain.PriceMedium, GroupSize: domain.GroupCouple,
		Amenities: []string{"free-wifi", "bar", "room-service"},
		Location:  domain.Location{City: "New York", Country: "USA"},
		PricePerNight: 300, AverageRating: 4.4,
	},
	{
		ID: "11111111-0000-0000-0000-000000000003", Name: "Budget Stay Inn",
		Description: "Affordable and clean.", HotelType: domain.TypeBudget,
		PriceRange: domain.PriceEconomic, GroupSize: domain.GroupSolo,
		Amenities: []string{"free-wifi", "parking"},
		Location:  domain.Location{City: "Chicago", Country: "USA"},
		PricePerNight: 90, AverageRating: 3.9,
	},
	{
		ID: "11111111-0000-0000-0000-000000000004", Name: "Oceanview Getaway",
		Description: "Beachfront paradise.", HotelType: domain.TypeResort,
		PriceRange: domain.PriceLuxury, GroupSize: domain.GroupFamily,
		Amenities: []string{"pool", "beach-access", "spa"},
		Location:  domain.Location{City: "Cancún", Country: "México"},
		PricePerNight: 500, AverageRating: 4.9,
	},
	{
		ID: "11111111-0000-0000-0000-000000000005", Name: "The Business Hub",
		Description: "For the modern professional.", HotelType: domain.TypeBusiness,
		PriceRange: domain.PriceMedium, GroupSize: domain.GroupGroup,
		Amenities: []string{"gym", "free-wifi", "conference-room"},
		Location:  domain.Location{City: "New York", Country: "USA"},
		PricePerNight: 250, AverageRating: 4.2,
	},
	{
		ID: "11111111-0000-0000-0000-000000000006", Name: "Playa Azul Familiar",
		Description: "Family rooms steps from the sand.", HotelType: domain.TypeFamily,
		PriceRange: domain.PriceMedium, GroupSize: domain.GroupFamily,
		Amenities: []string{"pool", "breakfast", "parking", "wifi"},
		Location:  domain.Location{City: "Cancún", Country: "México"},
		PricePerNight: 180, AverageRating: 4.3,
	},
	{
		ID: "11111111-0000-0000-0000-000000000007", Name: "Backpacker Central",
		Description: "Bunks and a busy common room.", HotelType: domain.TypeHostel,
		PriceRange: domain.PriceEconomic, GroupSize: domain.GroupGroup,
		Amenities: []string{"wifi", "breakfast", "bar"},
		Location:  domain.Location{City: "Barcelona", Country: "España"},
		PricePerNight: 40, AverageRating: 4.1,
	},
	{
		ID: "11111111-0000-0000-0000-000000000008", Name: "Casco Antiguo Suites",
		Description: "Serviced apartments in the old town.", HotelType: domain.TypeApartment,
		PriceRange: domain.PriceMedium, GroupSize: domain.GroupFamily,
		Amenities: []string{"wifi", "parking", "room-service"},
		Location:  domain.Location{City: "Madrid", Country: "España"},
		PricePerNight: 140, AverageRating: 4.0,
	},
}

var seedUsers = []seedUser{
	{
		Name: "alice garcia", Email: "alice@example.com", Password: "password1",
		City: "Cancún", Country: "México",
		Preferences: domain.Preferences{
			HotelType:  domain.TypeBusiness,
			PriceRange: domain.PriceMedium,
			GroupSize:  domain.GroupGroup,
			Amenities:  []string{"wifi"},
		},
	},
	{Name: "bob rodriguez", Email: "bob@example.com", Password: "password2", City: "Miami Beach", Country: "USA"},
	{Name: "carla martinez", Email: "carla@example.com", Password: "password3", City: "Barcelona", Country: "España"},
	{Name: "diego lopez", Email: "diego@example.com", Password: "password4", City: "Lima", Country: "Perú"},
	{Name: "elena hernandez", Email: "elena@example.com", Password: "password5", City: "Quito", Country: "Ecuador"},
	{Name: "frank perez", Email: "frank@example.com", Password: "password6", City: "Santiago", Country: "Chile"},
	{Name: "gina gonzalez", Email: "gina@example.com", Password: "password7", City: "Bogotá", Country: "Colombia"},
	{Name: "hugo sanchez", Email: "hugo@example.com", Password: "password8", City: "Buenos Aires", Country: "Argentina"},
	{Name: "irene rivera", Email: "irene@example.com", Password: "password9", City: "Madrid", Country: "España"},
	{Name: "juan torres", Email: "juan@example.com", Password: "password10", City: "Tulum", Country: "México"},
}
