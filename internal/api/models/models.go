// Package models holds the gRPC wire messages shared by the flights and
// bookings services.
package models

import (
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/samber/lo"
)

type Endpoint struct {
	Airport string `json:"airport"`
	City    string `json:"city"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

type Flight struct {
	ID             string   `json:"id"`
	FlightNumber   string   `json:"flight_number"`
	Airline        string   `json:"airline"`
	Departure      Endpoint `json:"departure"`
	Arrival        Endpoint `json:"arrival"`
	Duration       string   `json:"duration"`
	PriceCents     int64    `json:"price_cents"`
	TotalSeats     int32    `json:"total_seats"`
	AvailableSeats int32    `json:"available_seats"`
	Aircraft       string   `json:"aircraft"`
	FareClass      string   `json:"fare_class"`
}

type Passenger struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Booking struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	FlightID         string      `json:"flight_id"`
	Passengers       int32       `json:"passengers"`
	PassengerDetails []Passenger `json:"passenger_details"`
	TotalPriceCents  int64       `json:"total_price_cents"`
	Status           string      `json:"status"`
	CreatedAt        string      `json:"created_at"`
	Flight           *Flight     `json:"flight,omitempty"`
}

func FromFlight(f *domain.Flight) *Flight {
	if f == nil {
		return nil
	}
	return &Flight{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Airline:        f.Airline,
		Departure:      Endpoint(f.Departure),
		Arrival:        Endpoint(f.Arrival),
		Duration:       f.Duration,
		PriceCents:     f.PriceCents,
		TotalSeats:     int32(f.TotalSeats),
		AvailableSeats: int32(f.AvailableSeats),
		Aircraft:       f.Aircraft,
		FareClass:      f.FareClass,
	}
}

func FromFlights(list []domain.Flight) []*Flight {
	return lo.Map(list, func(f domain.Flight, _ int) *Flight {
		return FromFlight(&f)
	})
}

// FromBooking attaches flight when it is non-nil.
func FromBooking(b *domain.Booking, flight *domain.Flight) *Booking {
	if b == nil {
		return nil
	}
	return &Booking{
		ID:         b.ID,
		UserID:     b.UserID,
		FlightID:   b.FlightID,
		Passengers: int32(b.Passengers),
		PassengerDetails: lo.Map(b.PassengerDetails, func(p domain.Passenger, _ int) Passenger {
			return Passenger(p)
		}),
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		Flight:          FromFlight(flight),
	}
}

func (p Passenger) ToDomain() domain.Passenger {
	return domain.Passenger(p)
}
