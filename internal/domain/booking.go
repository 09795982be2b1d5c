package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

type Passenger struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Booking struct {
	ID               string
	UserID           string
	FlightID         string
	Passengers       int
	PassengerDetails []Passenger
	TotalPriceCents  int64
	Status           BookingStatus
	CreatedAt        time.Time
}

// Clone returns a copy that shares no memory with b.
func (b Booking) Clone() Booking {
	b.PassengerDetails = append([]Passenger(nil), b.PassengerDetails...)
	return b
}
