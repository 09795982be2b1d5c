package repository

import (
	"context"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

// FlightRepository is the seat inventory. ReserveSeats is its only mutation.
type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	ReserveSeats(ctx context.Context, flightID string, count int) error
}

// BookingRepository is the booking ledger. Create reserves booking.Passengers
// seats on booking.FlightID and appends the booking as one atomic unit.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
