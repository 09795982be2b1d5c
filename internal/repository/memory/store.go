// Package memory keeps flights, bookings and users in process memory.
//
// One mutex guards all three tables, so a seat reservation and the booking
// it pays for are never observed apart.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	flights     []domain.Flight
	flightIndex map[string]int

	bookings []domain.Booking

	users       []domain.User
	userByEmail map[string]int
}

func NewStore(seed []domain.Flight) *Store {
	s := &Store{
		flights:     make([]domain.Flight, 0, len(seed)),
		flightIndex: make(map[string]int, len(seed)),
		userByEmail: make(map[string]int),
	}
	for _, f := range seed {
		s.flightIndex[f.ID] = len(s.flights)
		s.flights = append(s.flights, f)
	}
	return s
}

func (s *Store) Flights() repository.FlightRepository   { return flightRepo{s} }
func (s *Store) Bookings() repository.BookingRepository { return bookingRepo{s} }
func (s *Store) Users() repository.UserRepository       { return userRepo{s} }

// reserveLocked must be called with s.mu held for writing.
func (s *Store) reserveLocked(flightID string, count int) error {
	if count <= 0 {
		return domain.ErrInvalidSeatCount
	}
	idx, ok := s.flightIndex[flightID]
	if !ok {
		return domain.ErrFlightNotFound
	}
	f := &s.flights[idx]
	if f.AvailableSeats < count {
		return domain.ErrInsufficientCapacity
	}
	f.AvailableSeats -= count
	return nil
}

type flightRepo struct{ s *Store }

func (r flightRepo) List(_ context.Context) ([]domain.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	flights := make([]domain.Flight, len(r.s.flights))
	copy(flights, r.s.flights)
	return flights, nil
}

func (r flightRepo) GetByID(_ context.Context, id string) (*domain.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	idx, ok := r.s.flightIndex[id]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	f := r.s.flights[idx]
	return &f, nil
}

func (r flightRepo) ReserveSeats(_ context.Context, flightID string, count int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.reserveLocked(flightID, count)
}

type bookingRepo struct{ s *Store }

func (r bookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.reserveLocked(booking.FlightID, booking.Passengers); err != nil {
		return err
	}
	r.s.bookings = append(r.s.bookings, booking.Clone())
	return nil
}

func (r bookingRepo) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bookings := make([]domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b.Clone())
		}
	}
	return bookings, nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := r.s.userByEmail[key]; ok {
		return domain.ErrEmailTaken
	}
	r.s.userByEmail[key] = len(r.s.users)
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	idx, ok := r.s.userByEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.s.users[idx]
	return &u, nil
}

var (
	_ repository.FlightRepository  = flightRepo{}
	_ repository.BookingRepository = bookingRepo{}
	_ repository.UserRepository    = userRepo{}
)
