package bookings_service_api

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightdesk/internal/api/interceptors"
	"github.com/Domenick1991/flightdesk/internal/api/models"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/samber/lo"
)

type CreateBookingRequest struct {
	FlightID         string             `json:"flight_id"`
	Passengers       int32              `json:"passengers"`
	PassengerDetails []models.Passenger `json:"passenger_details"`
}

type ListMyBookingsRequest struct{}

type ListMyBookingsResponse struct {
	Bookings []*models.Booking `json:"bookings"`
}

// Server implements BookingsServiceServer. Every method expects the caller
// to have been authenticated by interceptors.Auth.
type Server struct {
	bookings booking.BookingUseCase
	flights  flights.FlightUseCase
}

func NewServer(bookings booking.BookingUseCase, flights flights.FlightUseCase) *Server {
	return &Server{bookings: bookings, flights: flights}
}

// CreateBooking returns the booking with the flight as it stands after the
// seats were reserved.
func (s *Server) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error) {
	created, err := s.bookings.CreateBooking(ctx, booking.CreateBookingInput{
		UserID:     interceptors.UserID(ctx),
		FlightID:   req.FlightID,
		Passengers: int(req.Passengers),
		PassengerDetails: lo.Map(req.PassengerDetails, func(p models.Passenger, _ int) domain.Passenger {
			return p.ToDomain()
		}),
	})
	if err != nil {
		return nil, err
	}

	// The booking is already recorded; a failed flight read only drops the
	// embedded flight.
	flight, err := s.flights.GetByID(ctx, created.FlightID)
	if err != nil {
		flight = nil
	}
	return models.FromBooking(created, flight), nil
}

// ListMyBookings joins each booking with the flight's current state.
func (s *Server) ListMyBookings(ctx context.Context, _ *ListMyBookingsRequest) (*ListMyBookingsResponse, error) {
	list, err := s.bookings.ListByUser(ctx, interceptors.UserID(ctx))
	if err != nil {
		return nil, err
	}

	resp := &ListMyBookingsResponse{Bookings: make([]*models.Booking, 0, len(list))}
	for i := range list {
		flight, err := s.flights.GetByID(ctx, list[i].FlightID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		resp.Bookings = append(resp.Bookings, models.FromBooking(&list[i], flight))
	}
	return resp, nil
}

var _ BookingsServiceServer = (*Server)(nil)
