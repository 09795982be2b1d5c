package flights_service_api

import (
	"context"

	"github.com/Domenick1991/flightdesk/internal/api/models"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ListFlightsRequest struct{}

type ListFlightsResponse struct {
	Flights []*models.Flight `json:"flights"`
}

type GetFlightRequest struct {
	ID string `json:"id"`
}

type GetFlightResponse struct {
	Flight *models.Flight `json:"flight"`
}

type SearchFlightsRequest struct {
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departure_date"`
	Passengers    int32  `json:"passengers"`
}

type SearchFlightsResponse struct {
	Flights []*models.Flight `json:"flights"`
}

// Server implements FlightsServiceServer on top of the flight use case.
type Server struct {
	flights flights.FlightUseCase
}

func NewServer(flights flights.FlightUseCase) *Server {
	return &Server{flights: flights}
}

func (s *Server) ListFlights(ctx context.Context, _ *ListFlightsRequest) (*ListFlightsResponse, error) {
	list, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListFlightsResponse{Flights: models.FromFlights(list)}, nil
}

func (s *Server) GetFlight(ctx context.Context, req *GetFlightRequest) (*GetFlightResponse, error) {
	flight, err := s.flights.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &GetFlightResponse{Flight: models.FromFlight(flight)}, nil
}

func (s *Server) SearchFlights(ctx context.Context, req *SearchFlightsRequest) (*SearchFlightsResponse, error) {
	if req.From == "" || req.To == "" || req.DepartureDate == "" {
		return nil, status.Error(codes.InvalidArgument, "missing required search parameters")
	}
	found, err := s.flights.Search(ctx, flights.SearchQuery{
		Origin:        req.From,
		Destination:   req.To,
		DepartureDate: req.DepartureDate,
		Passengers:    int(req.Passengers),
	})
	if err != nil {
		return nil, err
	}
	return &SearchFlightsResponse{Flights: models.FromFlights(found)}, nil
}

var _ FlightsServiceServer = (*Server)(nil)
