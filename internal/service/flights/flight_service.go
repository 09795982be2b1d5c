package flights

import (
	"context"
	"strings"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/metrics"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/samber/lo"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Search(ctx context.Context, query SearchQuery) ([]domain.Flight, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

// SearchQuery matches flights whose departure city contains Origin and
// arrival city contains Destination (case-insensitive), departing exactly on
// DepartureDate with at least Passengers seats left.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	Passengers    int
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

// NewFlightService accepts a nil cache.
func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Search reads the repository directly, never the cache, so seat counts are
// current. It keeps the store's insertion order and returns an empty, non-nil
// slice when nothing matches.
func (s *FlightService) Search(ctx context.Context, query SearchQuery) ([]domain.Flight, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	passengers := query.Passengers
	if passengers <= 0 {
		passengers = 1
	}
	origin := strings.ToLower(query.Origin)
	destination := strings.ToLower(query.Destination)

	matches := lo.Filter(all, func(f domain.Flight, _ int) bool {
		return strings.Contains(strings.ToLower(f.Departure.City), origin) &&
			strings.Contains(strings.ToLower(f.Arrival.City), destination) &&
			f.Departure.Date == query.DepartureDate &&
			f.HasSeats(passengers)
	})
	if matches == nil {
		matches = []domain.Flight{}
	}

	if len(matches) == 0 {
		metrics.FlightSearches.WithLabelValues("empty").Inc()
	} else {
		metrics.FlightSearches.WithLabelValues("found").Inc()
	}
	return matches, nil
}

var _ FlightUseCase = (*FlightService)(nil)
