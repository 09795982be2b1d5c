// Package seed loads the startup flight catalog.
package seed

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed flights.yaml
var defaultCatalog []byte

type endpoint struct {
	Airport string `yaml:"airport"`
	City    string `yaml:"city"`
	Date    string `yaml:"date"`
	Time    string `yaml:"time"`
}

type flight struct {
	ID             string   `yaml:"id"`
	FlightNumber   string   `yaml:"flight_number"`
	Airline        string   `yaml:"airline"`
	Departure      endpoint `yaml:"departure"`
	Arrival        endpoint `yaml:"arrival"`
	Duration       string   `yaml:"duration"`
	Price          float64  `yaml:"price"`
	TotalSeats     int      `yaml:"total_seats"`
	AvailableSeats *int     `yaml:"available_seats"`
	Aircraft       string   `yaml:"aircraft"`
	Class          string   `yaml:"class"`
}

type catalog struct {
	Flights []flight `yaml:"flights"`
}

// Flights loads the catalog at path, or the built-in catalog when path is empty.
func Flights(path string) ([]domain.Flight, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed catalog: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Flights without an id get a fresh UUID and
// flights without available_seats start full.
func Parse(data []byte) ([]domain.Flight, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	flights := make([]domain.Flight, 0, len(c.Flights))
	seen := make(map[string]struct{}, len(c.Flights))
	for i, f := range c.Flights {
		id := f.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("seed flight %d: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}

		available := f.TotalSeats
		if f.AvailableSeats != nil {
			available = *f.AvailableSeats
		}
		if f.TotalSeats <= 0 || available < 0 || available > f.TotalSeats {
			return nil, fmt.Errorf("seed flight %s: seats %d/%d out of range", f.FlightNumber, available, f.TotalSeats)
		}
		priceCents := int64(math.Round(f.Price * 100))
		if priceCents <= 0 {
			return nil, fmt.Errorf("seed flight %s: price must be at least 0.01", f.FlightNumber)
		}

		flights = append(flights, domain.Flight{
			ID:             id,
			FlightNumber:   f.FlightNumber,
			Airline:        f.Airline,
			Departure:      domain.Endpoint(f.Departure),
			Arrival:        domain.Endpoint(f.Arrival),
			Duration:       f.Duration,
			PriceCents:     priceCents,
			TotalSeats:     f.TotalSeats,
			AvailableSeats: available,
			Aircraft:       f.Aircraft,
			FareClass:      f.Class,
		})
	}
	return flights, nil
}
