package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const flightColumns = `id, flight_number, airline,
	departure_airport, departure_city, departure_date, departure_time,
	arrival_airport, arrival_city, arrival_date, arrival_time,
	duration, price_cents, total_seats, available_seats, aircraft, fare_class`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	return f, err
}

func (r *PGFlightRepository) ReserveSeats(ctx context.Context, flightID string, count int) error {
	return reserveSeats(ctx, r.db, flightID, count)
}

// reserveSeats decrements available_seats only when enough remain, so the
// check and the write are one statement.
func reserveSeats(ctx context.Context, q querier, flightID string, count int) error {
	if count <= 0 {
		return domain.ErrInvalidSeatCount
	}
	res, err := q.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1 AND available_seats >= $2`, flightID, count)
	if err != nil {
		return fmt.Errorf("reserve seats: %w", err)
	}
	if res.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, flightID).Scan(&exists); err != nil {
		return fmt.Errorf("lookup flight: %w", err)
	}
	if !exists {
		return domain.ErrFlightNotFound
	}
	return domain.ErrInsufficientCapacity
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline,
		&f.Departure.Airport, &f.Departure.City, &f.Departure.Date, &f.Departure.Time,
		&f.Arrival.Airport, &f.Arrival.City, &f.Arrival.Date, &f.Arrival.Time,
		&f.Duration, &f.PriceCents, &f.TotalSeats, &f.AvailableSeats, &f.Aircraft, &f.FareClass); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
