package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SeedFlights inserts the catalog when the flights table is empty and
// reports how many rows were written.
func SeedFlights(ctx context.Context, db *pgxpool.Pool, flights []domain.Flight) (int, error) {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var existing int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM flights`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("count flights: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	for _, f := range flights {
		if _, err := tx.Exec(ctx, `INSERT INTO flights (id, flight_number, airline,
			departure_airport, departure_city, departure_date, departure_time,
			arrival_airport, arrival_city, arrival_date, arrival_time,
			duration, price_cents, total_seats, available_seats, aircraft, fare_class)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			f.ID, f.FlightNumber, f.Airline,
			f.Departure.Airport, f.Departure.City, f.Departure.Date, f.Departure.Time,
			f.Arrival.Airport, f.Arrival.City, f.Arrival.Date, f.Arrival.Time,
			f.Duration, f.PriceCents, f.TotalSeats, f.AvailableSeats, f.Aircraft, f.FareClass); err != nil {
			return 0, fmt.Errorf("insert flight %s: %w", f.FlightNumber, err)
		}
	}
	return len(flights), tx.Commit(ctx)
}
