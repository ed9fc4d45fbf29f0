package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightboard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrFlightNotFound = errors.New("flight not found")

const flightColumns = `id, flight_number, origin, origin_city, destination, destination_city, scheduled_departure, actual_departure, scheduled_arrival, actual_arrival, status, gate, terminal, delay_minutes, created_at, updated_at`

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	ListActive(ctx context.Context) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	ApplyEvent(ctx context.Context, flightNumber string, mutate func(*domain.Flight) error, event *domain.FlightEvent) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY scheduled_departure`)
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
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, flightNumber)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ListActive returns flights still eligible for new events, i.e. not in a
// terminal status.
func (r *PGFlightRepository) ListActive(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE status NOT IN ($1, $2, $3) ORDER BY scheduled_departure`,
		domain.FlightStatusCancelled, domain.FlightStatusArrived, domain.FlightStatusLanded)
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
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, origin, origin_city, destination, destination_city, scheduled_departure, scheduled_arrival, status, gate, terminal, delay_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Origin, flight.OriginCity, flight.Destination, flight.DestinationCity,
		flight.ScheduledDeparture, flight.ScheduledArrival, flight.Status, flight.Gate, flight.Terminal, flight.DelayMinutes).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

// ApplyEvent runs the per-flight read-modify-write and the audit-row insert
// in one transaction. The flight row is locked for the duration, the mutated
// row and the event row commit together, and the event comes back enriched
// with its assigned id and processed timestamp. The flight_number is the
// partition key upstream, so there is never a second writer for this row; the
// transaction guards against retries, not concurrent appliers.
func (r *PGFlightRepository) ApplyEvent(ctx context.Context, flightNumber string, mutate func(*domain.Flight) error, event *domain.FlightEvent) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1 FOR UPDATE`, flightNumber)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}

	if err := mutate(&f); err != nil {
		return nil, err
	}

	if err := tx.QueryRow(ctx, `UPDATE flights SET status=$1, gate=$2, terminal=$3, delay_minutes=$4, destination=$5, destination_city=$6, scheduled_departure=$7, actual_departure=$8, scheduled_arrival=$9, actual_arrival=$10, updated_at=now()
		WHERE flight_number=$11 RETURNING updated_at`,
		f.Status, f.Gate, f.Terminal, f.DelayMinutes, f.Destination, f.DestinationCity,
		f.ScheduledDeparture, f.ActualDeparture, f.ScheduledArrival, f.ActualArrival, flightNumber).
		Scan(&f.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update flight %s: %w", flightNumber, err)
	}

	event.FlightID = &f.ID
	if err := tx.QueryRow(ctx, `INSERT INTO flight_events (flight_id, flight_number, event_type, previous_value, new_value, description, event_timestamp, processed_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, processed_timestamp`,
		f.ID, event.FlightNumber, event.EventType, event.PreviousValue, event.NewValue, event.Description, event.EventTimestamp).
		Scan(&event.ID, &event.ProcessedTimestamp); err != nil {
		return nil, fmt.Errorf("insert flight event for %s: %w", flightNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &f, nil
}

func scanFlight(row pgx.Row) (domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.OriginCity, &f.Destination, &f.DestinationCity,
		&f.ScheduledDeparture, &f.ActualDeparture, &f.ScheduledArrival, &f.ActualArrival,
		&f.Status, &f.Gate, &f.Terminal, &f.DelayMinutes, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
