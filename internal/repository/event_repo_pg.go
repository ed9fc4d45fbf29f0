package repository

import (
	"context"

	"github.com/Domenick1991/flightboard/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	ListByFlight(ctx context.Context, flightNumber string) ([]domain.FlightEvent, error)
}

type PGEventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) EventRepository {
	return &PGEventRepository{db: db}
}

// ListByFlight returns the audit trail for a flight, most recent first.
func (r *PGEventRepository) ListByFlight(ctx context.Context, flightNumber string) ([]domain.FlightEvent, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, flight_number, event_type, previous_value, new_value, description, event_timestamp, processed_timestamp
		FROM flight_events WHERE flight_number=$1 ORDER BY id DESC`, flightNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.FlightEvent, 0)
	for rows.Next() {
		var e domain.FlightEvent
		if err := rows.Scan(&e.ID, &e.FlightID, &e.FlightNumber, &e.EventType, &e.PreviousValue, &e.NewValue, &e.Description, &e.EventTimestamp, &e.ProcessedTimestamp); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

var _ EventRepository = (*PGEventRepository)(nil)
