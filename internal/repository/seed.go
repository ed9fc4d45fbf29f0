package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightboard/internal/domain"
)

// SeedIfEmpty loads the initial flight set when the table has no rows.
// Flights are created once at initial data load and afterwards mutated only
// by the applier.
func SeedIfEmpty(ctx context.Context, repo FlightRepository) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	seeded := 0
	for _, f := range DefaultFlights(time.Now().UTC()) {
		flight := f
		if err := repo.Create(ctx, &flight); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

func DefaultFlights(now time.Time) []domain.Flight {
	base := now.Truncate(time.Hour)
	return []domain.Flight{
		{FlightNumber: "AA123", Origin: "JFK", OriginCity: "New York", Destination: "LAX", DestinationCity: "Los Angeles", ScheduledDeparture: base.Add(2 * time.Hour), ScheduledArrival: base.Add(8 * time.Hour), Status: domain.FlightStatusOnTime, Gate: "A1", Terminal: "1"},
		{FlightNumber: "UA456", Origin: "ORD", OriginCity: "Chicago", Destination: "SFO", DestinationCity: "San Francisco", ScheduledDeparture: base.Add(3 * time.Hour), ScheduledArrival: base.Add(7 * time.Hour), Status: domain.FlightStatusScheduled, Gate: "B2", Terminal: "2"},
		{FlightNumber: "DL789", Origin: "ATL", OriginCity: "Atlanta", Destination: "MIA", DestinationCity: "Miami", ScheduledDeparture: base.Add(1 * time.Hour), ScheduledArrival: base.Add(3 * time.Hour), Status: domain.FlightStatusOnTime, Gate: "C1", Terminal: "S"},
		{FlightNumber: "BA100", Origin: "LHR", OriginCity: "London", Destination: "JFK", DestinationCity: "New York", ScheduledDeparture: base.Add(4 * time.Hour), ScheduledArrival: base.Add(12 * time.Hour), Status: domain.FlightStatusScheduled, Gate: "D1", Terminal: "5"},
		{FlightNumber: "LH400", Origin: "FRA", OriginCity: "Frankfurt", Destination: "JFK", DestinationCity: "New York", ScheduledDeparture: base.Add(5 * time.Hour), ScheduledArrival: base.Add(13 * time.Hour), Status: domain.FlightStatusOnTime, Gate: "A3", Terminal: "1"},
		{FlightNumber: "AF007", Origin: "CDG", OriginCity: "Paris", Destination: "SFO", DestinationCity: "San Francisco", ScheduledDeparture: base.Add(6 * time.Hour), ScheduledArrival: base.Add(17 * time.Hour), Status: domain.FlightStatusScheduled, Gate: "B1", Terminal: "2E"},
	}
}
