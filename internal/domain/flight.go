package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusOnTime    FlightStatus = "ON_TIME"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusBoarding  FlightStatus = "BOARDING"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
	FlightStatusInFlight  FlightStatus = "IN_FLIGHT"
	FlightStatusArrived   FlightStatus = "ARRIVED"
	FlightStatusLanded    FlightStatus = "LANDED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
	FlightStatusDiverted  FlightStatus = "DIVERTED"
)

// ParseFlightStatus validates a raw status value against the closed enumeration.
func ParseFlightStatus(raw string) (FlightStatus, bool) {
	switch FlightStatus(raw) {
	case FlightStatusScheduled, FlightStatusOnTime, FlightStatusDelayed,
		FlightStatusBoarding, FlightStatusDeparted, FlightStatusInFlight,
		FlightStatusArrived, FlightStatusLanded, FlightStatusCancelled,
		FlightStatusDiverted:
		return FlightStatus(raw), true
	}
	return "", false
}

// IsTerminal reports whether no further synthetic events should be produced
// for a flight in this status. REINSTATEMENT is the only way out of a
// terminal status and is never originator-issued.
func (s FlightStatus) IsTerminal() bool {
	return s == FlightStatusCancelled || s == FlightStatusArrived || s == FlightStatusLanded
}

type Flight struct {
	ID                 int64        `json:"id"`
	FlightNumber       string       `json:"flight_number"`
	Origin             string       `json:"origin"`
	OriginCity         string       `json:"origin_city"`
	Destination        string       `json:"destination"`
	DestinationCity    string       `json:"destination_city"`
	ScheduledDeparture time.Time    `json:"scheduled_departure"`
	ActualDeparture    *time.Time   `json:"actual_departure,omitempty"`
	ScheduledArrival   time.Time    `json:"scheduled_arrival"`
	ActualArrival      *time.Time   `json:"actual_arrival,omitempty"`
	Status             FlightStatus `json:"status"`
	Gate               string       `json:"gate"`
	Terminal           string       `json:"terminal"`
	DelayMinutes       int          `json:"delay_minutes"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}
