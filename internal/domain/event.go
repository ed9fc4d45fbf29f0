package domain

import "time"

type EventType string

const (
	EventDelay             EventType = "DELAY"
	EventGateChange        EventType = "GATE_CHANGE"
	EventBoardingStarted   EventType = "BOARDING_STARTED"
	EventBoardingCompleted EventType = "BOARDING_COMPLETED"
	EventCancellation      EventType = "CANCELLATION"
	EventReinstatement     EventType = "REINSTATEMENT"
	EventDeparted          EventType = "DEPARTED"
	EventArrived           EventType = "ARRIVED"
	EventDiverted          EventType = "DIVERTED"
	EventTerminalChange    EventType = "TERMINAL_CHANGE"
	EventTimeChange        EventType = "TIME_CHANGE"
	EventStatusUpdate      EventType = "STATUS_UPDATE"
)

// FlightEvent is an immutable fact about a flight-state change. Previous and
// new values are opaque strings whose meaning depends on the event type.
// EventTimestamp is asserted by the originator; ProcessedTimestamp is set by
// the applier when the audit row becomes durable.
type FlightEvent struct {
	ID                 int64     `json:"id"`
	FlightID           *int64    `json:"flight_id,omitempty"`
	FlightNumber       string    `json:"flight_number"`
	EventType          EventType `json:"event_type"`
	PreviousValue      string    `json:"previous_value"`
	NewValue           string    `json:"new_value"`
	Description        string    `json:"description"`
	EventTimestamp     time.Time `json:"event_timestamp"`
	ProcessedTimestamp time.Time `json:"processed_timestamp"`
}
