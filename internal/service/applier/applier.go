package applier

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/flightboard/internal/domain"
	kafkaMsg "github.com/Domenick1991/flightboard/internal/kafka"
	"github.com/Domenick1991/flightboard/internal/logger"
	"github.com/Domenick1991/flightboard/internal/metrics"
	"github.com/Domenick1991/flightboard/internal/repository"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Notifier receives events after they are durable. Broadcasting is a
// best-effort side effect of a committed transaction; nothing it does can
// reach back into the commit path.
type Notifier interface {
	Broadcast(event *domain.FlightEvent)
}

type Cache interface {
	InvalidateFlight(ctx context.Context, flightNumber string) error
}

// Applier consumes flight events in partition order and applies each one to
// durable state. The broker's partition key (flight number) guarantees a
// single applier per flight, so the repository transaction is the only
// synchronization needed.
type Applier struct {
	flights  repository.FlightRepository
	cache    Cache
	notifier Notifier
	log      logger.Logger
	metrics  *metrics.Metrics
}

func NewApplier(flights repository.FlightRepository, cache Cache, notifier Notifier, log logger.Logger, m *metrics.Metrics) *Applier {
	return &Applier{
		flights:  flights,
		cache:    cache,
		notifier: notifier,
		log:      log,
		metrics:  m,
	}
}

// HandleMessage is the consumer handler. It never returns an error for a
// per-message failure: a malformed payload, a missing flight or a failed
// transaction is logged and the message is acknowledged, so one bad message
// cannot stall its partition. A dropped synthetic event self-heals on the
// next simulator tick.
func (a *Applier) HandleMessage(ctx context.Context, msg kafkaGo.Message) error {
	var envelope kafkaMsg.FlightEventMessage
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		a.log.Error("decode flight event message", "error", err, "key", string(msg.Key))
		return nil
	}

	event := envelope.ToDomain()
	if _, err := a.Apply(ctx, &event); err != nil {
		a.log.Error("apply flight event", "error", err, "flight_number", event.FlightNumber, "event_type", event.EventType)
		if a.metrics != nil {
			a.metrics.ApplyFailures.Inc()
		}
	}
	return nil
}

// Apply runs the transition for one event inside the repository's single
// transaction, then invalidates the cache and hands the enriched event to
// the notifier. The broadcast happens only after the commit: nothing reaches
// clients before it is durable.
func (a *Applier) Apply(ctx context.Context, event *domain.FlightEvent) (*domain.Flight, error) {
	flight, err := a.flights.ApplyEvent(ctx, event.FlightNumber, a.transition(event), event)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			a.log.Warn("event for unknown flight", "flight_number", event.FlightNumber, "event_type", event.EventType)
			if a.metrics != nil {
				a.metrics.UnknownFlights.Inc()
			}
			return nil, nil
		}
		return nil, err
	}

	if a.metrics != nil {
		a.metrics.EventsApplied.WithLabelValues(string(event.EventType)).Inc()
	}

	if a.cache != nil {
		if err := a.cache.InvalidateFlight(ctx, event.FlightNumber); err != nil {
			a.log.Warn("invalidate flight cache", "error", err, "flight_number", event.FlightNumber)
		}
	}

	if a.notifier != nil {
		a.notifier.Broadcast(event)
	}

	a.log.Info("applied flight event",
		"flight_number", event.FlightNumber,
		"event_type", event.EventType,
		"event_id", event.ID,
		"status", flight.Status)
	return flight, nil
}

// transition returns the mutator for one event. The switch is exhaustive
// over the event-type enumeration; adding a type means adding a case here.
// Mutators that cannot use their payload log it and leave the field
// unchanged, but the audit row is still written.
func (a *Applier) transition(event *domain.FlightEvent) func(*domain.Flight) error {
	return func(f *domain.Flight) error {
		if f.Status.IsTerminal() && event.EventType != domain.EventReinstatement {
			a.log.Warn("event for flight in terminal status ignored",
				"flight_number", f.FlightNumber, "status", f.Status, "event_type", event.EventType)
			return nil
		}

		switch event.EventType {
		case domain.EventDelay:
			minutes, err := strconv.Atoi(event.NewValue)
			if err != nil || minutes < 0 {
				a.log.Warn("unparseable delay payload", "flight_number", f.FlightNumber, "new_value", event.NewValue)
				return nil
			}
			f.Status = domain.FlightStatusDelayed
			f.DelayMinutes = minutes
			departure := f.ScheduledDeparture.Add(time.Duration(minutes) * time.Minute)
			f.ActualDeparture = &departure

		case domain.EventGateChange:
			f.Gate = event.NewValue

		case domain.EventBoardingStarted, domain.EventBoardingCompleted:
			f.Status = domain.FlightStatusBoarding

		case domain.EventCancellation:
			f.Status = domain.FlightStatusCancelled

		case domain.EventReinstatement:
			f.Status = domain.FlightStatusOnTime
			f.DelayMinutes = 0
			f.ActualDeparture = nil

		case domain.EventDeparted:
			now := time.Now().UTC()
			f.Status = domain.FlightStatusDeparted
			f.ActualDeparture = &now

		case domain.EventArrived:
			now := time.Now().UTC()
			f.Status = domain.FlightStatusArrived
			f.ActualArrival = &now

		case domain.EventDiverted:
			f.Status = domain.FlightStatusDiverted
			f.Destination = event.NewValue

		case domain.EventTerminalChange:
			f.Terminal = event.NewValue

		case domain.EventTimeChange:
			departure, err := time.Parse(time.RFC3339, event.NewValue)
			if err != nil {
				a.log.Warn("unparseable time change payload", "flight_number", f.FlightNumber, "new_value", event.NewValue)
				return nil
			}
			f.ScheduledDeparture = departure

		case domain.EventStatusUpdate:
			status, ok := domain.ParseFlightStatus(event.NewValue)
			if !ok {
				a.log.Warn("invalid status update payload", "flight_number", f.FlightNumber, "new_value", event.NewValue)
				return nil
			}
			f.Status = status

		default:
			a.log.Warn("unknown event type", "flight_number", f.FlightNumber, "event_type", event.EventType)
		}
		return nil
	}
}
