package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/Domenick1991/flightboard/internal/domain"
	"github.com/Domenick1991/flightboard/internal/kafka"
	"github.com/Domenick1991/flightboard/internal/logger"
	"github.com/Domenick1991/flightboard/internal/metrics"
	"github.com/Domenick1991/flightboard/internal/repository"
)

type Producer interface {
	Publish(ctx context.Context, key string, payload interface{}) error
}

// eventWeights is the discrete distribution for synthetic events, resolved
// with a cumulative walk over a single uniform draw. Weights sum to 100.
// REINSTATEMENT is deliberately absent: terminal flights leave the candidate
// set and only an operator-issued event brings them back.
var eventWeights = []struct {
	eventType domain.EventType
	weight    int
}{
	{domain.EventDelay, 60},
	{domain.EventGateChange, 20},
	{domain.EventBoardingStarted, 10},
	{domain.EventCancellation, 10},
}

var gatePool = []string{"A1", "A2", "A3", "B1", "B2", "B3", "C1", "C2", "D1", "D2"}

// Simulator synthesizes plausible flight-state changes at a fixed cadence
// and publishes them to the broker. It never touches flight state itself;
// the applier is the single writer.
type Simulator struct {
	flights  repository.FlightRepository
	producer Producer
	rng      *rand.Rand
	tick     time.Duration
	minDelay int
	maxDelay int
	log      logger.Logger
	metrics  *metrics.Metrics
}

func NewSimulator(flights repository.FlightRepository, producer Producer, rng *rand.Rand, tick time.Duration, minDelay, maxDelay int, log logger.Logger, m *metrics.Metrics) *Simulator {
	return &Simulator{
		flights:  flights,
		producer: producer,
		rng:      rng,
		tick:     tick,
		minDelay: minDelay,
		maxDelay: maxDelay,
		log:      log,
		metrics:  m,
	}
}

// Run ticks until the context is canceled. Ticks run on one goroutine, so a
// slow tick delays the next instead of overlapping it.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Error("simulator tick", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Tick selects one active flight and publishes one synthetic event for it.
// An empty candidate set is a logged no-op. A publish failure is logged and
// not retried: the simulator is a synthetic source, not a system of record,
// and the next tick produces a fresh attempt anyway.
func (s *Simulator) Tick(ctx context.Context) error {
	candidates, err := s.flights.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active flights: %w", err)
	}
	if len(candidates) == 0 {
		s.log.Info("no active flights, skipping tick")
		return nil
	}

	flight := candidates[s.rng.Intn(len(candidates))]
	event := s.buildEvent(&flight)

	if err := s.producer.Publish(ctx, event.FlightNumber, event); err != nil {
		s.log.Error("publish flight event", "error", err, "flight_number", event.FlightNumber, "event_type", event.EventType)
		return nil
	}

	if s.metrics != nil {
		s.metrics.EventsPublished.Inc()
	}
	s.log.Info("published flight event", "flight_number", event.FlightNumber, "event_type", event.EventType, "new_value", event.NewValue)
	return nil
}

func (s *Simulator) buildEvent(flight *domain.Flight) kafka.FlightEventMessage {
	eventType := s.pickEventType()
	msg := kafka.FlightEventMessage{
		FlightNumber:   flight.FlightNumber,
		EventType:      string(eventType),
		EventTimestamp: time.Now().UTC(),
	}

	switch eventType {
	case domain.EventDelay:
		added := s.minDelay + s.rng.Intn(s.maxDelay-s.minDelay+1)
		total := flight.DelayMinutes + added
		msg.PreviousValue = strconv.Itoa(flight.DelayMinutes)
		msg.NewValue = strconv.Itoa(total)
		msg.Description = fmt.Sprintf("Flight %s delayed by %d minutes, %d minutes total", flight.FlightNumber, added, total)

	case domain.EventGateChange:
		msg.PreviousValue = flight.Gate
		msg.NewValue = s.pickGate(flight.Gate)
		msg.Description = fmt.Sprintf("Flight %s moved from gate %s to gate %s", flight.FlightNumber, flight.Gate, msg.NewValue)

	case domain.EventBoardingStarted:
		msg.PreviousValue = string(flight.Status)
		msg.NewValue = string(domain.FlightStatusBoarding)
		msg.Description = fmt.Sprintf("Flight %s is now boarding at gate %s", flight.FlightNumber, flight.Gate)

	case domain.EventCancellation:
		msg.PreviousValue = string(flight.Status)
		msg.NewValue = string(domain.FlightStatusCancelled)
		msg.Description = fmt.Sprintf("Flight %s has been cancelled", flight.FlightNumber)
	}
	return msg
}

func (s *Simulator) pickEventType() domain.EventType {
	draw := s.rng.Intn(100)
	cumulative := 0
	for _, entry := range eventWeights {
		cumulative += entry.weight
		if draw < cumulative {
			return entry.eventType
		}
	}
	return eventWeights[len(eventWeights)-1].eventType
}

// pickGate draws from the gate pool until the result differs from the
// current gate, so a GATE_CHANGE never carries the same value twice.
func (s *Simulator) pickGate(current string) string {
	for {
		gate := gatePool[s.rng.Intn(len(gatePool))]
		if gate != current {
			return gate
		}
	}
}
