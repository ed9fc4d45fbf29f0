package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/flightboard/internal/domain"
	"github.com/Domenick1991/flightboard/internal/repository"
)

// FlightUseCase is the read surface consumed by the HTTP layer and the
// natural-language query assistant. It reads committed state only; the
// applier is the sole writer.
type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	EventsByFlight(ctx context.Context, flightNumber string) ([]domain.FlightEvent, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetFlight(ctx context.Context, flightNumber string) (*domain.Flight, error)
	SetFlight(ctx context.Context, flight *domain.Flight) error
}

type FlightService struct {
	repo     repository.FlightRepository
	events   repository.EventRepository
	cache    Cache
	cacheTTL time.Duration
}

func NewFlightService(repo repository.FlightRepository, events repository.EventRepository, cache Cache, cacheTTL time.Duration) *FlightService {
	return &FlightService{repo: repo, events: events, cache: cache, cacheTTL: cacheTTL}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlight(ctx, flightNumber); err == nil && cached != nil {
			return cached, nil
		}
	}

	flight, err := s.repo.GetByNumber(ctx, flightNumber)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlight(ctx, flight)
	}
	return flight, nil
}

// EventsByFlight returns the audit trail, most recent first. Not cached: the
// trail grows on every applied event and reads are rare compared to the board.
func (s *FlightService) EventsByFlight(ctx context.Context, flightNumber string) ([]domain.FlightEvent, error) {
	return s.events.ListByFlight(ctx, flightNumber)
}

var _ FlightUseCase = (*FlightService)(nil)
