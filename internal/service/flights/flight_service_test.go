package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListActive(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) ApplyEvent(ctx context.Context, flightNumber string, mutate func(*domain.Flight) error, event *domain.FlightEvent) (*domain.Flight, error) {
	args := m.Called(ctx, flightNumber, mutate, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) ListByFlight(ctx context.Context, flightNumber string) ([]domain.FlightEvent, error) {
	args := m.Called(ctx, flightNumber)
	return args.Get(0).([]domain.FlightEvent), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) GetFlight(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlight(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{
			ID:                 1,
			FlightNumber:       "AA123",
			Origin:             "JFK",
			Destination:        "LAX",
			ScheduledDeparture: time.Now(),
			ScheduledArrival:   time.Now().Add(6 * time.Hour),
			Status:             domain.FlightStatusOnTime,
			Gate:               "A1",
		},
	}
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockEvents := &MockEventRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockEvents, mockCache, time.Minute)

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockEvents := &MockEventRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockEvents, mockCache, time.Minute)

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx).Return(flights, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_List_CacheError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockEvents := &MockEventRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockEvents, mockCache, time.Minute)

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), errors.New("cache error")).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_RepositoryError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockEvents := &MockEventRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockEvents, mockCache, time.Minute)

	ctx := context.Background()

	expectedErr := errors.New("database error")
	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("List", ctx).Return([]domain.Flight{}, expectedErr).Once()

	result, err := service.List(ctx)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, expectedErr, err)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_GetByNumber_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockEvents := &MockEventRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockEvents, mockCache, time.Minute)

	ctx := context.Background()
	flight := &sampleFlights()[0]

	mockCache.On("GetFlight", ctx, "AA123").Return(nil, nil).Once()
	mockRepo.On("GetByNumber", ctx, "AA123").Return(flight, nil).Once()
	mockCache.On("SetFlight", ctx, flight).Return(nil).Once()

	result, err := service.GetByNumber(ctx, "AA123")

	assert.NoError(t, err)
	assert.Equal(t, flight, result)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_GetByNumber_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockEvents := &MockEventRepository{}

	service := NewFlightService(mockRepo, mockEvents, nil, time.Minute)

	ctx := context.Background()

	expectedErr := errors.New("flight not found")
	mockRepo.On("GetByNumber", ctx, "ZZ999").Return(nil, expectedErr).Once()

	result, err := service.GetByNumber(ctx, "ZZ999")

	assert.Error(t, err)
	assert.Nil(t, result)

	mockRepo.AssertExpectations(t)
}

func TestFlightService_EventsByFlight(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockEvents := &MockEventRepository{}

	service := NewFlightService(mockRepo, mockEvents, nil, time.Minute)

	ctx := context.Background()
	events := []domain.FlightEvent{
		{ID: 2, FlightNumber: "AA123", EventType: domain.EventGateChange},
		{ID: 1, FlightNumber: "AA123", EventType: domain.EventDelay},
	}

	mockEvents.On("ListByFlight", ctx, "AA123").Return(events, nil).Once()

	result, err := service.EventsByFlight(ctx, "AA123")

	assert.NoError(t, err)
	assert.Equal(t, events, result)

	mockEvents.AssertExpectations(t)
}

func TestFlightService_NoCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockEvents := &MockEventRepository{}

	service := NewFlightService(mockRepo, mockEvents, nil, time.Minute)

	ctx := context.Background()
	flights := sampleFlights()

	mockRepo.On("List", ctx).Return(flights, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockRepo.AssertExpectations(t)
}
