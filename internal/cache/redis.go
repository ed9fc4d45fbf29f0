package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightboard/config"
	"github.com/Domenick1991/flightboard/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// InvalidateFlight drops the board cache after the applier commits a change,
// so the next read reflects the new row instead of waiting out the TTL.
func (c *RedisCache) InvalidateFlight(ctx context.Context, flightNumber string) error {
	return c.client.Del(ctx, flightsKey(), flightKey(flightNumber)).Err()
}

func (c *RedisCache) GetFlight(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	data, err := c.client.Get(ctx, flightKey(flightNumber)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var f domain.Flight
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *RedisCache) SetFlight(ctx context.Context, flight *domain.Flight) error {
	payload, err := json.Marshal(flight)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightKey(flight.FlightNumber), payload, c.flightsTTL).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func flightKey(flightNumber string) string {
	return fmt.Sprintf("cache:flight:%s", flightNumber)
}
