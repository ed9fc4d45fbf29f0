package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightboard/config"
	"github.com/Domenick1991/flightboard/internal/bootstrap"
	"github.com/Domenick1991/flightboard/internal/cache"
	"github.com/Domenick1991/flightboard/internal/kafka"
	"github.com/Domenick1991/flightboard/internal/logger"
	"github.com/Domenick1991/flightboard/internal/metrics"
	"github.com/Domenick1991/flightboard/internal/repository"
	"github.com/Domenick1991/flightboard/internal/service/applier"
	"github.com/Domenick1991/flightboard/internal/service/flights"
	"github.com/Domenick1991/flightboard/internal/stream"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	log := logger.NewLogger()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	m := metrics.NewMetrics("flightboard")
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)

	flightRepo := repository.NewFlightRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	flightService := flights.NewFlightService(flightRepo, eventRepo, redisCache, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)

	hub := stream.NewHub(cfg.Stream.ClientBufferSize, time.Duration(cfg.Stream.HeartbeatSeconds)*time.Second, log, m)
	go hub.Run(ctx)

	eventApplier := applier.NewApplier(flightRepo, redisCache, hub, log, m)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightEventsTopic)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, eventApplier.HandleMessage); err != nil {
			log.Error("consumer stopped", "error", err)
		}
	}()

	if err := bootstrap.Run(ctx, cfg, flightService, hub); err != nil {
		log.Fatal("server error", "error", err)
	}
}
