package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightboard/config"
	"github.com/Domenick1991/flightboard/internal/kafka"
	"github.com/Domenick1991/flightboard/internal/logger"
	"github.com/Domenick1991/flightboard/internal/metrics"
	"github.com/Domenick1991/flightboard/internal/repository"
	"github.com/Domenick1991/flightboard/internal/service/simulator"
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

	flightRepo := repository.NewFlightRepository(pool)

	seeded, err := repository.SeedIfEmpty(ctx, flightRepo)
	if err != nil {
		log.Fatal("seed flights", "error", err)
	}
	if seeded > 0 {
		log.Info("seeded flights", "count", seeded)
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.FlightEventsTopic)
	defer producer.Close()

	m := metrics.NewMetrics("flightboard_simulator")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	sim := simulator.NewSimulator(
		flightRepo,
		producer,
		rng,
		time.Duration(cfg.Simulator.TickSeconds)*time.Second,
		cfg.Simulator.MinDelayMinutes,
		cfg.Simulator.MaxDelayMinutes,
		log,
		m,
	)

	log.Info("simulator started", "tick_seconds", cfg.Simulator.TickSeconds)
	sim.Run(ctx)
	log.Info("simulator stopped")
}
