package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Cache     CacheConfig     `yaml:"cache"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Stream    StreamConfig    `yaml:"stream"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	FlightEventsTopic string   `yaml:"flight_events_topic"`
	GroupID           string   `yaml:"group_id"`
}

type CacheConfig struct {
	FlightsTTLSeconds int `yaml:"flights_ttl_seconds"`
}

type SimulatorConfig struct {
	TickSeconds     int `yaml:"tick_seconds"`
	MinDelayMinutes int `yaml:"min_delay_minutes"`
	MaxDelayMinutes int `yaml:"max_delay_minutes"`
}

type StreamConfig struct {
	HeartbeatSeconds int `yaml:"heartbeat_seconds"`
	ClientBufferSize int `yaml:"client_buffer_size"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Simulator.TickSeconds == 0 {
		cfg.Simulator.TickSeconds = 30
	}
	if cfg.Simulator.MinDelayMinutes == 0 {
		cfg.Simulator.MinDelayMinutes = 15
	}
	if cfg.Simulator.MaxDelayMinutes == 0 {
		cfg.Simulator.MaxDelayMinutes = 60
	}
	if cfg.Stream.HeartbeatSeconds == 0 {
		cfg.Stream.HeartbeatSeconds = 15
	}
	if cfg.Stream.ClientBufferSize == 0 {
		cfg.Stream.ClientBufferSize = 32
	}
	if cfg.Cache.FlightsTTLSeconds == 0 {
		cfg.Cache.FlightsTTLSeconds = 30
	}
}
