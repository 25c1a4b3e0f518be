package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	ServiceName  string       `yaml:"service_name" env:"SERVICE_NAME" env-default:"hotel-booking"`
	Database     Database     `yaml:"database"`
	Redis        Redis        `yaml:"redis"`
	CacheTTL     CacheTTL     `yaml:"cache_ttl"`
	Invalidation Invalidation `yaml:"invalidation"`
	Kafka        Kafka        `yaml:"kafka"`
}

type Database struct {
	User         string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password     string `yaml:"password" env:"DB_PASSWORD" env-default:"password"`
	DatabaseName string `yaml:"database_name" env:"DB_NAME" env-default:"hotelbooking"`
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	SSLMode      string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
}

func (d *Database) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DatabaseName, d.SSLMode)
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`

	// OpTimeout bounds every cache get/set/delete so a slow Redis
	// degrades to a cache miss instead of blocking the caller.
	OpTimeout time.Duration `yaml:"op_timeout" env:"REDIS_OP_TIMEOUT" env-default:"250ms"`
}

func (r *Redis) GetRedisURL() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// CacheTTL holds per-entity-class expirations. Volatile data (bookings,
// availability) keeps shorter lifetimes than near-static hotel metadata.
type CacheTTL struct {
	Booking      time.Duration `yaml:"booking" env:"CACHE_TTL_BOOKING" env-default:"5m"`
	Availability time.Duration `yaml:"availability" env:"CACHE_TTL_AVAILABILITY" env-default:"1m"`
	Hotel        time.Duration `yaml:"hotel" env:"CACHE_TTL_HOTEL" env-default:"1h"`
	User         time.Duration `yaml:"user" env:"CACHE_TTL_USER" env-default:"30m"`
	Search       time.Duration `yaml:"search" env:"CACHE_TTL_SEARCH" env-default:"2m"`
}

type Invalidation struct {
	Enabled bool   `yaml:"enabled" env:"INVALIDATION_ENABLED" env-default:"true"`
	Channel string `yaml:"channel" env:"INVALIDATION_CHANNEL" env-default:"cache-invalidation"`
}

type Kafka struct {
	Enabled           bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers           []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092" env-separator:","`
	NotificationTopic string   `yaml:"notification_topic" env:"KAFKA_NOTIFICATION_TOPIC" env-default:"booking-notifications"`
}

func Initialise(configPath string, useEnv bool) (*Config, error) {
	cfg := &Config{}

	if useEnv {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment variables: %w", err)
		}
		return cfg, nil
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
			return cfg, nil
		}
	}

	// Fallback to environment variables
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	return cfg, nil
}
