// Package config centralises configuration parsing for the signup service.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures runtime configuration values for the signup service.
type Config struct {
	HTTPAddress     string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	SeedPath        string        `env:"SEED_PATH"`
	KafkaBrokers    []string      `env:"KAFKA_BROKERS"` // empty disables roster events
	RosterTopic     string        `env:"ROSTER_EVENTS_TOPIC" envDefault:"roster_events"`
	EnforceCapacity bool          `env:"ENFORCE_CAPACITY" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
