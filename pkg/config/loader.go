package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates cfg from the process environment using `env` struct tags.
// Defaults come from `envDefault`; list values such as broker addresses use
// `envSeparator`.
//
// Example:
//
//	type Config struct {
//	    HTTPPort     int      `env:"HTTP_PORT" envDefault:"8080"`
//	    KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("load environment config: %w", err)
	}
	return nil
}
