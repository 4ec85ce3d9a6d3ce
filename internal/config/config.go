package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment. A
// .env file is loaded first when present. An empty RedisAddr selects
// the in-memory record stores.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func Load() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
