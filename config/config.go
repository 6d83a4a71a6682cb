package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret     string `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTLMin   int    `env:"TOKEN_TTL_MIN"  envDefault:"30" validate:"min=1,max=1440"`
	TokenTimeZone string `env:"TOKEN_TIME_ZONE" envDefault:"America/Sao_Paulo" validate:"required"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"0" validate:"min=0,max=31"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

// TokenLocation loads the fixed time zone used for token issuance and
// verification.
func (c *Config) TokenLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TokenTimeZone)
	if err != nil {
		return nil, fmt.Errorf("load token time zone: %w", err)
	}
	return loc, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
