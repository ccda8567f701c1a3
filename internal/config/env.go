package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/xtding233/breeding-backend/internal/logging"
)

// Server holds process settings for cmd/server, read from the environment.
type Server struct {
	HTTPAddr       string        `env:"BREEDING_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr       string        `env:"BREEDING_GRPC_ADDR" envDefault:":9090"`
	ConfigDir      string        `env:"BREEDING_CONFIG_DIR" envDefault:"config"`
	Profile        string        `env:"BREEDING_PROFILE"`
	ReloadInterval time.Duration `env:"BREEDING_RELOAD_INTERVAL" envDefault:"2s"`
	LogLevel       string        `env:"BREEDING_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"BREEDING_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer reads and checks the server settings.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Server{}, fmt.Errorf("BREEDING_LOG_LEVEL: %w", err)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Server{}, fmt.Errorf("BREEDING_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.ReloadInterval < 0 {
		return Server{}, fmt.Errorf("BREEDING_RELOAD_INTERVAL must not be negative, got %s", cfg.ReloadInterval)
	}
	return cfg, nil
}

func (s Server) Level() (slog.Level, error) {
	return logging.ParseLevel(s.LogLevel)
}
