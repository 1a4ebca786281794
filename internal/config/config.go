package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/games.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// PublicURL is the externally reachable base URL, used to build the
	// student join links encoded in QR codes.
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`

	// AdminSecret guards the bulk-purge endpoint. Either the plain secret or
	// a pre-computed bcrypt hash must be set; when both are, the hash wins.
	AdminSecret     string `env:"ADMIN_SECRET"`
	AdminSecretHash string `env:"ADMIN_SECRET_HASH"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.AdminSecret == "" && cfg.AdminSecretHash == "" {
		return nil, fmt.Errorf("ADMIN_SECRET or ADMIN_SECRET_HASH must be set")
	}
	return &cfg, nil
}
