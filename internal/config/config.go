package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration. MONGO_URI has no
// default; startup must fail without it.
type Config struct {
	Port      string `env:"PORT" envDefault:"5000"`
	MongoURI  string `env:"MONGO_URI"`
	Database  string `env:"MONGO_DATABASE" envDefault:"userhub"`
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	LogLevel  int    `env:"LOG_LEVEL" envDefault:"0"`
}

// Load reads a .env file when present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not set")
	}

	return &cfg, nil
}
