package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ClientConfig configures the cardio command line client.
type ClientConfig struct {
	APIURL    string        `env:"API_URL" envDefault:"http://localhost:3000"`
	SessionDB string        `env:"CARDIO_SESSION_DB"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
}

func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SessionDB == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SessionDB = filepath.Join(home, ".meucoracao", "session.db")
	}

	return cfg, nil
}
