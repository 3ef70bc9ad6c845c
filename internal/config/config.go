package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	API   APIConfig
	OAuth OAuthConfig
	Store StoreConfig
}

type APIConfig struct {
	BaseURL string        `env:"PORTAL_API_URL" envDefault:"http://127.0.0.1:8000/api"`
	Timeout time.Duration `env:"PORTAL_HTTP_TIMEOUT" envDefault:"15s"`
}

type OAuthConfig struct {
	// RedirectURI is registered with the backend and must point at the
	// loopback callback server.
	RedirectURI  string `env:"PORTAL_REDIRECT_URI" envDefault:"http://127.0.0.1:53682/auth/callback"`
	CallbackAddr string `env:"PORTAL_CALLBACK_ADDR" envDefault:"127.0.0.1:53682"`
}

type StoreConfig struct {
	CredentialsFile string `env:"PORTAL_CREDENTIALS_FILE"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Store.CredentialsFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config directory: %w", err)
		}
		cfg.Store.CredentialsFile = filepath.Join(dir, "csesa", "credentials.json")
	}

	return cfg, nil
}
