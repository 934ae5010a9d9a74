// Package config loads client configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for local development against cmd/hub-server.
const (
	DefaultBaseURL = "http://localhost:5002/api"
	DefaultTimeout = 30 * time.Second
)

// Config holds the runtime configuration of the client. The API base URL is
// the only recognized remote endpoint option.
type Config struct {
	BaseURL string        // remote API base, e.g. https://api.example.com/api
	Timeout time.Duration // per-request timeout for the HTTP client
}

// Load reads configuration from the environment, picking up a local .env file
// when present. Missing values fall back to documented defaults.
func Load() Config {
	_ = godotenv.Load() // absent .env is fine

	cfg := Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
	if v := os.Getenv("BOOKHUB_API_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("BOOKHUB_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}
