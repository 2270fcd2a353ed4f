// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries everything the CLI needs: provider credentials, scraper
// behavior, and logging. Every field is optional; providers missing their
// credentials simply report themselves unconfigured.
type Config struct {
	// Text rewriting backends.
	DeepSeekAPIKey  string `env:"DEEPSEEK_API_KEY"`
	DeepSeekBaseURL string `env:"DEEPSEEK_BASE_URL"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`

	// Image generation backends. Jimeng needs both the key and the
	// inference endpoint id to be usable.
	JimengAPIKey     string `env:"JIMENG_API_KEY"`
	JimengEndpointID string `env:"JIMENG_ENDPOINT_ID"`

	// Scraper behavior. Cookies is the raw "k=v; k2=v2" cookie header
	// copied from a logged-in browser session.
	Cookies        string        `env:"REDNOTE_COOKIES"`
	Headless       bool          `env:"HEADLESS" envDefault:"true"`
	ExtractTimeout time.Duration `env:"EXTRACT_TIMEOUT" envDefault:"45s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges. Credentials are deliberately not required
// here; their absence is surfaced per provider instead.
func (c *Config) Validate() error {
	if c.ExtractTimeout <= 0 {
		return fmt.Errorf("config error: EXTRACT_TIMEOUT must be positive, got %s", c.ExtractTimeout)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}
