// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds process configuration. Values come from the
// environment, optionally seeded from a .env file in the working
// directory.
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	DataDir        string        `envconfig:"DATA_DIR" default:"data"`
	GoogleAPIKey   string        `envconfig:"GOOGLE_API_KEY"`
	GeminiModel    string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-lite"`
	DebounceWindow time.Duration `envconfig:"DEBOUNCE_WINDOW" default:"1s"`
	DebugMode      bool          `envconfig:"DEBUG_MODE" default:"false"`
}

// Load reads the environment into a Config and makes sure the data
// directory exists. A missing .env file is not an error; a missing
// API key is not an error either, the service starts unconfigured.
func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", cfg.DataDir, err)
	}

	return &cfg, nil
}

// Configured reports whether the generation client has an API key.
func (c *Config) Configured() bool {
	return c.GoogleAPIKey != ""
}

// LLMConfig returns the provider configuration map for the
// generation client.
func (c *Config) LLMConfig() map[string]string {
	return map[string]string{
		"api_key":       c.GoogleAPIKey,
		"default_model": c.GeminiModel,
	}
}
