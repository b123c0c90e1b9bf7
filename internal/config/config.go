// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the API server and the CLI read at start-up.
type Config struct {
	Port             string
	DatabaseURL      string // empty means descriptions live in memory
	GeminiAPIKey     string
	GeminiModel      string
	GeneratorURL     string // base URL the form controller posts to
	GeneratorTimeout time.Duration
	CORSAllowOrigins []string
}

const (
	defaultPort             = "8080"
	defaultModel            = "gemini-1.5-flash"
	defaultGeneratorTimeout = 2 * time.Minute
)

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply values.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:             valueOr(getenv("PORT"), defaultPort),
		DatabaseURL:      getenv("DATABASE_URL"),
		GeminiAPIKey:     getenv("GEMINI_API_KEY"),
		GeminiModel:      valueOr(getenv("GEMINI_MODEL"), defaultModel),
		GeneratorTimeout: defaultGeneratorTimeout,
		CORSAllowOrigins: []string{"*"},
	}
	cfg.GeneratorURL = valueOr(getenv("GENERATOR_URL"), "http://localhost:"+cfg.Port)

	if raw := getenv("GENERATOR_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid GENERATOR_TIMEOUT %q: %w", raw, err)
		}
		cfg.GeneratorTimeout = d
	}

	if raw := getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSAllowOrigins = origins
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("config error: PORT must be a valid TCP port, got %q", c.Port)
	}
	if c.GeneratorTimeout <= 0 {
		return fmt.Errorf("config error: GENERATOR_TIMEOUT must be positive")
	}
	if !strings.HasPrefix(c.GeneratorURL, "http://") && !strings.HasPrefix(c.GeneratorURL, "https://") {
		return fmt.Errorf("config error: GENERATOR_URL must be an http(s) URL, got %q", c.GeneratorURL)
	}
	if len(c.CORSAllowOrigins) == 0 {
		return fmt.Errorf("config error: CORS_ALLOW_ORIGINS must list at least one origin")
	}
	return nil
}

// AllowAllOrigins reports whether CORS is configured with the wildcard origin.
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.CORSAllowOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
