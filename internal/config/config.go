// Package config provides environment-driven configuration for the CLI and
// server. The .env autoload happens in main via godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults.
const (
	DefaultPort            = 8080
	DefaultQAMaxIterations = 1
)

// Config holds the runtime configuration shared by the CLI and the server.
type Config struct {
	GeminiAPIKey    string
	DatabaseURL     string
	Port            int
	ChromePath      string
	QAMaxIterations int
	Verbose         bool
}

// FromEnv reads configuration from environment variables. Missing optional
// values take defaults; validation of required values is the caller's call
// since the CLI and server require different fields.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ChromePath:      os.Getenv("CHROME_PATH"),
		Port:            DefaultPort,
		QAMaxIterations: DefaultQAMaxIterations,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT value: %s", portStr)
		}
		cfg.Port = port
	}

	if iterStr := os.Getenv("QA_MAX_ITERATIONS"); iterStr != "" {
		iterations, err := strconv.Atoi(iterStr)
		if err != nil || iterations < 1 {
			return nil, fmt.Errorf("invalid QA_MAX_ITERATIONS value: %s", iterStr)
		}
		cfg.QAMaxIterations = iterations
	}

	return cfg, nil
}

// RequireAPIKey returns an error when no Gemini key is configured.
func (c *Config) RequireAPIKey() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	return nil
}
