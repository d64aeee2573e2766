package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	domain "github.com/example/tasklist/domain/task"
)

// Config holds the application settings read from the environment.
type Config struct {
	HTTPAddr        string
	DefaultFilter   domain.Filter
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for unset values.
func Load() (*Config, error) {
	filter, err := domain.ParseFilter(getEnv("TASKLIST_DEFAULT_FILTER", "all"))
	if err != nil {
		return nil, fmt.Errorf("TASKLIST_DEFAULT_FILTER: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("TASKLIST_SHUTDOWN_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("TASKLIST_SHUTDOWN_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("TASKLIST_SHUTDOWN_TIMEOUT: must be positive, got %s", timeout)
	}

	level := strings.ToLower(getEnv("TASKLIST_LOG_LEVEL", "info"))
	switch level {
	case "info", "error":
	default:
		return nil, fmt.Errorf("TASKLIST_LOG_LEVEL: unknown level %q", level)
	}

	return &Config{
		HTTPAddr:        getEnv("TASKLIST_HTTP_ADDR", ":3000"),
		DefaultFilter:   filter,
		LogLevel:        level,
		ShutdownTimeout: timeout,
	}, nil
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
