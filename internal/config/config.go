package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	MediaDir      string // Base path for uploaded profile images
	JWTSecret     string
	AllowedOrigin string
	SweepSchedule string // Cron expression for the orphan media sweep
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./affirmly.db"),
		MediaDir:      getEnv("MEDIA_DIR", "./media"),
		JWTSecret:     secret,
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		SweepSchedule: getEnv("MEDIA_SWEEP_SCHEDULE", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
