package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// DefaultRoomLifetime is applied when a creation request omits a budget.
	// Room lifetimes are in minutes throughout.
	DefaultRoomLifetime int

	// SweepInterval is how often the auto-destruct sweeper runs.
	SweepInterval time.Duration

	// StaticDir holds the entry page and its assets.
	StaticDir string
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "3000"),
		Env:                 getEnv("ENV", "development"),
		DefaultRoomLifetime: getEnvInt("DEFAULT_ROOM_LIFETIME_MINUTES", 360),
		SweepInterval:       getEnvDuration("SWEEP_INTERVAL", 30*time.Second),
		StaticDir:           getEnv("STATIC_DIR", "web/static"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
