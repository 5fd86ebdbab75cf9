package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     []byte
	SessionTTL    time.Duration
	BcryptCost    int
	StatsInterval string // cron spec for the stats reporter
	CORSOrigin    string
	Production    bool
}

// Load loads configuration from environment variables or sets defaults.
// JWT_SECRET has no default: a process started without one would mint
// tokens anyone with the repo could forge.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	ttlHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./gatehouse.db"),
		JWTSecret:     []byte(secret),
		SessionTTL:    time.Duration(ttlHours) * time.Hour,
		BcryptCost:    cost,
		StatsInterval: getEnv("STATS_INTERVAL", "@every 15m"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		Production:    getEnv("APP_ENV", "development") == "production",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
