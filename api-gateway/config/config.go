package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the gateway configuration. The gateway fronts a single
// upstream API service.
type Config struct {
	Port        string
	APIBaseURL  string
	Timeout     time.Duration
	CacheTTL    time.Duration
	RateLimit   int           // requests per window, per client
	RateWindow  time.Duration
	HealthCheck string
}

// Load reads the gateway configuration from the environment
func Load() *Config {
	return &Config{
		Port:        getEnv("GATEWAY_PORT", "8000"),
		APIBaseURL:  getEnv("API_SERVICE_URL", "http://localhost:8080"),
		Timeout:     30 * time.Second,
		CacheTTL:    time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		RateLimit:   getEnvInt("RATE_LIMIT", 100),
		RateWindow:  time.Minute,
		HealthCheck: "/health",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
