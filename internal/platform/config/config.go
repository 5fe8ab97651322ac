// Package config builds runtime configuration from environment variables so
// main stays lean. Every value has a development default; production deploys
// override through the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server process needs at startup.
type Config struct {
	HTTPAddr      string
	PostgresDSN   string
	RedisURL      string
	KafkaBrokers  []string
	JWTSigningKey string
	LogLevel      string

	// SessionTTL bounds how long a login session stays valid in Redis.
	SessionTTL time.Duration

	// CleanupInterval is how often the reservation cleanup worker scans.
	// CleanupRetention is how long a potentially_invalid reservation is kept
	// before deletion.
	CleanupInterval  time.Duration
	CleanupRetention time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:         getEnv("RESERVAS_ADDR", ":8080"),
		PostgresDSN:      os.Getenv("RESERVAS_POSTGRES_DSN"),
		RedisURL:         os.Getenv("RESERVAS_REDIS_URL"),
		KafkaBrokers:     splitList(os.Getenv("RESERVAS_KAFKA_BROKERS")),
		JWTSigningKey:    getEnv("RESERVAS_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		LogLevel:         getEnv("RESERVAS_LOG_LEVEL", "info"),
		SessionTTL:       getDuration("RESERVAS_SESSION_TTL", 12*time.Hour),
		CleanupInterval:  getDuration("RESERVAS_CLEANUP_INTERVAL", time.Hour),
		CleanupRetention: getDuration("RESERVAS_CLEANUP_RETENTION", 7*24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Bare integers are treated as seconds for operator convenience.
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
