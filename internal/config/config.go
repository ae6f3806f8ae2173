// Package config reads the console's settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        int
	UpstreamURL string

	SessionSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	PreviewBucket  string
	PreviewTTL     time.Duration
}

// Load reads configuration from the environment. UPSTREAM_URL and
// SESSION_SECRET are required; everything else has development defaults.
// Redis and MinIO addresses left empty fall back to in-memory stores.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           envInt("PORT", 8080),
		UpstreamURL:    os.Getenv("UPSTREAM_URL"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: envDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: envDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		PreviewBucket:  envDefault("PREVIEW_BUCKET", "storeadmin-previews"),
		PreviewTTL:     envDuration("PREVIEW_TTL", 30*time.Minute),
	}

	if cfg.UpstreamURL == "" {
		return nil, fmt.Errorf("UPSTREAM_URL environment variable is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}
	return cfg, nil
}

func envDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(name)); err == nil {
		return value
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(name)); err == nil && value > 0 {
		return value
	}
	return fallback
}
