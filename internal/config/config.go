package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	SessionJWTSecret    string
	AssignmentJWTSecret string

	FrontendBaseURL string
	PublicBaseURL   string
	StorageDir      string

	CORSOrigins  []string
	KafkaBrokers []string
	KafkaTopic   string
}

// LoadConfig reads configuration from the environment, with a .env file
// as a development convenience. Required values fail fast.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		SessionJWTSecret:    os.Getenv("SESSION_JWT_SECRET"),
		AssignmentJWTSecret: os.Getenv("ASSIGNMENT_JWT_SECRET"),

		FrontendBaseURL: os.Getenv("FRONTEND_BASE_URL"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		StorageDir:      getEnv("STORAGE_DIR", "./uploads"),

		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "student-admin.events"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionJWTSecret == "" {
		return nil, fmt.Errorf("SESSION_JWT_SECRET is required")
	}
	if cfg.AssignmentJWTSecret == "" {
		return nil, fmt.Errorf("ASSIGNMENT_JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
