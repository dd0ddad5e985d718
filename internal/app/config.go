package app

import (
	"os"
	"strconv"
	"time"

	"github.com/broadleaf/taskd/pkg/jwtx"
)

type Config struct {
	SigningSecret string        // Required: symmetric secret for signing access tokens
	Algorithm     string        // Optional: token signing algorithm (default: HS256)
	TokenTTL      time.Duration // Optional: access token lifetime (default: 30m)
	Issuer        string        // Optional: issuer claim for tokens (default: taskd)

	DatabaseFile string // Optional: path to SQLite database file (default: ./taskd.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SigningSecret: os.Getenv("TASKD_SIGNING_SECRET"),
		Algorithm:     getEnvOrDefault("TASKD_ALGORITHM", jwtx.AlgHS256),
		TokenTTL:      getEnvDurationOrDefault("TASKD_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		Issuer:        getEnvOrDefault("TASKD_ISSUER", "taskd"),

		DatabaseFile: getEnvOrDefault("TASKD_DATABASE_FILE", "taskd.db"),
		PepperFile:   getEnvOrDefault("TASKD_PEPPER_FILE", "pepper"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
