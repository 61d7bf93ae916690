package config

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	LogFormat            string
	AuthSecret           string
	AuthIssuer           string
	EncryptionKey        string
	RetentionWorkerCount int
	RetentionQueueSize   int
	RetentionInterval    time.Duration
	MatchConcurrency     int
	RecentEventWindow    int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:learnpulse.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		LogFormat:            envOr("LOG_FORMAT", "text"),
		AuthSecret:           envOr("AUTH_SECRET", ""),
		AuthIssuer:           envOr("AUTH_ISSUER", ""),
		EncryptionKey:        envOr("ENCRYPTION_KEY", ""),
		RetentionWorkerCount: envIntOr("RETENTION_WORKER_COUNT", 2),
		RetentionQueueSize:   envIntOr("RETENTION_QUEUE_SIZE", 64),
		RetentionInterval:    envDurationOr("RETENTION_INTERVAL", 24*time.Hour),
		MatchConcurrency:     envIntOr("MATCH_CONCURRENCY", 8),
		RecentEventWindow:    envIntOr("RECENT_EVENT_WINDOW", 10),
	}
}

// Validate returns the first configuration problem found, or nil.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json (got %q)", c.LogFormat)
	}
	if len(c.AuthSecret) < 16 {
		return fmt.Errorf("AUTH_SECRET must be at least 16 characters")
	}
	if c.EncryptionKey != "" {
		key, err := hex.DecodeString(c.EncryptionKey)
		if err != nil || len(key) != 32 {
			return fmt.Errorf("ENCRYPTION_KEY must be 64 hex characters")
		}
	}
	if c.RetentionWorkerCount < 1 {
		return fmt.Errorf("RETENTION_WORKER_COUNT must be at least 1")
	}
	if c.RetentionQueueSize < 1 {
		return fmt.Errorf("RETENTION_QUEUE_SIZE must be at least 1")
	}
	if c.RetentionInterval < time.Minute {
		return fmt.Errorf("RETENTION_INTERVAL must be at least 1m")
	}
	if c.MatchConcurrency < 1 {
		return fmt.Errorf("MATCH_CONCURRENCY must be at least 1")
	}
	if c.RecentEventWindow < 3 {
		return fmt.Errorf("RECENT_EVENT_WINDOW must be at least 3")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
