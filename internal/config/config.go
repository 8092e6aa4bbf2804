package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/wordflow/internal/logger"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	SpellingEnabled    bool
	DefaultModeID      int64
	SessionWorkerCount int
	SessionQueueSize   int
	SessionBuildTime   string
	Timezone           string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:wordflow.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		SpellingEnabled:    envBoolOr("SPELLING_ENABLED", true),
		DefaultModeID:      int64(envIntOr("DEFAULT_MODE_ID", 2)),
		SessionWorkerCount: envIntOr("SESSION_WORKER_COUNT", 2),
		SessionQueueSize:   envIntOr("SESSION_QUEUE_SIZE", 64),
		SessionBuildTime:   envOr("SESSION_BUILD_TIME", "04:00"),
		Timezone:           envOr("TIMEZONE", "UTC"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.DefaultModeID <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_MODE_ID must be positive (got %d)", c.DefaultModeID))
	}
	if c.SessionWorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_WORKER_COUNT must be positive (got %d)", c.SessionWorkerCount))
	}
	if c.SessionQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_QUEUE_SIZE must be positive (got %d)", c.SessionQueueSize))
	}
	if _, err := time.Parse("15:04", c.SessionBuildTime); err != nil {
		errs = append(errs, fmt.Errorf("SESSION_BUILD_TIME must be HH:MM (got %q)", c.SessionBuildTime))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %v", err))
	}
	return errors.Join(errs...)
}

// Location returns the configured time zone, UTC when it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
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

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
