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

	"github.com/vytor/pricepulse/internal/logger"
)

type Config struct {
	Addr          string
	DBPath        string
	CatalogDir    string
	LogLevel      string
	DefaultRounds int
	MaxRounds     int
	SessionTTL    time.Duration
	SweepInterval time.Duration
	MaxSessions   int
	WorkerCount   int
	QueueSize     int
	CORSOrigins   []string
}

// DefaultDBPath keeps the catalog store in a shared in-memory database.
const DefaultDBPath = "file:pricepulse-catalog?mode=memory&cache=shared"

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
// DB_PATH set to an empty value disables the catalog store.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	dbPath := DefaultDBPath
	if v, ok := os.LookupEnv("DB_PATH"); ok {
		dbPath = v
	}

	return Config{
		Addr:          envOr("ADDR", ":8080"),
		DBPath:        dbPath,
		CatalogDir:    os.Getenv("CATALOG_DIR"),
		LogLevel:      envOr("LOG_LEVEL", "INFO"),
		DefaultRounds: envIntOr("DEFAULT_ROUNDS", 5),
		MaxRounds:     envIntOr("MAX_ROUNDS", 20),
		SessionTTL:    envDurationOr("SESSION_TTL", 30*time.Minute),
		SweepInterval: envDurationOr("SWEEP_INTERVAL", time.Minute),
		MaxSessions:   envIntOr("MAX_SESSIONS", 1000),
		WorkerCount:   envIntOr("WORKER_COUNT", 1),
		QueueSize:     envIntOr("QUEUE_SIZE", 16),
		CORSOrigins:   envListOr("CORS_ORIGINS", []string{"*"}),
	}
}

// Validate reports every invalid field at once. LOG_LEVEL is normalized to
// upper case.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(c.Addr) == "" {
		add("ADDR cannot be empty")
	}

	if level, ok := logger.LookupLevel(c.LogLevel); ok {
		c.LogLevel = level.String()
	} else {
		add("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel)
	}

	if c.MaxRounds < 1 {
		add("MAX_ROUNDS must be at least 1, got %d", c.MaxRounds)
	}
	if c.DefaultRounds < 1 || c.DefaultRounds > c.MaxRounds {
		add("DEFAULT_ROUNDS must be between 1 and MAX_ROUNDS (%d), got %d", c.MaxRounds, c.DefaultRounds)
	}
	if c.SessionTTL <= 0 {
		add("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.SweepInterval <= 0 {
		add("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.MaxSessions < 1 {
		add("MAX_SESSIONS must be at least 1, got %d", c.MaxSessions)
	}
	if c.WorkerCount < 1 {
		add("WORKER_COUNT must be at least 1, got %d", c.WorkerCount)
	}
	if c.QueueSize < 1 {
		add("QUEUE_SIZE must be at least 1, got %d", c.QueueSize)
	}
	if c.CatalogDir != "" {
		if info, err := os.Stat(c.CatalogDir); err != nil || !info.IsDir() {
			add("CATALOG_DIR %q is not a directory", c.CatalogDir)
		}
	}

	return errors.Join(errs...)
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

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
