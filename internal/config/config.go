// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Port            string
	StoreDriver     string
	DatabaseURL     string
	LogLevel        string
	MetricsEnabled  bool
	MetricsToken    string
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

func (c Config) Addr() string { return ":" + c.Port }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	n, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return def
	}
	return n
}

func floatenv(key string, def float64) float64 {
	f, err := strconv.ParseFloat(getenv(key, ""), 64)
	if err != nil {
		return def
	}
	return f
}

func boolenv(key string, def bool) bool {
	b, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return def
	}
	return b
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// LoadDotEnv merges path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// Load collects configuration from the environment with defaults.
func Load() Config {
	return Config{
		Port:            getenv("PORT", "8080"),
		StoreDriver:     strings.ToLower(getenv("STORE_DRIVER", DriverMemory)),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		MetricsEnabled:  boolenv("METRICS_ENABLED", true),
		MetricsToken:    getenv("METRICS_TOKEN", ""),
		RateLimitRPS:    floatenv("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  atoienv("RATE_LIMIT_BURST", 10),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 10),
	}
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_BURST must be positive when rate limiting is on")
	}
	return nil
}
