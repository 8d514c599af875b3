package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "STORE_DRIVER", "DATABASE_URL", "LOG_LEVEL", "METRICS_ENABLED",
		"METRICS_TOKEN", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c := Load()
	if c.Port != "8080" || c.Addr() != ":8080" {
		t.Fatalf("port default: %q", c.Port)
	}
	if c.StoreDriver != DriverMemory {
		t.Fatalf("store driver default: %q", c.StoreDriver)
	}
	if c.LogLevel != "info" {
		t.Fatalf("log level default: %q", c.LogLevel)
	}
	if !c.MetricsEnabled || c.MetricsToken != "" {
		t.Fatalf("metrics default")
	}
	if c.RateLimitRPS != 0 || c.RateLimitBurst != 10 {
		t.Fatalf("rate limit default")
	}
	if c.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown timeout default")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/products")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("METRICS_TOKEN", "tok")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")

	c := Load()
	if c.Addr() != ":9090" {
		t.Fatalf("port env")
	}
	if c.StoreDriver != DriverPostgres || c.DatabaseURL == "" {
		t.Fatalf("store env: %+v", c)
	}
	if c.LogLevel != "debug" {
		t.Fatalf("log level env")
	}
	if c.MetricsEnabled || c.MetricsToken != "tok" {
		t.Fatalf("metrics env")
	}
	if c.RateLimitRPS != 2.5 || c.RateLimitBurst != 4 {
		t.Fatalf("rate limit env")
	}
	if c.ShutdownTimeout != 3*time.Second {
		t.Fatalf("shutdown timeout env")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadBadNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_BURST", "many")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	c := Load()
	if c.RateLimitBurst != 10 || c.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{StoreDriver: DriverMemory}, false},
		{"postgres without url", Config{StoreDriver: DriverPostgres}, true},
		{"postgres with url", Config{StoreDriver: DriverPostgres, DatabaseURL: "postgres://x"}, false},
		{"unknown driver", Config{StoreDriver: "mongo"}, true},
		{"rate limit without burst", Config{StoreDriver: DriverMemory, RateLimitRPS: 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PORT")
	t.Cleanup(func() { os.Unsetenv("PORT") })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=7070\nLOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := Load().Port; got != "7070" {
		t.Fatalf("port from env file: %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}
