package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	Env string // "dev" | "prod"

	// DBPath enables SQLite log archival when non-empty. Empty means
	// memory-only operation.
	DBPath string

	// LogCapacity bounds each in-memory log store (access and events).
	LogCapacity int

	// Archive retention. 0 = keep forever.
	RetentionDays      int
	PruneIntervalHours int // how often the pruner runs (default 6)

	// SentryDSN enables error reporting when non-empty.
	SentryDSN string
}

func FromEnv() Config {
	addr := getenvDefault("FINGERGUARD_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("FINGERGUARD_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	return Config{
		HTTPAddr: addr,
		Env:      env,

		DBPath: os.Getenv("FINGERGUARD_DB_PATH"),

		LogCapacity: getenvInt("FINGERGUARD_LOG_CAPACITY", 500),

		RetentionDays:      getenvInt("FINGERGUARD_RETENTION_DAYS", 30),
		PruneIntervalHours: getenvInt("FINGERGUARD_PRUNE_INTERVAL_HOURS", 6),

		SentryDSN: os.Getenv("FINGERGUARD_SENTRY_DSN"),
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
