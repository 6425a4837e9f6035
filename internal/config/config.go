// Package config loads the flat environment-variable configuration
// described in the repository's external-interfaces contract. No secrets
// manager is consulted — the ingester takes a database DSN and a relay URL
// and nothing else is sensitive enough to warrant one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultRelayURL = "wss://jetstream2.us-east.bsky.network/subscribe"
	defaultPort     = "8080"
)

// Config is the fully-resolved set of environment inputs for one process.
type Config struct {
	DatabaseURL string
	RelayURL    string
	Cursor      *int64 // explicit CLI/env override; nil means "use persisted"
	Port        string
	LogFormat   string // "json" or "" (human)
}

// Load reads and validates the environment. It returns an error only for
// fatal startup conditions (spec: "non-zero only on fatal startup failure").
func Load() (Config, error) {
	cfg := Config{
		RelayURL: firstNonEmpty(os.Getenv("JETSTREAM_URL"), os.Getenv("RELAY_URL"), defaultRelayURL),
		Port:     envOrDefault("PORT", defaultPort),
		LogFormat: os.Getenv("LOG_FORMAT"),
	}

	dbURL, err := databaseURL()
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseURL = dbURL

	if raw := os.Getenv("CURSOR"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CURSOR %q: %w", raw, err)
		}
		cfg.Cursor = &v
	}

	return cfg, nil
}

// databaseURL composes DATABASE_URL, or builds one from the DB_* pieces.
// A DB_HOST beginning with /cloudsql/ is a Cloud SQL Unix-socket path.
func databaseURL() (string, error) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v, nil
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		return "", fmt.Errorf("config: one of DATABASE_URL or DB_HOST must be set")
	}
	name := os.Getenv("DB_NAME")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	port := envOrDefault("DB_PORT", "5432")

	if strings.HasPrefix(host, "/cloudsql/") {
		return fmt.Sprintf("postgres://%s:%s@/%s?host=%s", user, pass, name, host), nil
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name), nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
