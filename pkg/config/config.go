// Copyright 2025 Certen Protocol
//
// Package config holds the flat, env-var-driven configuration for this
// module's optional ops packages (pkg/proofcache's Postgres backend,
// pkg/telemetry's Prometheus namespace, pkg/selector's table file). The
// pure hashing/merkle/execreport core never reads this package; only the
// ambient infrastructure around it does.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the settings this repo's ops packages need.
type Config struct {
	// Proof Cache (pkg/proofcache) Postgres backend. Empty DatabaseURL
	// means the cache runs in-memory only.
	DatabaseURL         string
	DatabaseMaxOpenConns int
	DatabaseMaxIdleConns int
	DatabaseConnMaxLifetime time.Duration

	// Metrics Recorder (pkg/telemetry) namespace prefixing every exported
	// Prometheus metric name.
	MetricsNamespace string

	// Chain Selector Registry (pkg/selector) table file. Empty means
	// callers should fall back to selector.DefaultRegistry().
	SelectorTablePath string

	LogLevel string
}

// Load reads Config from the environment, applying the same defaults-when-
// unset convention as the rest of this repo's ambient stack.
func Load() *Config {
	return &Config{
		DatabaseURL:             getEnv("CCIP_CORE_DATABASE_URL", ""),
		DatabaseMaxOpenConns:    getEnvInt("CCIP_CORE_DATABASE_MAX_OPEN_CONNS", 10),
		DatabaseMaxIdleConns:    getEnvInt("CCIP_CORE_DATABASE_MAX_IDLE_CONNS", 2),
		DatabaseConnMaxLifetime: getEnvDuration("CCIP_CORE_DATABASE_CONN_MAX_LIFETIME", time.Hour),
		MetricsNamespace:        getEnv("CCIP_CORE_METRICS_NAMESPACE", "ccip_core"),
		SelectorTablePath:       getEnv("CCIP_CORE_SELECTOR_TABLE_PATH", ""),
		LogLevel:                getEnv("CCIP_CORE_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
