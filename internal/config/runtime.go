// Package config provides centralized configuration for Chronos runtime values.
package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig holds the tunable values of the persistence and derived-state layer.
type RuntimeConfig struct {
	// Store configuration
	Store StoreConfig

	// Attribute engine configuration
	Attributes AttributesConfig

	// Notification ledger configuration
	Ledger LedgerConfig

	// Calendar configuration
	Calendar CalendarConfig

	// HTTP server configuration
	Server ServerConfig

	// Letter vault configuration
	Letter LetterConfig
}

// StoreConfig holds record store configuration.
type StoreConfig struct {
	// Latency is the simulated round-trip delay applied to every record operation.
	// Default: 250ms
	Latency time.Duration

	// MaxRecordBytes is the largest serialized record a namespace may hold.
	// Default: 5MB (5 * 1024 * 1024 bytes)
	MaxRecordBytes int
}

// AttributesConfig holds attribute engine configuration.
type AttributesConfig struct {
	// EntropyRate is the per-hour decay subtracted from every attribute.
	// Default: 0.002
	EntropyRate float64
}

// LedgerConfig holds notification ledger configuration.
type LedgerConfig struct {
	// Capacity is the number of notifications kept in the history.
	// Default: 50
	Capacity int
}

// CalendarConfig holds day-boundary configuration.
type CalendarConfig struct {
	// Timezone is the IANA zone used to derive calendar-day keys.
	// Default: Local
	Timezone string
}

// ServerConfig holds HTTP façade configuration.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: 127.0.0.1:7788
	Addr string

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 5s
	ShutdownTimeout time.Duration
}

// LetterConfig holds letter vault configuration.
type LetterConfig struct {
	// GeneratedKeyLength is the number of '.'/'-' symbols in a generated key.
	// Default: 6
	GeneratedKeyLength int
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Store: StoreConfig{
			Latency:        250 * time.Millisecond,
			MaxRecordBytes: 5 * 1024 * 1024, // 5MB
		},
		Attributes: AttributesConfig{
			EntropyRate: 0.002,
		},
		Ledger: LedgerConfig{
			Capacity: 50,
		},
		Calendar: CalendarConfig{
			Timezone: "Local",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:7788",
			ShutdownTimeout: 5 * time.Second,
		},
		Letter: LetterConfig{
			GeneratedKeyLength: 6,
		},
	}
}

// Location resolves the configured calendar timezone, falling back to time.Local.
func (c *RuntimeConfig) Location() *time.Location {
	switch c.Calendar.Timezone {
	case "", "Local", "local":
		return time.Local
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Store configuration
	if v := os.Getenv("CHRONOS_STORE_LATENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.Store.Latency = d
		}
	}
	if v := os.Getenv("CHRONOS_MAX_RECORD_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Store.MaxRecordBytes = n
		}
	}

	// Attribute configuration
	if v := os.Getenv("CHRONOS_ENTROPY_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.Attributes.EntropyRate = f
		}
	}

	// Ledger configuration
	if v := os.Getenv("CHRONOS_LEDGER_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Ledger.Capacity = n
		}
	}

	// Calendar configuration
	if v := os.Getenv("CHRONOS_TIMEZONE"); v != "" {
		c.Calendar.Timezone = v
	}

	// Server configuration
	if v := os.Getenv("CHRONOS_ADDR"); v != "" {
		c.Server.Addr = v
	}

	// Letter configuration
	if v := os.Getenv("CHRONOS_LETTER_KEY_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 64 {
			c.Letter.GeneratedKeyLength = n
		}
	}
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
