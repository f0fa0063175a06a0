package config

import (
	"testing"
	"time"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	// Test store defaults
	if cfg.Store.Latency != 250*time.Millisecond {
		t.Errorf("expected Store.Latency = 250ms, got %v", cfg.Store.Latency)
	}
	if cfg.Store.MaxRecordBytes != 5*1024*1024 {
		t.Errorf("expected Store.MaxRecordBytes = 5MB, got %d", cfg.Store.MaxRecordBytes)
	}

	// Test attribute defaults
	if cfg.Attributes.EntropyRate != 0.002 {
		t.Errorf("expected Attributes.EntropyRate = 0.002, got %v", cfg.Attributes.EntropyRate)
	}

	// Test ledger defaults
	if cfg.Ledger.Capacity != 50 {
		t.Errorf("expected Ledger.Capacity = 50, got %d", cfg.Ledger.Capacity)
	}

	// Test server defaults
	if cfg.Server.Addr != "127.0.0.1:7788" {
		t.Errorf("expected Server.Addr = 127.0.0.1:7788, got %s", cfg.Server.Addr)
	}

	// Test letter defaults
	if cfg.Letter.GeneratedKeyLength != 6 {
		t.Errorf("expected Letter.GeneratedKeyLength = 6, got %d", cfg.Letter.GeneratedKeyLength)
	}
}

func TestGlobalConfigExists(t *testing.T) {
	if Global == nil {
		t.Fatal("Global config should not be nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHRONOS_STORE_LATENCY", "5ms")
	t.Setenv("CHRONOS_MAX_RECORD_BYTES", "1024")
	t.Setenv("CHRONOS_ENTROPY_RATE", "0.01")
	t.Setenv("CHRONOS_LEDGER_CAPACITY", "10")
	t.Setenv("CHRONOS_TIMEZONE", "UTC")
	t.Setenv("CHRONOS_ADDR", ":9000")
	t.Setenv("CHRONOS_LETTER_KEY_LENGTH", "8")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	if cfg.Store.Latency != 5*time.Millisecond {
		t.Errorf("expected Store.Latency = 5ms, got %v", cfg.Store.Latency)
	}
	if cfg.Store.MaxRecordBytes != 1024 {
		t.Errorf("expected Store.MaxRecordBytes = 1024, got %d", cfg.Store.MaxRecordBytes)
	}
	if cfg.Attributes.EntropyRate != 0.01 {
		t.Errorf("expected Attributes.EntropyRate = 0.01, got %v", cfg.Attributes.EntropyRate)
	}
	if cfg.Ledger.Capacity != 10 {
		t.Errorf("expected Ledger.Capacity = 10, got %d", cfg.Ledger.Capacity)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected Server.Addr = :9000, got %s", cfg.Server.Addr)
	}
	if cfg.Letter.GeneratedKeyLength != 8 {
		t.Errorf("expected Letter.GeneratedKeyLength = 8, got %d", cfg.Letter.GeneratedKeyLength)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", cfg.Location())
	}
}

func TestLoadFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("CHRONOS_STORE_LATENCY", "fast")
	t.Setenv("CHRONOS_LEDGER_CAPACITY", "-3")
	t.Setenv("CHRONOS_ENTROPY_RATE", "lots")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	if cfg.Store.Latency != 250*time.Millisecond {
		t.Errorf("invalid latency should keep default, got %v", cfg.Store.Latency)
	}
	if cfg.Ledger.Capacity != 50 {
		t.Errorf("negative capacity should keep default, got %d", cfg.Ledger.Capacity)
	}
	if cfg.Attributes.EntropyRate != 0.002 {
		t.Errorf("invalid rate should keep default, got %v", cfg.Attributes.EntropyRate)
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.Location() != time.Local {
		t.Errorf("expected Local for default timezone")
	}
	cfg.Calendar.Timezone = "Not/AZone"
	if cfg.Location() != time.Local {
		t.Errorf("expected Local fallback for unknown zone")
	}
}

func TestReset(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Ledger.Capacity = 3
	cfg.Reset()
	if cfg.Ledger.Capacity != 50 {
		t.Errorf("expected reset capacity 50, got %d", cfg.Ledger.Capacity)
	}
}
