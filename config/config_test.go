package config

import "testing"

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()
	if cfg.SQLite.MaxOpenConns != 1 {
		t.Fatalf("expected single sqlite connection by default, got %d", cfg.SQLite.MaxOpenConns)
	}
	if cfg.Redis.Enabled || cfg.Kafka.Enabled {
		t.Fatalf("redis and kafka should be opt-in")
	}
	if cfg.Contacts.PhoneRegion != "US" {
		t.Fatalf("unexpected phone region %q", cfg.Contacts.PhoneRegion)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_LIST_TTL", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")

	cfg := LoadEnv()
	if cfg.SQLite.Path != "/tmp/x.db" {
		t.Errorf("path = %q", cfg.SQLite.Path)
	}
	if !cfg.Redis.Enabled {
		t.Errorf("redis should be enabled")
	}
	if cfg.Redis.ListTTL != 300 {
		t.Errorf("invalid int should fall back, got %d", cfg.Redis.ListTTL)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "b:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
}
