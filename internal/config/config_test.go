package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfigYAML = `database:
  host: localhost
  port: 5432
  user: cafe
  password: secret
  database: cafe
rabbitmq:
  host: localhost
  port: 5672
  user: guest
  password: guest
redis:
  addr: localhost:6379
  database: 0
auth:
  secret: test-secret
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, testConfigYAML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("expected database.host localhost, got %q", cfg.Database.Host)
	}
	if cfg.RabbitMQ.Port != 5672 {
		t.Errorf("expected rabbitmq.port 5672, got %d", cfg.RabbitMQ.Port)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected redis.addr localhost:6379, got %q", cfg.Redis.Addr)
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("expected token TTL default of 24, got %d", cfg.Auth.TokenTTLHours)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeTestConfig(t, "database: [not a mapping")); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "cafe",
	}}
	want := "postgres://u:p@db:5432/cafe?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL = %q, want %q", got, want)
	}
}
