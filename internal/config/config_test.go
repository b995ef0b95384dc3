package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwtSecret: secret\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.SessionDuration != 12*time.Hour {
		t.Errorf("Auth.SessionDuration = %v, want 12h", cfg.Auth.SessionDuration)
	}
	if cfg.Gauge.Min != 0 || cfg.Gauge.Max != 50 {
		t.Errorf("Gauge = %+v, want 0..50", cfg.Gauge)
	}
	if cfg.RateLimit.RequestsPerMinute != 10 {
		t.Errorf("RateLimit.RequestsPerMinute = %d, want 10", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Kafka.Topics["login"] != "dashboard-logins" {
		t.Errorf("Kafka.Topics[login] = %q", cfg.Kafka.Topics["login"])
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwtSecret: from-file
database:
  host: db.internal
  password: file-password
referenceAreas:
  - label: Crash
    start: "2020-02-19"
    end: "2020-03-23"
    color: "#f2a529"
`)
	t.Setenv("DASHBOARD_DATABASE_PASSWORD", "env-password")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Database.Password != "env-password" {
		t.Errorf("Database.Password = %q, want env override", cfg.Database.Password)
	}
	if len(cfg.ReferenceAreas) != 1 || cfg.ReferenceAreas[0].Label != "Crash" {
		t.Errorf("ReferenceAreas = %+v", cfg.ReferenceAreas)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "server:\n  port: \"9000\"\n"},
		{"inverted gauge", "auth:\n  jwtSecret: s\ngauge:\n  min: 10\n  max: 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "db", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=db sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
