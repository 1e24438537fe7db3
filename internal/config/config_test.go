package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CLIENTPULSE_CONFIG", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("port: want=5000 got=%s", cfg.Port)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("token ttl: got=%v", cfg.Auth.TokenTTL)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("driver: got=%s", cfg.Database.Driver)
	}
}

func TestLoadFileThenEnvOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
env: production
port: "9000"
database:
  driver: sqlite
  url: "file:dev.db"
auth:
  secret: from-file
  token_ttl: 2h
log:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.Secret != "from-env" {
		t.Fatalf("secret: want=from-env got=%s", cfg.Auth.Secret)
	}
	if cfg.Port != "9000" {
		t.Fatalf("port: want=9000 got=%s", cfg.Port)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.URL != "file:dev.db" {
		t.Fatalf("database: got=%+v", cfg.Database)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Fatalf("token ttl: got=%v", cfg.Auth.TokenTTL)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production env")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateFailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing secret", func(c *Config) {}, "JWT_SECRET is required"},
		{"unknown driver", func(c *Config) { c.Auth.Secret = "s"; c.Database.Driver = "mongo" }, "unknown database driver"},
		{"stub login in production", func(c *Config) {
			c.Auth.Secret = "s"
			c.Env = EnvProduction
			c.Auth.StubLogin = true
		}, "stub login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error containing %q, got=%v", tt.want, err)
			}
		})
	}
}
