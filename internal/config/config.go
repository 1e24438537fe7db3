package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds server settings
type Config struct {
	Env  string `yaml:"env" env:"CLIENTPULSE_ENV"`
	Port string `yaml:"port" env:"PORT"`

	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the document store
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DATABASE_DRIVER"` // postgres or sqlite
	URL    string `yaml:"url" env:"DATABASE_URL"`
}

// AuthConfig controls credential issuance
type AuthConfig struct {
	Secret   string        `yaml:"secret" env:"JWT_SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`

	// StubLogin accepts any email/password pair without a user record.
	// Development only.
	StubLogin bool `yaml:"stub_login" env:"AUTH_STUB_LOGIN"`
}

// WebhookConfig controls the unauthenticated client webhook
type WebhookConfig struct {
	Owner string `yaml:"owner" env:"WEBHOOK_OWNER"` // Subject that owns webhook-created clients
}

// LogConfig controls logging output
type LogConfig struct {
	Level   string `yaml:"level" env:"LOG_LEVEL"`     // DEBUG, INFO, WARN, ERROR
	File    string `yaml:"file" env:"LOG_FILE"`       // Optional log file
	Console bool   `yaml:"console" env:"LOG_CONSOLE"` // Log to stderr
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		Env:  EnvDevelopment,
		Port: "5000",
		Database: DatabaseConfig{
			Driver: DriverPostgres,
			URL:    "postgres://localhost:5432/clientpulse?sslmode=disable",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Webhook: WebhookConfig{
			Owner: "webhook",
		},
		Log: LogConfig{
			Level:   "INFO",
			Console: true,
		},
	}
}

// Load reads the optional YAML file at path and overlays environment variables.
// An empty path falls back to $CLIENTPULSE_CONFIG; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("CLIENTPULSE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	return cfg, nil
}

// Validate checks settings the server cannot run without
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Auth.Secret) == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "token TTL must be positive")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		problems = append(problems, fmt.Sprintf("unknown database driver %q", c.Database.Driver))
	}
	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if c.Port == "" {
		problems = append(problems, "PORT is required")
	}
	if c.Auth.StubLogin && c.IsProduction() {
		problems = append(problems, "stub login cannot be enabled in production")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}
