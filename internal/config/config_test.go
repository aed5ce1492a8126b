package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Port != 4000 {
		t.Errorf("Expected port 4000, got %d", cfg.Port)
	}
	if cfg.SessionSecret != "TEST_KEY" {
		t.Errorf("Expected session secret 'TEST_KEY', got '%s'", cfg.SessionSecret)
	}
	if cfg.Tenant.UserID != "342543" {
		t.Errorf("Expected tenant user_id '342543', got '%s'", cfg.Tenant.UserID)
	}
	if !cfg.AllowsAllOrigins() {
		t.Error("Expected CORS to allow all origins by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MAKERSPACE_PORT", "5050")
	t.Setenv("MAKERSPACE_DATA_DIR", "/srv/seed")
	t.Setenv("MAKERSPACE_SESSION_SECRET", "s3cret")
	t.Setenv("MAKERSPACE_ALLOWED_ORIGINS", "http://localhost:4200, https://makerspace.example")
	t.Setenv("MAKERSPACE_TENANT_FIRST_NAME", "Ada")
	t.Setenv("MAKERSPACE_SHUTDOWN_TIMEOUT", "2s")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	if cfg.Port != 5050 {
		t.Errorf("Expected port 5050, got %d", cfg.Port)
	}
	if cfg.DataDir != "/srv/seed" {
		t.Errorf("Expected data dir '/srv/seed', got '%s'", cfg.DataDir)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Errorf("Expected session secret 's3cret', got '%s'", cfg.SessionSecret)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://makerspace.example" {
		t.Errorf("Unexpected allowed origins: %v", cfg.AllowedOrigins)
	}
	if cfg.AllowsAllOrigins() {
		t.Error("Expected explicit origins to disable allow-all")
	}
	if cfg.Tenant.FirstName != "Ada" || cfg.Tenant.LastName != "Goldberg" {
		t.Errorf("Unexpected tenant: %+v", cfg.Tenant)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("Expected shutdown timeout 2s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnvironmentIgnoresInvalidPort(t *testing.T) {
	t.Setenv("MAKERSPACE_PORT", "not-a-port")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	if cfg.Port != 4000 {
		t.Errorf("Expected port to stay 4000, got %d", cfg.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "makerspace.yaml")
	content := `
port: 8081
data_dir: ./fixtures
tenant:
  user_id: "99"
  permissions: ["tasks"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := NewConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Port != 8081 {
		t.Errorf("Expected port 8081, got %d", cfg.Port)
	}
	if cfg.DataDir != "./fixtures" {
		t.Errorf("Expected data dir './fixtures', got '%s'", cfg.DataDir)
	}
	if cfg.Tenant.UserID != "99" {
		t.Errorf("Expected tenant user_id '99', got '%s'", cfg.Tenant.UserID)
	}
	if cfg.Tenant.FirstName != "Joe" {
		t.Errorf("Expected first name to keep default, got '%s'", cfg.Tenant.FirstName)
	}
	if cfg.SessionSecret != "TEST_KEY" {
		t.Errorf("Expected session secret to keep default, got '%s'", cfg.SessionSecret)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port too low", mutate: func(c *Config) { c.Port = 0 }},
		{name: "port too high", mutate: func(c *Config) { c.Port = 70000 }},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }},
		{name: "empty session name", mutate: func(c *Config) { c.SessionName = "" }},
		{name: "empty secret", mutate: func(c *Config) { c.SessionSecret = "" }},
		{name: "empty tenant id", mutate: func(c *Config) { c.Tenant.UserID = "" }},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestBaseURL(t *testing.T) {
	cfg := NewConfig()
	if got := cfg.BaseURL(); got != "http://localhost:4000" {
		t.Errorf("Expected 'http://localhost:4000', got '%s'", got)
	}
	if got := cfg.Address(); got != ":4000" {
		t.Errorf("Expected ':4000', got '%s'", got)
	}
}
