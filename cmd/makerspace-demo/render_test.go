package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kelsos/makerspace-demo/internal/client"
	"github.com/kelsos/makerspace-demo/internal/config"
	"github.com/kelsos/makerspace-demo/internal/server"
)

func TestRenderRoutesListsEveryRoute(t *testing.T) {
	out := renderRoutes(server.Routes())

	for _, want := range []string{"UPDATE", "/api/tasks", "/api/users", "/api/visitors"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in routes table", want)
		}
	}
}

func TestRenderChecks(t *testing.T) {
	out := renderChecks([]client.CheckResult{
		{Name: "users list holds exactly the tenant", Passed: true},
		{Name: "tasks are stable within a session", Passed: false, Detail: "task lists differ"},
	})

	for _, want := range []string{"PASS", "FAIL", "task lists differ", "1/2 checks passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got %q", want, out)
		}
	}
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	t.Setenv("MAKERSPACE_PORT", "5001")

	cfg, err := loadConfig("", func(c *config.Config) {
		c.DataDir = "./fixtures"
	})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Port != 5001 {
		t.Errorf("Expected port 5001, got %d", cfg.Port)
	}
	if cfg.DataDir != "./fixtures" {
		t.Errorf("Expected data dir './fixtures', got '%s'", cfg.DataDir)
	}

	if _, err := loadConfig("", func(c *config.Config) { c.Port = 0 }); err == nil {
		t.Error("Expected an invalid port to fail validation")
	}
}

func TestLoadEnvironmentFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.env")
	if err := os.WriteFile(path, []byte("MAKERSPACE_PORT=5002\n"), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("MAKERSPACE_PORT", "")
	os.Unsetenv("MAKERSPACE_PORT")

	if err := loadEnvironment(path); err != nil {
		t.Fatalf("loadEnvironment failed: %v", err)
	}

	cfg, err := loadConfig("", func(*config.Config) {})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Port != 5002 {
		t.Errorf("Expected port 5002 from env file, got %d", cfg.Port)
	}

	if err := loadEnvironment(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected an error for a missing env file")
	}
}
